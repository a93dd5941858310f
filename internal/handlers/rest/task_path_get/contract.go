//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=task_path_get_test
package task_path_get

import (
	"context"
	"time"

	"tracking/internal/entities"
	"tracking/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	TaskPath(ctx context.Context, courierID int64, taskID string, dateBucket time.Time) ([]entities.HistoryRecord, error)
}
