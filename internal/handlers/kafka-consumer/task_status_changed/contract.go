//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=task_status_changed_test
package task_status_changed

import (
	"context"

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
	Append(ctx context.Context, record entities.HistoryRecord) (int64, error)
}
