//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=history_get_test
package history_get

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
	History(ctx context.Context, courierID int64, dateBucket time.Time, params entities.HistoryQuery) ([]entities.HistoryRecord, error)
}
