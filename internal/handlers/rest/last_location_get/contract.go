//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=last_location_get_test
package last_location_get

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
	LastRecord(ctx context.Context, courierID int64, dateBucket time.Time) (*entities.HistoryRecord, error)
}
