//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=distance_get_test
package distance_get

import (
	"context"
	"time"

	"tracking/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	TotalDistance(ctx context.Context, courierID int64, dateBucket time.Time) (float64, error)
}
