//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=nearby_get_test
package nearby_get

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
	FindAvailable(ctx context.Context, center entities.GeoPoint, radiusKm float64, limit int) ([]entities.NearbyCourier, entities.SearchPath, error)
}
