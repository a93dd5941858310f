//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=presence_test
package presence

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

type Repository interface {
	SetOnline(ctx context.Context, courierID int64, online bool) error
	SetAvailable(ctx context.Context, courierID int64, available bool) error
	IsOnline(ctx context.Context, courierID int64) (bool, error)
	IsAvailable(ctx context.Context, courierID int64) (bool, error)
	BulkStatus(ctx context.Context, courierIDs []int64) (map[int64]entities.PresenceState, error)
}

type GeoIndex interface {
	Evict(ctx context.Context, courierID int64) error
}
