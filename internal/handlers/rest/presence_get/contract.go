//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=presence_get_test
package presence_get

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
	BulkStatus(ctx context.Context, courierIDs []int64) (map[int64]entities.PresenceState, error)
}
