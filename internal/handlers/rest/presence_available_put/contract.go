//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=presence_available_put_test
package presence_available_put

import (
	"context"

	"tracking/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	SetAvailable(ctx context.Context, courierID int64, available bool) error
}
