//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=presence_online_put_test
package presence_online_put

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
	SetOnline(ctx context.Context, courierID int64, online bool) error
}
