//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=locations_post_test
package locations_post

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
	IngestBatch(ctx context.Context, samples []entities.LocationSample) (entities.BatchAppendResult, error)
}
