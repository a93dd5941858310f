//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=location_test
package location

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

type GeoIndex interface {
	Upsert(ctx context.Context, sample entities.LocationSample) error
	Lookup(ctx context.Context, courierID int64) (*entities.LocationSample, error)
}

type Trail interface {
	Append(ctx context.Context, record entities.HistoryRecord) (int64, error)
	AppendBatch(ctx context.Context, records []entities.HistoryRecord) (entities.BatchAppendResult, error)
}

type ProximityEngine interface {
	Evaluate(ctx context.Context, sample entities.LocationSample) error
}

type Broadcaster interface {
	PublishLocation(taskID string, sample entities.LocationSample)
}
