//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=track_test
package track

import (
	"context"

	"tracking/internal/broadcast"
	"tracking/internal/entities"
	"tracking/internal/pkg/auth"
	"tracking/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Hub interface {
	Join(sub *broadcast.Subscriber, taskID string)
	Leave(sub *broadcast.Subscriber, taskID string)
	Disconnect(sub *broadcast.Subscriber)
}

type Ingestor interface {
	Ingest(ctx context.Context, sample entities.LocationSample) error
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}
