//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=proximity_test
package proximity

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

type TaskGateway interface {
	GetTask(ctx context.Context, taskID string) (*entities.TaskInfo, error)
}

type Markers interface {
	Create(ctx context.Context, taskID, thresholdKey string) (bool, error)
}

type EventPublisher interface {
	PublishShipperNearby(ctx context.Context, event entities.ShipperNearbyEvent) error
}

type StatusBroadcaster interface {
	PublishStatus(taskID, status, message string)
}
