package proximity

import (
	"context"
	"fmt"
	"time"

	"tracking/internal/entities"
	"tracking/pkg/geo"
	"tracking/pkg/logger"
)

// thresholdKeyDropoff идентификатор порога в маркере. Модель задачи несет
// одну точку назначения, ключ оставлен на случай второго порога (pickup).
const thresholdKeyDropoff = "dropoff"

// StatusShipperNearby статус, зеркалируемый в broadcast-группу задачи.
const StatusShipperNearby = "SHIPPER_NEARBY"

// Engine машина состояний NotSent -> Sent на задачу.
//
// Переход срабатывает, когда у семпла есть активная задача с известной точкой
// назначения и расстояние до нее не больше порога. Дедупликация — маркер с
// атомарным create-if-absent: из почти одновременных семплов одной задачи
// событие эмитит ровно тот, кто успел создать маркер.
type Engine struct {
	log             handlerLogger
	gateway         TaskGateway
	markers         Markers
	events          EventPublisher
	hub             StatusBroadcaster
	thresholdMeters float64
}

func New(
	log handlerLogger,
	gateway TaskGateway,
	markers Markers,
	events EventPublisher,
	hub StatusBroadcaster,
	thresholdMeters float64,
) *Engine {
	return &Engine{
		log:             log.With(),
		gateway:         gateway,
		markers:         markers,
		events:          events,
		hub:             hub,
		thresholdMeters: thresholdMeters,
	}
}

func (e *Engine) Evaluate(ctx context.Context, sample entities.LocationSample) error {
	if sample.TaskID == nil {
		return nil
	}

	task, err := e.gateway.GetTask(ctx, *sample.TaskID)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTaskLookupFailed, *sample.TaskID, err)
	}
	if task.Dropoff == nil || task.Status.IsTerminal() {
		return nil
	}

	distanceMeters := geo.HaversineMeters(sample.Lat, sample.Lng, task.Dropoff.Lat, task.Dropoff.Lng)
	if distanceMeters > e.thresholdMeters {
		return nil
	}

	created, err := e.markers.Create(ctx, task.ID, thresholdKeyDropoff)
	if err != nil {
		return fmt.Errorf("proximity marker: %w", err)
	}
	if !created {
		// уведомление уже уходило в пределах TTL маркера
		return nil
	}

	event := entities.ShipperNearbyEvent{
		CourierID:      sample.CourierID,
		TaskID:         task.ID,
		DistanceMeters: distanceMeters,
		Timestamp:      time.Now().UTC(),
	}

	if err := e.events.PublishShipperNearby(ctx, event); err != nil {
		// маркер уже стоит: повторной эмиссии не будет, фиксируем потерю
		e.log.With(
			logger.NewField("task_id", task.ID),
			logger.NewField("courier_id", sample.CourierID),
			logger.NewField("error", err),
		).Error("shipper nearby event publish failed after marker creation")
		return fmt.Errorf("publish shipper nearby: %w", err)
	}

	e.hub.PublishStatus(task.ID, StatusShipperNearby,
		fmt.Sprintf("courier %d is %.0fm from dropoff", sample.CourierID, distanceMeters))

	e.log.With(
		logger.NewField("task_id", task.ID),
		logger.NewField("courier_id", sample.CourierID),
		logger.NewField("distance_m", distanceMeters),
	).Info("shipper nearby event emitted")
	return nil
}
