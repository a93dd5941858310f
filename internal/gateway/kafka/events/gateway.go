package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"tracking/internal/entities"
	"tracking/pkg/logger"
)

const eventTypeShipperNearby = "SHIPPER_NEARBY"

// shipperNearbyDTO wire-формат события для потребителей в других сервисах.
type shipperNearbyDTO struct {
	EventType      string  `json:"event_type"`
	TaskID         string  `json:"task_id"`
	CourierID      int64   `json:"courier_id"`
	DistanceMeters float64 `json:"distance_meters"`
	Timestamp      int64   `json:"timestamp"`
}

// Gateway публикует доменные события движка в Kafka. Ключ сообщения — task id,
// чтобы события одной задачи читались в порядке записи.
type Gateway struct {
	log      logger.Logger
	producer producer
	topic    string
}

func New(log logger.Logger, producer producer, topic string) *Gateway {
	return &Gateway{
		log:      log.With(),
		producer: producer,
		topic:    topic,
	}
}

func (g *Gateway) PublishShipperNearby(ctx context.Context, event entities.ShipperNearbyEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dto := shipperNearbyDTO{
		EventType:      eventTypeShipperNearby,
		TaskID:         event.TaskID,
		CourierID:      event.CourierID,
		DistanceMeters: event.DistanceMeters,
		Timestamp:      event.Timestamp.UnixMilli(),
	}

	payload, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("marshal shipper nearby event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     g.topic,
		Key:       sarama.StringEncoder(event.TaskID),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now().UTC(),
	}

	partition, offset, err := g.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("produce shipper nearby event: %s: %w", event.TaskID, err)
	}

	g.log.With(
		logger.NewField("task_id", event.TaskID),
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	).Info("shipper nearby event produced")
	return nil
}
