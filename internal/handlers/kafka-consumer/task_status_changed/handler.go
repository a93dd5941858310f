package task_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"tracking/internal/entities"
	historyservice "tracking/internal/service/history"
	"tracking/pkg/logger"
)

// statusChangedEvent wire-формат события task.status.changed.
type statusChangedEvent struct {
	TaskID    string `json:"task_id"`
	CourierID int64  `json:"courier_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Handler пишет смену статуса задачи в исторический трек курьера
// как audit-запись. Битые и невалидные сообщения подтверждаются и
// пропускаются: retry их не исправит.
type Handler struct {
	historyService           Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, historyService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		historyService:           historyService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("task.status.changed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("task.status.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("task.status.changed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("task", event.TaskID),
		logger.NewField("courier", event.CourierID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("task.status.changed processing")

	occurredAt := time.UnixMilli(event.Timestamp).UTC()
	if event.Timestamp == 0 {
		occurredAt = time.Now().UTC()
	}

	taskID := event.TaskID
	record := entities.HistoryRecord{
		CourierID:       event.CourierID,
		DateBucket:      occurredAt,
		TimestampMicros: occurredAt.UnixMicro(),
		TaskID:          &taskID,
		EventType:       entities.HistoryEventStatusChange,
		Metadata: map[string]string{
			"status":  event.Status,
			"message": event.Message,
		},
	}

	id, err := h.historyService.Append(ctx, record)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("task.status.changed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, historyservice.ErrInvalidCourierID),
			errors.Is(err, historyservice.ErrInvalidDateBucket):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("task.status.changed handler invalid event payload")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("task.status.changed handler failed to append audit record")
			// хранилище недоступно: не подтверждаем, сообщение перечитается
			return true
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("record_id", id),
	).Info("task.status.changed: processed")

	sess.MarkMessage(message, "")
	return false
}
