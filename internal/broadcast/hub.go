package broadcast

import (
	"encoding/json"
	"sync"
	"time"

	"tracking/internal/entities"
	"tracking/pkg/logger"
)

// LocationFrame кадр позиции, уходящий наблюдателям группы задачи.
type LocationFrame struct {
	Type      string   `json:"type"`
	TaskID    string   `json:"task_id"`
	CourierID int64    `json:"courier_id"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Heading   *float64 `json:"heading,omitempty"`
	Speed     *float64 `json:"speed,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// StatusFrame кадр статуса задачи.
type StatusFrame struct {
	Type      string `json:"type"`
	TaskID    string `json:"task_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

const (
	frameTypeLocation = "location"
	frameTypeStatus   = "status"
)

// Hub pub/sub фан-аут по идентификатору задачи доставки.
//
// Явный реестр групп вместо амбиентного состояния: владеет конкурентной мапой
// task id -> множество подписок, время жизни привязано к конструированию и
// Shutdown самого хаба. Доставка at-most-once на подписчика: медленный
// потребитель с переполненным буфером отключается, гарантий через реконнект
// нет — наблюдатель пере-join'ится и может пропустить промежуточные кадры.
type Hub struct {
	log handlerLogger

	mu     sync.RWMutex
	groups map[string]map[*Subscriber]struct{}
}

func NewHub(log handlerLogger) *Hub {
	return &Hub{
		log:    log.With(),
		groups: make(map[string]map[*Subscriber]struct{}),
	}
}

func (h *Hub) Join(sub *Subscriber, taskID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[taskID]
	if !ok {
		group = make(map[*Subscriber]struct{})
		h.groups[taskID] = group
	}
	group[sub] = struct{}{}
}

// Leave идемпотентен: выход из группы, где подписчика нет, — no-op.
func (h *Hub) Leave(sub *Subscriber, taskID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if group, ok := h.groups[taskID]; ok {
		delete(group, sub)
	}
}

// Disconnect снимает подписчика со всех групп и завершает его.
// Публикация в уже отключенную подписку молча теряется.
func (h *Hub) Disconnect(sub *Subscriber) {
	h.mu.Lock()
	for _, group := range h.groups {
		delete(group, sub)
	}
	h.mu.Unlock()

	sub.shutdown()
}

func (h *Hub) PublishLocation(taskID string, sample entities.LocationSample) {
	frame := LocationFrame{
		Type:      frameTypeLocation,
		TaskID:    taskID,
		CourierID: sample.CourierID,
		Lat:       sample.Lat,
		Lng:       sample.Lng,
		Heading:   sample.Heading,
		Speed:     sample.Speed,
		Timestamp: sample.CapturedAt.UnixMilli(),
	}
	h.publish(taskID, frame)
}

func (h *Hub) PublishStatus(taskID, status, message string) {
	frame := StatusFrame{
		Type:      frameTypeStatus,
		TaskID:    taskID,
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC().UnixMilli(),
	}
	h.publish(taskID, frame)
}

func (h *Hub) publish(taskID string, frame interface{}) {
	payload, err := json.Marshal(frame)
	if err != nil {
		h.log.With(
			logger.NewField("task_id", taskID),
			logger.NewField("error", err),
		).Error("marshal broadcast frame")
		return
	}

	var slow []*Subscriber

	h.mu.RLock()
	for sub := range h.groups[taskID] {
		select {
		case sub.send <- payload:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.log.With(
			logger.NewField("task_id", taskID),
			logger.NewField("subscriber", sub.ID.String()),
		).Warn("dropping slow broadcast subscriber")
		h.Disconnect(sub)
	}
}

// CleanupEmptyGroups убирает группы без подписчиков, возвращает число удаленных.
func (h *Hub) CleanupEmptyGroups() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for taskID, group := range h.groups {
		if len(group) == 0 {
			delete(h.groups, taskID)
			removed++
		}
	}
	return removed
}

// Subscribers текущий размер группы задачи.
func (h *Hub) Subscribers(taskID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[taskID])
}

// Shutdown отключает всех подписчиков.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	subs := make([]*Subscriber, 0)
	for _, group := range h.groups {
		for sub := range group {
			subs = append(subs, sub)
		}
	}
	h.groups = make(map[string]map[*Subscriber]struct{})
	h.mu.Unlock()

	for _, sub := range subs {
		sub.shutdown()
	}
}
