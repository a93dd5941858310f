package entities

import "time"

// ShipperNearbyEvent доменное событие "курьер рядом с точкой доставки".
// Эмитится не более одного раза на задачу в пределах TTL маркера.
type ShipperNearbyEvent struct {
	CourierID      int64
	TaskID         string
	DistanceMeters float64
	Timestamp      time.Time
}

// TaskStatusChangedEvent событие смены статуса задачи из Kafka.
type TaskStatusChangedEvent struct {
	TaskID    string
	CourierID int64
	Status    TaskStatusType
	Message   string
	Timestamp time.Time
}
