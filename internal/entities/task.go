package entities

type TaskStatusType string

const (
	TaskCreated   TaskStatusType = "created"
	TaskAssigned  TaskStatusType = "assigned"
	TaskPickedUp  TaskStatusType = "picked_up"
	TaskDelivered TaskStatusType = "delivered"
	TaskCancelled TaskStatusType = "cancelled"
)

func (t TaskStatusType) String() string {
	return string(t)
}

// IsTerminal статус, после которого по задаче не будет новых событий.
func (t TaskStatusType) IsTerminal() bool {
	return t == TaskDelivered || t == TaskCancelled
}

// TaskInfo срез задачи доставки из внешнего task-сервиса.
// Dropoff может отсутствовать, пока адрес не геокодирован.
type TaskInfo struct {
	ID      string
	Status  TaskStatusType
	Dropoff *GeoPoint
}
