package entities

import "time"

type HistoryEventType string

const (
	HistoryEventLocation     HistoryEventType = "location"
	HistoryEventStatusChange HistoryEventType = "status_change"
)

func (t HistoryEventType) String() string {
	return string(t)
}

// HistoryRecord запись исторического трека. Append-only: после записи
// не обновляется и не удаляется. Ключ партиции (CourierID, DateBucket),
// внутри партиции порядок TimestampMicros DESC, ID DESC.
type HistoryRecord struct {
	ID              int64
	CourierID       int64
	DateBucket      time.Time // дата без времени, UTC
	TimestampMicros int64
	Lat             float64
	Lng             float64
	Accuracy        *float64
	Speed           *float64
	Heading         *float64
	TaskID          *string
	EventType       HistoryEventType
	Metadata        map[string]string
}

// HistoryQuery опциональные параметры выборки трека за день.
type HistoryQuery struct {
	FromMicros *int64
	ToMicros   *int64
	Limit      *int
}

// BatchAppendError ошибка записи одного элемента батча.
type BatchAppendError struct {
	Index int
	Err   error
}

// BatchAppendResult итог батчевой записи: сколько записей легло
// и какие не легли. Частичный успех, а не общий откат.
type BatchAppendResult struct {
	Appended int
	Failed   []BatchAppendError
}
