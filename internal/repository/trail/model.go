package trail

import "time"

type HistoryRecordDB struct {
	ID              int64
	CourierID       int64
	DateBucket      time.Time
	TimestampMicros int64
	Lat             float64
	Lng             float64
	Accuracy        *float64
	Speed           *float64
	Heading         *float64
	TaskID          *string
	EventType       string
	Metadata        []byte
}
