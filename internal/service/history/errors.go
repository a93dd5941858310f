package history

import "errors"

var (
	ErrInvalidCourierID  = errors.New("invalid courier id")
	ErrInvalidDateBucket = errors.New("invalid date bucket")
	ErrInvalidTimeRange  = errors.New("invalid time range")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrInvalidTaskID     = errors.New("invalid task id")
	ErrEmptyBatch        = errors.New("empty batch")

	ErrRecordNotFound = errors.New("history record not found")
)
