package location

import "errors"

var (
	ErrInvalidCourierID   = errors.New("invalid courier id")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrEmptyBatch         = errors.New("empty batch")

	ErrLocationNotFound = errors.New("location not found")
)
