package taskinfo

import "errors"

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUnavailable  = errors.New("task service unavailable")
)
