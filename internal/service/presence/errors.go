package presence

import "errors"

var ErrInvalidCourierID = errors.New("invalid courier id")
