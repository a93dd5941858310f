package proximity

import "errors"

var ErrTaskLookupFailed = errors.New("task lookup failed")
