package progress

import "errors"

// ErrInvalidShape is returned when an input record is missing a required field.
var ErrInvalidShape = errors.New("progress: invalid input shape")
