package flashcard

import "errors"

// ErrInvalidShape is returned when an input record is missing a field the
// computation cannot default.
var ErrInvalidShape = errors.New("flashcard: invalid input shape")
