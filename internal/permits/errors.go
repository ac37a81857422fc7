package permits

import (
	"errors"
	"fmt"
)

// The three failure classes callers need to tell apart. An empty result
// set is never an error; these only cover bad input, an unreachable data
// source, and a response that parsed but lacks the expected shape.
var (
	ErrValidation  = errors.New("invalid query input")
	ErrUnavailable = errors.New("permit data source unavailable")
	ErrBadResponse = errors.New("unexpected response format")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
