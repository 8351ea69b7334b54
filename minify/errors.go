package minify

import (
	"errors"
	"fmt"

	"github.com/pipe01/minhtml/internal/lexer"
)

// ErrEmptyInput is returned when there is no document to minify. All other
// input irregularities are recovered from.
var ErrEmptyInput = errors.New("empty input")

// EngineError reports an internal invariant violation. It indicates a defect
// in the engine, not in the input: malformed markup never produces one.
type EngineError struct {
	Inner    error
	Location lexer.Location
}

func (e *EngineError) Unwrap() error {
	return e.Inner
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine defect: %s at %s", e.Inner, &e.Location)
}

func (e *EngineError) At() lexer.Location {
	return e.Location
}
