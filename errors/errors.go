package errors

import "github.com/pipe01/minhtml/internal/lexer"

// SituatedErr is an error that knows where in the source document it
// happened.
type SituatedErr interface {
	Unwrap() error
	At() lexer.Location
}
