package main

import (
	goerrors "errors"
	"fmt"
	"os"

	"github.com/pipe01/minhtml/errors"
)

// printError reports an error to stderr, prefixed with its source location
// when it has one.
func printError(err error) {
	var serr errors.SituatedErr

	if goerrors.As(err, &serr) {
		loc := serr.At()
		fmt.Fprintf(os.Stderr, "%s: %s\n", &loc, serr.Unwrap())
		return
	}

	fmt.Fprintln(os.Stderr, err)
}
