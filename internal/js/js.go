// Package js is the built-in JavaScript sub-minifier delegate, backed by
// tdewolff/minify.
package js

import (
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

var minifier = minify.New()

// Minify minifies a script, e.g. the contents of a <script> element or an
// event handler attribute.
func Minify(src string) (string, error) {
	var b strings.Builder

	if err := js.Minify(minifier, &b, strings.NewReader(src), nil); err != nil {
		return "", err
	}

	return b.String(), nil
}
