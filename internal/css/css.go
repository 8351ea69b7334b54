// Package css is the built-in CSS sub-minifier delegate, backed by
// tdewolff/minify.
package css

import (
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

var minifier = minify.New()

var inlineParams = map[string]string{"inline": "1"}

// Minify minifies a stylesheet, e.g. the contents of a <style> element.
func Minify(src string) (string, error) {
	var b strings.Builder

	if err := css.Minify(minifier, &b, strings.NewReader(src), nil); err != nil {
		return "", err
	}

	return b.String(), nil
}

// MinifyInline minifies a bare declaration list, as found in a style
// attribute.
func MinifyInline(src string) (string, error) {
	var b strings.Builder

	if err := css.Minify(minifier, &b, strings.NewReader(src), inlineParams); err != nil {
		return "", err
	}

	return b.String(), nil
}
