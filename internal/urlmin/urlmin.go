// Package urlmin is the built-in URL sub-minifier delegate. It cleans up
// URL-bearing attribute values without changing where they point.
package urlmin

import (
	"net/url"
	"strings"
)

// Minify trims whitespace around a URL, drops an empty trailing query and,
// when base is non-empty, rewrites URLs below base as relative references.
// Values that do not parse are returned unchanged.
func Minify(raw, base string) (string, error) {
	v := strings.TrimSpace(raw)
	v = strings.TrimSuffix(v, "?")

	if base == "" {
		return v, nil
	}

	b, err := url.Parse(base)
	if err != nil {
		return v, nil
	}

	u, err := url.Parse(v)
	if err != nil {
		return v, nil
	}

	if !u.IsAbs() || u.Scheme != b.Scheme || u.Host != b.Host {
		return v, nil
	}

	rel := u.Path
	if strings.HasPrefix(rel, b.Path) {
		rel = strings.TrimPrefix(rel, b.Path)
		rel = strings.TrimPrefix(rel, "/")
	}
	if rel == "" {
		rel = "./"
	}

	if u.RawQuery != "" {
		rel += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		rel += "#" + u.Fragment
	}

	return rel, nil
}
