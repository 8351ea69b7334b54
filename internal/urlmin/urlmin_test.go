package urlmin

import "testing"

func TestMinify(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		base     string
		expected string
	}{
		{"trims whitespace", "  /a/b  ", "", "/a/b"},
		{"drops empty query", "/search?", "", "/search"},
		{"no base keeps absolute", "http://example.com/x", "", "http://example.com/x"},
		{"below base", "http://example.com/docs/page.html", "http://example.com/docs/", "page.html"},
		{"base itself", "http://example.com/docs/", "http://example.com/docs/", "./"},
		{"keeps query and fragment", "http://example.com/docs/p.html?q=1#top", "http://example.com/docs/", "p.html?q=1#top"},
		{"different host", "http://other.com/docs/x", "http://example.com/docs/", "http://other.com/docs/x"},
		{"different scheme", "https://example.com/docs/x", "http://example.com/docs/", "https://example.com/docs/x"},
		{"relative input", "img/logo.png", "http://example.com/", "img/logo.png"},
		{"unparseable input", "%zz", "http://example.com/", "%zz"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Minify(c.raw, c.base)
			if err != nil {
				t.Fatalf("minify: %s", err)
			}

			if got != c.expected {
				t.Fatalf("expected %q, got %q", c.expected, got)
			}
		})
	}
}
