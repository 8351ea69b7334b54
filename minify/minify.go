// Package minify implements a native, synchronous HTML minifier: input text
// in, output text out, with an immutable configuration snapshot per call.
package minify

import (
	"regexp"
	"sort"

	"github.com/pipe01/minhtml/internal/lexer"
)

// Minify minifies an HTML document with the Defaults profile.
func Minify(html string) (string, error) {
	return MinifyWithOptions(html, Defaults())
}

// MinifyWithOptions minifies an HTML document. The only inputs it rejects
// are empty ones; malformed markup is tokenized leniently and passed through
// where it cannot be understood.
func MinifyWithOptions(html string, opts Options) (string, error) {
	if html == "" {
		return "", ErrEmptyInput
	}

	l := lexer.New([]byte(html), "", locateFragments(html, opts.fragments())...)

	c := &context{
		opts:   opts,
		tokens: l.Collect(),
	}

	return c.run()
}

// locateFragments finds every custom fragment span in the document before
// tokenization, so the lexer can emit them verbatim from any scanning mode.
// Overlapping matches are merged.
func locateFragments(html string, res []*regexp.Regexp) []lexer.Span {
	var spans []lexer.Span

	for _, re := range res {
		for _, m := range re.FindAllStringIndex(html, -1) {
			spans = append(spans, lexer.Span{Start: m[0], End: m[1]})
		}
	}

	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]

		if s.Start < last.End {
			if s.End > last.End {
				last.End = s.End
			}
		} else {
			merged = append(merged, s)
		}
	}

	return merged
}
