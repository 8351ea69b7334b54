package minify

import "regexp"

// Delegate is a sub-minifier: it receives the source text of an embedded
// block or attribute value and returns the minified text. A failing delegate
// never fails the document; the original text is kept instead.
type Delegate func(src string) (string, error)

// Options is an immutable configuration snapshot. It is built once per call
// and only read afterwards, so a single Options value can drive any number
// of concurrent minifications.
type Options struct {
	RemoveAttributeQuotes         bool
	RemoveComments                bool
	RemoveEmptyAttributes         bool
	RemoveRedundantAttributes     bool
	RemoveScriptTypeAttributes    bool
	RemoveStyleLinkTypeAttributes bool
	TrimCustomFragments           bool
	UseShortDoctype               bool
	CollapseWhitespace            bool
	ConservativeCollapse          bool
	PreserveLineBreaks            bool
	CollapseBooleanAttributes     bool
	RemoveEmptyElements           bool
	MinifyJS                      bool
	MinifyCSS                     bool
	MinifyURLs                    bool

	// CSS, JS and URL override the built-in sub-minifiers.
	CSS Delegate
	JS  Delegate
	URL Delegate

	// URLBase, when set, lets the URL minifier rewrite absolute URLs below
	// it as relative references.
	URLBase string

	// CustomFragments overrides the default custom fragment delimiters,
	// <% ... %> and <? ... ?>. Matched regions pass through every stage
	// byte-for-byte.
	CustomFragments []*regexp.Regexp
}

// Defaults returns the default minification profile: comments removed,
// empty and redundant attributes removed, script/style type attributes
// removed, whitespace collapsed, boolean attributes collapsed and the
// doctype shortened.
func Defaults() Options {
	return Options{
		RemoveComments:                true,
		RemoveEmptyAttributes:         true,
		RemoveRedundantAttributes:     true,
		RemoveScriptTypeAttributes:    true,
		RemoveStyleLinkTypeAttributes: true,
		CollapseWhitespace:            true,
		CollapseBooleanAttributes:     true,
		UseShortDoctype:               true,
	}
}

var defaultFragments = []*regexp.Regexp{
	regexp.MustCompile(`(?s)<%.*?%>`),
	regexp.MustCompile(`(?s)<\?.*?\?>`),
}

func (o *Options) fragments() []*regexp.Regexp {
	if o.CustomFragments != nil {
		return o.CustomFragments
	}

	return defaultFragments
}

// collapseEnabled reports whether any whitespace collapsing mode is active.
func (o *Options) collapseEnabled() bool {
	return o.CollapseWhitespace || o.ConservativeCollapse || o.PreserveLineBreaks
}
