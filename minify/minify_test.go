package minify_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/pipe01/minhtml/minify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string, opts minify.Options) string {
	t.Helper()

	out, err := minify.MinifyWithOptions(src, opts)
	require.NoError(t, err)

	return out
}

func TestEmptyInput(t *testing.T) {
	_, err := minify.Minify("")
	require.ErrorIs(t, err, minify.ErrEmptyInput)

	_, err = minify.MinifyWithOptions("", minify.Options{})
	require.ErrorIs(t, err, minify.ErrEmptyInput)
}

func TestNoOptionsIsIdentity(t *testing.T) {
	src := "<!DOCTYPE html>\n<p title=\"blah\" id='moo'>  foo  </p>\n<!-- note -->\n"

	assert.Equal(t, src, run(t, src, minify.Options{}))
}

func TestRemoveAttributeQuotes(t *testing.T) {
	opts := minify.Options{RemoveAttributeQuotes: true}

	out := run(t, `<p title="blah" id="moo">foo</p>`, opts)
	assert.Equal(t, `<p title=blah id=moo>foo</p>`, out)
}

func TestQuoteRemovalSafety(t *testing.T) {
	opts := minify.Options{RemoveAttributeQuotes: true}

	cases := []struct{ src, expected string }{
		{`<p title="a b">x</p>`, `<p title="a b">x</p>`},
		{`<p alt="x>y">x</p>`, `<p alt="x>y">x</p>`},
		{`<p data-x="a=b">x</p>`, `<p data-x="a=b">x</p>`},
		{`<p data-x="">x</p>`, `<p data-x="">x</p>`},
		{`<p data-x="a'b">x</p>`, `<p data-x="a'b">x</p>`},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, run(t, c.src, opts), "input %q", c.src)
	}
}

func TestRemoveComments(t *testing.T) {
	opts := minify.Options{RemoveComments: true}

	out := run(t, `<p>foo</p><!-- a comment --><div>bar</div>`, opts)
	assert.Equal(t, `<p>foo</p><div>bar</div>`, out)
}

func TestPreservedComments(t *testing.T) {
	opts := minify.Options{RemoveComments: true}

	out := run(t, `<p>a</p><!--! license --><p>b</p>`, opts)
	assert.Equal(t, `<p>a</p><!--! license --><p>b</p>`, out)
}

func TestConditionalComments(t *testing.T) {
	src := `<p>a</p><!--[if lt IE 9]><script src="shim.js"></script><![endif]--><p>b</p>`

	out := run(t, src, minify.Options{RemoveComments: true})
	assert.Equal(t, src, out)

	src = `<![if !IE]><link href="a.css" rel="stylesheet"><![endif]>`
	out = run(t, src, minify.Options{RemoveComments: true})
	assert.Equal(t, src, out)
}

func TestCollapseWhitespace(t *testing.T) {
	opts := minify.Options{CollapseWhitespace: true}

	out := run(t, `<p>  foo   bar  </p>   <div>  baz  </div>`, opts)
	assert.Equal(t, `<p>foo bar</p><div>baz</div>`, out)
}

func TestCollapseKeepsInlineSpacing(t *testing.T) {
	opts := minify.Options{CollapseWhitespace: true}

	out := run(t, `<p>a <span> b </span> c</p>`, opts)
	assert.Equal(t, `<p>a <span> b </span> c</p>`, out)
}

func TestCollapseAroundRemovedComment(t *testing.T) {
	opts := minify.Options{CollapseWhitespace: true, RemoveComments: true}

	out := run(t, "<div>\n  <!-- note -->\n  <p>x</p>\n</div>", opts)
	assert.Equal(t, `<div><p>x</p></div>`, out)
}

func TestPreservesSignificantWhitespace(t *testing.T) {
	opts := minify.Options{CollapseWhitespace: true}

	src := "<pre>  a\n\t b  </pre>"
	assert.Equal(t, src, run(t, src, opts))

	src = "<textarea> keep  this </textarea>"
	assert.Equal(t, src, run(t, src, opts))

	out := run(t, "<div>\n<pre> x  y </pre>\n</div>", opts)
	assert.Equal(t, "<div><pre> x  y </pre></div>", out)
}

func TestConservativeCollapse(t *testing.T) {
	opts := minify.Options{CollapseWhitespace: true, ConservativeCollapse: true}

	out := run(t, "<p>  foo   bar  </p>\n<div>baz</div>", opts)
	assert.Equal(t, `<p> foo bar </p> <div>baz</div>`, out)
}

func TestPreserveLineBreaks(t *testing.T) {
	opts := minify.Options{CollapseWhitespace: true, PreserveLineBreaks: true}

	out := run(t, "<p>foo\n   bar</p>", opts)
	assert.Equal(t, "<p>foo\nbar</p>", out)

	out = run(t, "<div>\n<p>x</p>   \n</div>", opts)
	assert.Equal(t, "<div>\n<p>x</p>\n</div>", out)
}

func TestShortDoctype(t *testing.T) {
	opts := minify.Options{UseShortDoctype: true}

	src := `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><p>x</p>`
	assert.Equal(t, `<!doctype html><p>x</p>`, run(t, src, opts))
}

func TestCollapseBooleanAttributes(t *testing.T) {
	opts := minify.Options{CollapseBooleanAttributes: true}

	out := run(t, `<input type="checkbox" checked="checked" disabled="">`, opts)
	assert.Equal(t, `<input type="checkbox" checked disabled>`, out)
}

func TestRemoveEmptyAttributes(t *testing.T) {
	opts := minify.Options{RemoveEmptyAttributes: true}

	out := run(t, `<img src="a.png" alt="" id="">`, opts)
	assert.Equal(t, `<img src="a.png" alt="">`, out)

	out = run(t, `<p onclick="">x</p>`, opts)
	assert.Equal(t, `<p>x</p>`, out)

	// A valueless attribute is not an empty one.
	out = run(t, `<p hidden>x</p>`, opts)
	assert.Equal(t, `<p hidden>x</p>`, out)
}

func TestRemoveRedundantAttributes(t *testing.T) {
	opts := minify.Options{RemoveRedundantAttributes: true}

	out := run(t, `<form method="GET"><input type="text"></form>`, opts)
	assert.Equal(t, `<form><input></form>`, out)

	out = run(t, `<input type="checkbox">`, opts)
	assert.Equal(t, `<input type="checkbox">`, out)
}

func TestRemoveTypeAttributes(t *testing.T) {
	out := run(t, `<script type="text/javascript">var a = 1;</script>`,
		minify.Options{RemoveScriptTypeAttributes: true})
	assert.Equal(t, `<script>var a = 1;</script>`, out)

	out = run(t, `<link rel="stylesheet" type="text/css" href="a.css">`,
		minify.Options{RemoveStyleLinkTypeAttributes: true})
	assert.Equal(t, `<link rel="stylesheet" href="a.css">`, out)

	out = run(t, `<script type="module">import "./a.js";</script>`,
		minify.Options{RemoveScriptTypeAttributes: true})
	assert.Equal(t, `<script type="module">import "./a.js";</script>`, out)
}

func TestRemoveEmptyElements(t *testing.T) {
	opts := minify.Options{RemoveEmptyElements: true}

	out := run(t, `<div><p></p><span>x</span></div>`, opts)
	assert.Equal(t, `<div><span>x</span></div>`, out)

	opts.CollapseWhitespace = true
	out = run(t, "<div><p>   </p>x</div>", opts)
	assert.Equal(t, `<div>x</div>`, out)

	// Scripts may be empty on purpose.
	out = run(t, `<script src="a.js"></script>`, opts)
	assert.Equal(t, `<script src="a.js"></script>`, out)

	// Removal is single-pass: a parent emptied by it stays.
	out = run(t, `<div><p><b></b></p></div>`, minify.Options{RemoveEmptyElements: true})
	assert.Equal(t, `<div><p></p></div>`, out)
}

func TestLeniency(t *testing.T) {
	cases := []struct{ src, expected string }{
		{`<p>a</p></section><p>b</p>`, `<p>a</p></section><p>b</p>`},
		{`a < b && c > d`, `a < b && c > d`},
		{`<123>x`, `<123>x`},
		{`</ nope>`, `</ nope>`},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, run(t, c.src, minify.Defaults()), "input %q", c.src)
	}
}

func TestCustomFragments(t *testing.T) {
	opts := minify.Options{CollapseWhitespace: true}

	out := run(t, `<div>  <% if x %>  <p>y</p>  <% end %>  </div>`, opts)
	assert.Equal(t, `<div> <% if x %> <p>y</p> <% end %> </div>`, out)

	opts.TrimCustomFragments = true
	out = run(t, `<div>  <% if x %>  <p>y</p>  <% end %>  </div>`, opts)
	assert.Equal(t, `<div><% if x %><p>y</p><% end %></div>`, out)

	// Fragment contents pass through every stage untouched.
	out = run(t, `<p><% a   <div>   b %></p>`, opts)
	assert.Equal(t, `<p><% a   <div>   b %></p>`, out)

	out = run(t, `<p><? echo $x ?></p>`, minify.Options{})
	assert.Equal(t, `<p><? echo $x ?></p>`, out)
}

func TestFragmentInAttributeValue(t *testing.T) {
	opts := minify.Options{CollapseWhitespace: true}

	// The first fragment sits inside an attribute value; the second must
	// still pass through untouched.
	src := `<p title="<% a %>">x</p><p><% b   c %></p>`
	assert.Equal(t, src, run(t, src, opts))
}

func TestUnquotedValueTrailingSlash(t *testing.T) {
	src := `<a href=x/>y</a>`
	assert.Equal(t, src, run(t, src, minify.Options{}))
}

func TestCustomFragmentOverride(t *testing.T) {
	opts := minify.Options{
		CustomFragments: []*regexp.Regexp{regexp.MustCompile(`(?s)\{\{.*?\}\}`)},
	}

	out := run(t, `<p>{{ name }}</p>`, opts)
	assert.Equal(t, `<p>{{ name }}</p>`, out)
}

func TestMinifyCSS(t *testing.T) {
	opts := minify.Options{MinifyCSS: true}

	out := run(t, `<style>a { color: red; }</style>`, opts)
	assert.Equal(t, `<style>a{color:red}</style>`, out)

	out = run(t, `<p style="color: red;">x</p>`, opts)
	assert.Equal(t, `<p style="color:red">x</p>`, out)
}

func TestMinifyJS(t *testing.T) {
	opts := minify.Options{MinifyJS: true}

	out := run(t, `<script>alert( "hi" );</script>`, opts)
	assert.Equal(t, `<script>alert("hi")</script>`, out)

	out = run(t, `<button onclick='alert( "hi" );'>x</button>`, opts)
	assert.Equal(t, `<button onclick='alert("hi")'>x</button>`, out)

	// Non-JavaScript scripts are not touched.
	out = run(t, `<script type="text/template"><div>  </div></script>`, opts)
	assert.Equal(t, `<script type="text/template"><div>  </div></script>`, out)
}

func TestMinifyURLs(t *testing.T) {
	opts := minify.Options{
		MinifyURLs: true,
		URLBase:    "http://example.com/docs/",
	}

	out := run(t, `<a href="http://example.com/docs/page.html">x</a>`, opts)
	assert.Equal(t, `<a href="page.html">x</a>`, out)

	out = run(t, `<a href="http://other.com/page.html">x</a>`, opts)
	assert.Equal(t, `<a href="http://other.com/page.html">x</a>`, out)
}

func TestDelegateOverride(t *testing.T) {
	opts := minify.Options{
		MinifyCSS: true,
		CSS: func(src string) (string, error) {
			return "X", nil
		},
	}

	out := run(t, `<style>a { color: red; }</style>`, opts)
	assert.Equal(t, `<style>X</style>`, out)
}

func TestDelegateFailureDegrades(t *testing.T) {
	opts := minify.Options{
		MinifyCSS: true,
		MinifyJS:  true,
		CSS: func(src string) (string, error) {
			return "", errors.New("css broke")
		},
		JS: func(src string) (string, error) {
			return "", errors.New("js broke")
		},
	}

	src := `<style>a { color: red; }</style><script>var a = 1;</script>`
	assert.Equal(t, src, run(t, src, opts))
}

func TestDefaultProfile(t *testing.T) {
	src := "<!DOCTYPE HTML>\n" +
		"<html>\n" +
		"  <head>\n" +
		"    <title>  My   Page  </title>\n" +
		"    <script type=\"text/javascript\">var a = 1;</script>\n" +
		"  </head>\n" +
		"  <body>\n" +
		"    <!-- note -->\n" +
		"    <p class=\"\">hello   world</p>\n" +
		"  </body>\n" +
		"</html>\n"

	expected := `<!doctype html><html><head><title>My Page</title>` +
		`<script>var a = 1;</script></head><body>` +
		`<p>hello world</p></body></html>`

	out, err := minify.Minify(src)
	require.NoError(t, err)
	assert.Equal(t, expected, out)
}

func TestIdempotence(t *testing.T) {
	srcs := []string{
		"<!DOCTYPE html>\n<html><body>\n  <p>a <b> c </b></p>\n  <pre> x  y </pre>\n</body></html>",
		`<p title="a b">x</p><!--[if IE]>y<![endif]-->`,
		`<div>  <% frag %>  </div>`,
		`<a href=x/>y</a>`,
	}

	for _, src := range srcs {
		once, err := minify.Minify(src)
		require.NoError(t, err)

		twice, err := minify.Minify(once)
		require.NoError(t, err)

		assert.Equal(t, once, twice, "input %q", src)
	}
}
