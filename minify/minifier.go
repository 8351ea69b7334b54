package minify

import (
	"fmt"
	"strings"

	cssmin "github.com/pipe01/minhtml/internal/css"
	jsmin "github.com/pipe01/minhtml/internal/js"
	"github.com/pipe01/minhtml/internal/lexer"
	"github.com/pipe01/minhtml/internal/parser"
	"github.com/pipe01/minhtml/internal/rules"
	"github.com/pipe01/minhtml/internal/urlmin"
	"golang.org/x/exp/slices"
)

// boundary describes what a text run borders on, which decides whether
// whitespace next to it can be dropped outright.
type boundary int

const (
	bInline boundary = iota
	bBlock
	bFragment
)

type openElement struct {
	name        string
	significant bool
	raw         bool

	// scriptType is the lower-cased type attribute of an open script
	// element, or "" when absent.
	scriptType string
}

type context struct {
	opts   Options
	tokens []lexer.Token

	out   strings.Builder
	stack []openElement
	prev  boundary
	i     int
}

func (c *context) run() (string, error) {
	if c.opts.RemoveComments {
		c.tokens = slices.DeleteFunc(c.tokens, func(tk lexer.Token) bool {
			return tk.Type == lexer.TokenComment && !preserveComment(tk.Raw)
		})

		// Text runs that only a removed comment kept apart must collapse as
		// one run.
		c.tokens = mergeTextTokens(c.tokens)
	}

	c.prev = bBlock

	for c.i = 0; c.i < len(c.tokens); c.i++ {
		tk := &c.tokens[c.i]

		switch tk.Type {
		case lexer.TokenText:
			c.writeText(tk)

		case lexer.TokenStartTag:
			if err := c.writeStartTag(tk); err != nil {
				return "", err
			}

		case lexer.TokenEndTag:
			c.writeEndTag(tk)

		case lexer.TokenComment, lexer.TokenConditionalComment, lexer.TokenCDATA:
			c.out.WriteString(tk.Raw)
			c.prev = bInline

		case lexer.TokenCustomFragment:
			c.out.WriteString(tk.Raw)
			c.prev = bFragment

		case lexer.TokenDoctype:
			if c.opts.UseShortDoctype {
				c.out.WriteString("<!doctype html>")
			} else {
				c.out.WriteString(tk.Raw)
			}
			c.prev = bBlock

		case lexer.TokenEOF:

		default:
			return "", &EngineError{
				Inner:    fmt.Errorf("unhandled token type %s", tk.Type),
				Location: tk.Start,
			}
		}
	}

	return c.out.String(), nil
}

func (c *context) top() *openElement {
	if len(c.stack) == 0 {
		return nil
	}

	return &c.stack[len(c.stack)-1]
}

// significant reports whether any open element preserves whitespace.
func (c *context) significant() bool {
	for i := range c.stack {
		if c.stack[i].significant {
			return true
		}
	}

	return false
}

func (c *context) writeText(tk *lexer.Token) {
	if top := c.top(); top != nil && top.raw {
		switch top.name {
		case "script":
			if c.opts.MinifyJS && jsMime(top.scriptType) {
				if v, err := c.jsDelegate(tk.Raw); err == nil {
					c.out.WriteString(v)
					c.prev = bInline
					return
				}
			}

			c.out.WriteString(tk.Raw)
			c.prev = bInline
			return

		case "style":
			if c.opts.MinifyCSS {
				if v, err := c.cssDelegate(tk.Raw); err == nil {
					c.out.WriteString(v)
					c.prev = bInline
					return
				}
			}

			c.out.WriteString(tk.Raw)
			c.prev = bInline
			return
		}

		// textarea is whitespace-significant and handled below; title
		// content collapses like any other text
	}

	if c.significant() || !c.opts.collapseEnabled() {
		c.out.WriteString(tk.Raw)
		c.prev = bInline
		return
	}

	collapsed := c.collapse(tk.Raw, c.prev, c.nextBoundary())
	if collapsed == "" {
		return
	}

	// Text runs separated by a dropped token would otherwise contribute one
	// space each.
	if (collapsed[0] == ' ' || collapsed[0] == '\n') && c.endsWithSpace() {
		collapsed = collapsed[1:]
		if collapsed == "" {
			return
		}
	}

	c.out.WriteString(collapsed)
	c.prev = bInline
}

func (c *context) writeStartTag(tk *lexer.Token) error {
	t, err := parser.ParseTag(tk)
	if err != nil {
		return &EngineError{Inner: err, Location: tk.Start}
	}

	if c.opts.RemoveEmptyElements && c.dropEmptyElement(t) {
		return nil
	}

	c.writeTag(t)

	if !t.SelfClosing && !rules.Void(t.LowerName) {
		top := openElement{
			name:        t.LowerName,
			significant: rules.WhitespaceSignificant(t.LowerName),
			raw:         rules.RawText(t.LowerName),
		}

		if t.LowerName == "script" {
			top.scriptType = scriptTypeOf(t)
		}

		c.stack = append(c.stack, top)
	}

	if rules.Inline(t.LowerName) {
		c.prev = bInline
	} else {
		c.prev = bBlock
	}

	return nil
}

func (c *context) writeEndTag(tk *lexer.Token) {
	name := tagNameOf(tk.Raw)
	lower := strings.ToLower(name)

	// A stray end tag pops nothing: the stack only unwinds on a match.
	if top := c.top(); top != nil && top.name == lower {
		c.stack = c.stack[:len(c.stack)-1]
	}

	c.out.WriteString("</")
	c.out.WriteString(name)
	c.out.WriteByte('>')

	if rules.Inline(lower) {
		c.prev = bInline
	} else {
		c.prev = bBlock
	}
}

// dropEmptyElement skips a start tag whose element holds no content, along
// with its end tag. Whitespace-only content counts as empty when collapsing
// would erase it anyway. Removal is single-pass: an element that only becomes
// empty because its sole child was removed is kept.
func (c *context) dropEmptyElement(t *parser.Tag) bool {
	if t.SelfClosing || rules.Void(t.LowerName) {
		return false
	}

	switch t.LowerName {
	case "html", "head", "body", "script", "style", "textarea":
		return false
	}

	j := c.i + 1

	if j < len(c.tokens) && c.tokens[j].Type == lexer.TokenText && c.erasable(c.tokens[j].Raw) {
		j++
	}

	if j >= len(c.tokens) || c.tokens[j].Type != lexer.TokenEndTag {
		return false
	}
	if strings.ToLower(tagNameOf(c.tokens[j].Raw)) != t.LowerName {
		return false
	}

	c.i = j
	return true
}

// erasable reports whether a text run would collapse to nothing between two
// block boundaries.
func (c *context) erasable(text string) bool {
	if strings.TrimLeft(text, " \t\n\f\r") != "" {
		return false
	}
	if !c.opts.collapseEnabled() || c.opts.ConservativeCollapse {
		return false
	}
	if c.opts.PreserveLineBreaks && strings.ContainsRune(text, '\n') {
		return false
	}

	return true
}

func (c *context) nextBoundary() boundary {
	for j := c.i + 1; j < len(c.tokens); j++ {
		switch c.tokens[j].Type {
		case lexer.TokenText, lexer.TokenComment, lexer.TokenConditionalComment, lexer.TokenCDATA:
			return bInline

		case lexer.TokenStartTag, lexer.TokenEndTag:
			if rules.Inline(strings.ToLower(tagNameOf(c.tokens[j].Raw))) {
				return bInline
			}
			return bBlock

		case lexer.TokenCustomFragment:
			return bFragment

		case lexer.TokenDoctype, lexer.TokenEOF:
			return bBlock
		}
	}

	return bBlock
}

func (c *context) endsWithSpace() bool {
	s := c.out.String()
	if s == "" {
		return false
	}

	last := s[len(s)-1]
	return last == ' ' || last == '\n'
}

func (c *context) cssDelegate(src string) (string, error) {
	if c.opts.CSS != nil {
		return c.opts.CSS(src)
	}

	return cssmin.Minify(src)
}

func (c *context) cssInlineDelegate(src string) (string, error) {
	if c.opts.CSS != nil {
		return c.opts.CSS(src)
	}

	return cssmin.MinifyInline(src)
}

func (c *context) jsDelegate(src string) (string, error) {
	if c.opts.JS != nil {
		return c.opts.JS(src)
	}

	return jsmin.Minify(src)
}

func (c *context) urlDelegate(src string) (string, error) {
	if c.opts.URL != nil {
		return c.opts.URL(src)
	}

	return urlmin.Minify(src, c.opts.URLBase)
}

func mergeTextTokens(tks []lexer.Token) []lexer.Token {
	out := tks[:0]

	for _, tk := range tks {
		if tk.Type == lexer.TokenText && len(out) > 0 && out[len(out)-1].Type == lexer.TokenText {
			last := &out[len(out)-1]
			last.Raw += tk.Raw
			last.Span.End = tk.Span.End
			continue
		}

		out = append(out, tk)
	}

	return out
}

// tagNameOf extracts the name from a raw tag token, case preserved.
func tagNameOf(raw string) string {
	i := 1
	if i < len(raw) && raw[i] == '/' {
		i++
	}

	j := i
	for j < len(raw) && isTagNameByte(raw[j]) {
		j++
	}

	return raw[i:j]
}

func scriptTypeOf(t *parser.Tag) string {
	for _, a := range t.Attributes {
		if strings.EqualFold(a.Name, "type") && a.HasValue {
			return strings.ToLower(strings.TrimSpace(a.Value))
		}
	}

	return ""
}

// jsMime reports whether a script type attribute denotes JavaScript.
func jsMime(typ string) bool {
	switch typ {
	case "", "text/javascript", "application/javascript", "module":
		return true
	}

	return false
}

func preserveComment(raw string) bool {
	content := strings.TrimPrefix(raw, "<!--")
	return strings.HasPrefix(content, "!")
}

func isTagNameByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') || b == '-' || b == ':'
}
