// Package parser turns a start-tag token into its tag name and ordered
// attribute list. It is as lenient as the lexer: bytes that cannot start an
// attribute are skipped, never failing the document.
package parser

import (
	"fmt"
	"strings"

	"github.com/pipe01/minhtml/internal/lexer"
)

type ParserError struct {
	Inner    error
	Location lexer.Location
}

func (e *ParserError) Unwrap() error {
	return e.Inner
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *ParserError) At() lexer.Location {
	return e.Location
}

type QuoteStyle int

const (
	QuoteNone QuoteStyle = iota
	QuoteSingle
	QuoteDouble
)

func (q QuoteStyle) Byte() byte {
	switch q {
	case QuoteSingle:
		return '\''
	case QuoteDouble:
		return '"'
	}

	return 0
}

type Attribute struct {
	// Name as written in the source, case preserved.
	Name string

	// Value of the attribute. Only meaningful when HasValue is set; an
	// attribute without "=" in the source is valueless, not empty.
	Value    string
	HasValue bool

	Quote QuoteStyle
}

type Tag struct {
	// Name as written in the source; LowerName is what rule tables match on.
	Name      string
	LowerName string

	Attributes  []Attribute
	SelfClosing bool
}

type parser struct {
	src []byte
	i   int
}

// ParseTag parses the raw source of a start-tag token, e.g.
// `<a href="/x" download>`. Declaration order and per-attribute quoting
// style are preserved.
func ParseTag(tk *lexer.Token) (*Tag, error) {
	if tk.Type != lexer.TokenStartTag {
		return nil, &ParserError{
			Inner:    fmt.Errorf("expected a start tag token, found %s", tk.Type),
			Location: tk.Start,
		}
	}

	p := parser{src: []byte(tk.Raw)}

	p.i++ // '<'

	name := p.takeName()

	t := Tag{
		Name:      name,
		LowerName: strings.ToLower(name),
	}

	for {
		p.skipWhitespace()

		b, eof := p.peek()
		if eof || b == '>' {
			break
		}

		if b == '/' {
			// Only a bare "/" right before the closing ">" marks the tag
			// self-closing. A "/" ending an unquoted value belongs to the
			// value and is consumed by parseAttribute instead.
			p.i++

			if _, eof := p.peek(); eof {
				t.SelfClosing = true
			}
			continue
		}

		attr, ok := p.parseAttribute()
		if !ok {
			// Junk that cannot start an attribute, skip it.
			p.i++
			continue
		}

		t.Attributes = append(t.Attributes, attr)
	}

	return &t, nil
}

func (p *parser) peek() (byte, bool) {
	// The final '>' is never consumed, so the tag source acts as its own
	// terminator.
	if p.i >= len(p.src)-1 {
		return 0, true
	}

	return p.src[p.i], false
}

func (p *parser) skipWhitespace() {
	for {
		b, eof := p.peek()
		if eof || !isWhitespace(b) {
			return
		}

		p.i++
	}
}

func (p *parser) takeName() string {
	start := p.i

	for {
		b, eof := p.peek()
		if eof || isWhitespace(b) || b == '/' || b == '=' || b == '>' {
			break
		}

		p.i++
	}

	return string(p.src[start:p.i])
}

func (p *parser) parseAttribute() (Attribute, bool) {
	name := p.takeName()
	if name == "" {
		return Attribute{}, false
	}

	attr := Attribute{Name: name}

	p.skipWhitespace()

	if b, eof := p.peek(); eof || b != '=' {
		return attr, true
	}
	p.i++ // '='

	p.skipWhitespace()

	attr.HasValue = true

	b, eof := p.peek()
	if eof {
		return attr, true
	}

	switch b {
	case '"', '\'':
		if b == '"' {
			attr.Quote = QuoteDouble
		} else {
			attr.Quote = QuoteSingle
		}

		p.i++
		start := p.i

		for {
			c, eof := p.peek()
			if eof {
				break
			}
			if c == b {
				break
			}
			p.i++
		}

		attr.Value = string(p.src[start:p.i])
		p.i++ // closing quote, or the terminator on unclosed values

	default:
		start := p.i

		for {
			c, eof := p.peek()
			if eof || isWhitespace(c) {
				break
			}
			p.i++
		}

		attr.Value = string(p.src[start:p.i])
	}

	return attr, true
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\f' || b == '\r'
}
