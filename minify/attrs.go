package minify

import (
	"strings"

	"github.com/pipe01/minhtml/internal/parser"
	"github.com/pipe01/minhtml/internal/rules"
)

func (c *context) writeTag(t *parser.Tag) {
	c.out.WriteByte('<')
	c.out.WriteString(t.Name)

	for _, attr := range t.Attributes {
		attr, keep := c.minifyAttr(t, attr)
		if !keep {
			continue
		}

		c.writeAttr(attr)
	}

	if t.SelfClosing {
		c.out.WriteString("/>")
	} else {
		c.out.WriteByte('>')
	}
}

// minifyAttr applies the attribute passes in their fixed order: redundancy
// removal, boolean collapsing, empty removal, sub-minifier delegation.
// Collapsing a boolean before quote handling matters: a value that just went
// away must not leave a dangling "=".
func (c *context) minifyAttr(t *parser.Tag, a parser.Attribute) (parser.Attribute, bool) {
	lname := strings.ToLower(a.Name)
	lval := strings.ToLower(strings.TrimSpace(a.Value))

	if a.HasValue {
		if c.opts.RemoveScriptTypeAttributes && t.LowerName == "script" &&
			lname == "type" && lval == "text/javascript" {
			return a, false
		}

		if c.opts.RemoveStyleLinkTypeAttributes &&
			(t.LowerName == "style" || t.LowerName == "link") &&
			lname == "type" && lval == "text/css" {
			return a, false
		}

		if c.opts.RemoveRedundantAttributes && rules.Redundant(t.LowerName, lname, lval) {
			return a, false
		}
	}

	if c.opts.CollapseBooleanAttributes && rules.BooleanAttr(lname) {
		a.Value = ""
		a.HasValue = false
		a.Quote = parser.QuoteNone

		return a, true
	}

	if c.opts.RemoveEmptyAttributes && a.HasValue && a.Value == "" && rules.SafeToEmpty(lname) {
		return a, false
	}

	if a.HasValue {
		switch {
		case c.opts.MinifyCSS && lname == "style":
			if v, err := c.cssInlineDelegate(a.Value); err == nil {
				a.Value = v
			}

		case c.opts.MinifyJS && strings.HasPrefix(lname, "on"):
			if v, err := c.jsDelegate(a.Value); err == nil {
				a.Value = strings.TrimSuffix(v, ";")
			}

		case c.opts.MinifyURLs && rules.URLAttr(t.LowerName, lname):
			if v, err := c.urlDelegate(a.Value); err == nil {
				a.Value = v
			}
		}
	}

	return a, true
}

func (c *context) writeAttr(a parser.Attribute) {
	c.out.WriteByte(' ')
	c.out.WriteString(a.Name)

	if !a.HasValue {
		return
	}

	c.out.WriteByte('=')

	// Quote removal only fires when the bare value re-tokenizes identically.
	if bareSafe(a.Value) && (c.opts.RemoveAttributeQuotes || a.Quote == parser.QuoteNone) {
		c.out.WriteString(a.Value)
		return
	}

	q := a.Quote.Byte()
	if q == 0 {
		q = '"'
	}

	v := a.Value
	if strings.IndexByte(v, q) >= 0 {
		other := byte('\'')
		if q == '\'' {
			other = '"'
		}

		if strings.IndexByte(v, other) < 0 {
			q = other
		} else {
			q = '"'
			v = strings.ReplaceAll(v, `"`, "&#34;")
		}
	}

	c.out.WriteByte(q)
	c.out.WriteString(v)
	c.out.WriteByte(q)
}

// bareSafe reports whether a value can be emitted without quotes: non-empty
// and free of whitespace, quotes, backticks, "=", "<" and ">".
func bareSafe(v string) bool {
	return v != "" && !strings.ContainsAny(v, "\"'`=<> \t\n\f\r")
}
