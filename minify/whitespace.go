package minify

import "strings"

// collapse rewrites the whitespace of a text run per the active mode. Runs
// between words become a single space (or newline under PreserveLineBreaks),
// runs touching a block boundary are dropped, and under ConservativeCollapse
// nothing is ever dropped entirely.
func (c *context) collapse(text string, prev, next boundary) string {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		if !isWhitespace(text[i]) {
			b.WriteByte(text[i])
			i++
			continue
		}

		j := i
		hasNewline := false
		for j < len(text) && isWhitespace(text[j]) {
			if text[j] == '\n' {
				hasNewline = true
			}
			j++
		}

		atStart := i == 0
		atEnd := j == len(text)

		drop := false
		if !c.opts.ConservativeCollapse {
			switch {
			case atStart && atEnd:
				drop = c.droppable(prev, hasNewline) && c.droppable(next, hasNewline)
			case atStart:
				drop = c.droppable(prev, hasNewline)
			case atEnd:
				drop = c.droppable(next, hasNewline)
			}
		}

		if !drop {
			if c.opts.PreserveLineBreaks && hasNewline {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}

		i = j
	}

	return b.String()
}

func (c *context) droppable(at boundary, hasNewline bool) bool {
	if c.opts.PreserveLineBreaks && hasNewline {
		return false
	}

	switch at {
	case bBlock:
		return true
	case bFragment:
		return c.opts.TrimCustomFragments
	}

	return false
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\f' || b == '\r'
}
