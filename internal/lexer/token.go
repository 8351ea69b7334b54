package lexer

import "fmt"

type TokenType int

const (
	TokenText TokenType = iota
	TokenStartTag
	TokenEndTag
	TokenComment
	TokenConditionalComment
	TokenDoctype
	TokenCDATA
	TokenCustomFragment

	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "Text"
	case TokenStartTag:
		return "Start tag"
	case TokenEndTag:
		return "End tag"
	case TokenComment:
		return "Comment"
	case TokenConditionalComment:
		return "Conditional comment"
	case TokenDoctype:
		return "Doctype"
	case TokenCDATA:
		return "CDATA"
	case TokenCustomFragment:
		return "Custom fragment"
	case TokenEOF:
		return "EOF"
	}

	return "<unknown>"
}

// Span is a half-open byte range [Start, End) into the source document.
type Span struct {
	Start, End int
}

func (s Span) Len() int {
	return s.End - s.Start
}

type Token struct {
	Type  TokenType
	Start Location
	Span  Span

	// Raw holds the exact source bytes of the token. Concatenating Raw over
	// all tokens of a document reconstructs the input byte-for-byte.
	Raw string
}

type Location struct {
	File string

	// 0-based
	Line, Column int
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line+1, l.Column+1)
}

// Warning records a malformation that the lexer recovered from, such as an
// unterminated comment or tag. The surrounding bytes are still emitted as
// text, so warnings never imply lost input.
type Warning struct {
	Message  string
	Location Location
}

func (w *Warning) String() string {
	return fmt.Sprintf("%s at %s", w.Message, &w.Location)
}
