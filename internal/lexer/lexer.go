package lexer

import (
	"fmt"
	"strings"

	"github.com/pipe01/minhtml/internal/rules"
)

const debugPrint = false

type stateFunc func() stateFunc

type state struct {
	byteIndex int
	line, col int

	tokenStart    int
	tokenStartLoc Location
}

// Lexer scans an HTML document into a flat sequence of tokens. It is lenient:
// markup that does not parse as a tag, comment, doctype or CDATA section is
// emitted as plain text, and scanning always continues to the end of the
// input. Every byte of the input ends up in exactly one token.
type Lexer struct {
	filename string
	file     []byte

	tokens chan Token

	// fragments are pre-located custom fragment spans, sorted by start
	// offset. Bytes inside a fragment are emitted verbatim as a single
	// TokenCustomFragment regardless of what they contain.
	fragments []Span
	nextFrag  int

	// rawTag is the lower-cased name of the raw-text element currently open,
	// or "" outside of one. Inside script/style/textarea/title content is not
	// HTML-escaped, so anything up to the matching end tag is literal text.
	rawTag string

	state

	warnings []Warning
}

func New(file []byte, fileName string, fragments ...Span) *Lexer {
	tks := make(chan Token, 1)

	lexer := &Lexer{
		tokens:    tks,
		file:      file,
		filename:  fileName,
		fragments: fragments,
	}

	go func() {
		defer close(tks)

		state := lexer.lexText()
		for state != nil {
			state = state()
		}

		tks <- Token{
			Type: TokenEOF,
			Start: Location{
				File:   lexer.filename,
				Line:   lexer.line,
				Column: lexer.col,
			},
			Span: Span{Start: len(lexer.file), End: len(lexer.file)},
		}
	}()

	return lexer
}

// Next returns the next token, or false after the EOF token has been
// consumed.
func (l *Lexer) Next() (*Token, bool) {
	t, ok := <-l.tokens
	if !ok {
		return nil, false
	}

	return &t, true
}

// Collect consumes the whole token stream, including the trailing EOF token.
func (l *Lexer) Collect() []Token {
	tks := []Token{}

	for t := range l.tokens {
		tks = append(tks, t)

		if t.Type == TokenEOF {
			break
		}
	}

	return tks
}

// Warnings reports the malformations recovered from during scanning. Only
// valid once the token stream has been fully consumed.
func (l *Lexer) Warnings() []Warning {
	return l.warnings
}

func (l *Lexer) atEOF() bool {
	return l.byteIndex >= len(l.file)
}

func (l *Lexer) take() (b byte, eof bool) {
	if l.atEOF() {
		return 0, true
	}

	b = l.file[l.byteIndex]
	l.byteIndex++
	l.col++

	if b == '\n' {
		l.line++
		l.col = 0
	}

	if debugPrint {
		fmt.Printf("take %q\n", b)
	}

	return b, false
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		l.take()
	}
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(off int) byte {
	if l.byteIndex+off >= len(l.file) {
		return 0
	}

	return l.file[l.byteIndex+off]
}

func (l *Lexer) hasPrefix(s string) bool {
	rest := l.file[l.byteIndex:]
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

func (l *Lexer) hasPrefixFold(s string) bool {
	rest := l.file[l.byteIndex:]
	return len(rest) >= len(s) && strings.EqualFold(string(rest[:len(s)]), s)
}

func (l *Lexer) emit(typ TokenType) {
	l.tokens <- Token{
		Type:  typ,
		Start: l.tokenStartLoc,
		Span:  Span{Start: l.tokenStart, End: l.byteIndex},
		Raw:   string(l.file[l.tokenStart:l.byteIndex]),
	}

	l.discard()
}

func (l *Lexer) discard() {
	l.tokenStart = l.byteIndex
	l.tokenStartLoc = Location{
		File:   l.filename,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *Lexer) isEmpty() bool {
	return l.byteIndex == l.tokenStart
}

func (l *Lexer) flushText() {
	if !l.isEmpty() {
		l.emit(TokenText)
	}
}

func (l *Lexer) warnAt(loc Location, format string, a ...any) {
	l.warnings = append(l.warnings, Warning{
		Message:  fmt.Sprintf(format, a...),
		Location: loc,
	})
}

func (l *Lexer) fragmentAt(idx int) (Span, bool) {
	// A fragment starting inside an enclosing token was consumed with it and
	// can no longer be emitted on its own.
	for l.nextFrag < len(l.fragments) && l.fragments[l.nextFrag].Start < idx {
		l.nextFrag++
	}

	if l.nextFrag < len(l.fragments) && l.fragments[l.nextFrag].Start == idx {
		return l.fragments[l.nextFrag], true
	}

	return Span{}, false
}

func (l *Lexer) lexText() stateFunc {
	for {
		if l.atEOF() {
			l.flushText()
			return nil
		}

		if f, ok := l.fragmentAt(l.byteIndex); ok {
			l.flushText()
			return l.lexFragment(f)
		}

		if l.rawTag != "" {
			if l.atRawTextEnd() {
				l.flushText()
				l.rawTag = ""
				return l.lexEndTag
			}

			l.take()
			continue
		}

		if l.peek() == '<' {
			if next := l.dispatchAngle(); next != nil {
				l.flushText()
				return next
			}
			// Nothing parses here, so the '<' is literal text.
		}

		l.take()
	}
}

// dispatchAngle decides what construct starts at the current '<', without
// consuming anything. A nil return means none does.
func (l *Lexer) dispatchAngle() stateFunc {
	switch {
	case l.hasPrefix("<!--"):
		return l.lexComment

	case l.hasPrefixFold("<!doctype"):
		return l.lexDoctype

	case l.hasPrefix("<![CDATA["):
		return l.lexCDATA

	case l.hasPrefixFold("<![if") || l.hasPrefixFold("<![endif"):
		return l.lexRevealedConditional

	case l.hasPrefix("</"):
		if isASCIILetter(l.peekAt(2)) {
			return l.lexEndTag
		}
		return nil

	default:
		if isASCIILetter(l.peekAt(1)) {
			return l.lexStartTag
		}
		return nil
	}
}

// atRawTextEnd reports whether the matching end tag of the currently open
// raw-text element starts at the current position.
func (l *Lexer) atRawTextEnd() bool {
	if !l.hasPrefixFold("</" + l.rawTag) {
		return false
	}

	switch l.peekAt(2 + len(l.rawTag)) {
	case '>', '/', ' ', '\t', '\n', '\f', '\r', 0:
		return true
	}

	return false
}

func (l *Lexer) lexFragment(f Span) stateFunc {
	return func() stateFunc {
		for l.byteIndex < f.End {
			l.take()
		}

		l.nextFrag++
		l.emit(TokenCustomFragment)

		return l.lexText
	}
}

func (l *Lexer) lexComment() stateFunc {
	start := l.tokenStartLoc

	l.advance(len("<!--"))
	contentStart := l.byteIndex

	for !l.atEOF() && !l.hasPrefix("-->") {
		l.take()
	}

	if l.atEOF() {
		l.warnAt(start, "unterminated comment")
		l.emit(TokenText)
		return nil
	}

	content := string(l.file[contentStart:l.byteIndex])
	l.advance(len("-->"))

	if isConditionalComment(content) {
		l.emit(TokenConditionalComment)
	} else {
		l.emit(TokenComment)
	}

	return l.lexText
}

func (l *Lexer) lexDoctype() stateFunc {
	start := l.tokenStartLoc

	for {
		b, eof := l.take()
		if eof {
			l.warnAt(start, "unterminated doctype")
			l.emit(TokenText)
			return nil
		}

		if b == '>' {
			l.emit(TokenDoctype)
			return l.lexText
		}
	}
}

func (l *Lexer) lexCDATA() stateFunc {
	start := l.tokenStartLoc

	l.advance(len("<![CDATA["))

	for !l.atEOF() && !l.hasPrefix("]]>") {
		l.take()
	}

	if l.atEOF() {
		l.warnAt(start, "unterminated CDATA section")
		l.emit(TokenText)
		return nil
	}

	l.advance(len("]]>"))
	l.emit(TokenCDATA)

	return l.lexText
}

// lexRevealedConditional scans a downlevel-revealed conditional comment such
// as <![if !IE]> or <![endif]>.
func (l *Lexer) lexRevealedConditional() stateFunc {
	start := l.tokenStartLoc

	for {
		b, eof := l.take()
		if eof {
			l.warnAt(start, "unterminated conditional comment")
			l.emit(TokenText)
			return nil
		}

		if b == '>' {
			l.emit(TokenConditionalComment)
			return l.lexText
		}
	}
}

func (l *Lexer) lexStartTag() stateFunc {
	start := l.tokenStartLoc

	l.take() // '<'

	nameStart := l.byteIndex
	for isTagNameByte(l.peek()) {
		l.take()
	}
	name := strings.ToLower(string(l.file[nameStart:l.byteIndex]))

	var quote byte
	var prev byte

	for {
		b, eof := l.take()
		if eof {
			l.warnAt(start, "unterminated tag <%s", name)
			l.emit(TokenText)
			return nil
		}

		if quote != 0 {
			if b == quote {
				quote = 0
			}
			continue
		}

		switch b {
		case '"', '\'':
			quote = b

		case '>':
			l.emit(TokenStartTag)

			if prev != '/' && rules.RawText(name) {
				l.rawTag = name
			}

			return l.lexText
		}

		prev = b
	}
}

func (l *Lexer) lexEndTag() stateFunc {
	start := l.tokenStartLoc

	for {
		b, eof := l.take()
		if eof {
			l.warnAt(start, "unterminated end tag")
			l.emit(TokenText)
			return nil
		}

		if b == '>' {
			l.emit(TokenEndTag)
			return l.lexText
		}
	}
}

// isConditionalComment reports whether a comment body belongs to a legacy
// downlevel-hidden conditional block, e.g. [if IE 9]> ... <![endif].
func isConditionalComment(content string) bool {
	c := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(c, "[if") || strings.Contains(c, "[endif]")
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isTagNameByte(b byte) bool {
	return isASCIILetter(b) || isASCIIDigit(b) || b == '-' || b == ':'
}
