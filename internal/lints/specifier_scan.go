package lints

import (
	tt "github.com/implint/implint/internal/types"
)

// Specifier is one module-import specifier found in a source file:
// the unquoted text plus the span of the quoted literal, so a fix can
// splice in a replacement without touching anything else.
type Specifier struct {
	Text  string
	Start tt.Position // opening quote
	End   tt.Position // one past the closing quote
}

// ScanSpecifiers walks JS/TS source and yields every string literal
// sitting in import position: `import … from "x"`, `import "x"`,
// `export … from "x"`, dynamic `import("x")` and `require("x")`.
// Strings, template literals and comments are tracked so nothing
// inside them is mistaken for code. Anything that cannot be
// classified is skipped silently.
func ScanSpecifiers(src []byte) []Specifier {
	s := &specScanner{src: src, line: 1, col: 1}
	return s.scan()
}

type specScanner struct {
	src  []byte
	pos  int
	line int
	col  int

	lastIdent   string // identifier immediately before the cursor
	pendingCall string // identifier before an open paren, e.g. "require"
}

func (s *specScanner) scan() []Specifier {
	var specs []Specifier
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		case c == '\'' || c == '"':
			spec, ok := s.readString(c)
			if ok && s.inImportPosition() {
				specs = append(specs, spec)
			}
			s.lastIdent = ""
			s.pendingCall = ""
		case c == '`':
			s.skipTemplate()
			s.lastIdent = ""
			s.pendingCall = ""
		case isIdentByte(c):
			s.readIdent()
		case c == '(':
			s.pendingCall = s.lastIdent
			s.lastIdent = ""
			s.advance()
		default:
			if c == ')' {
				s.pendingCall = ""
			}
			s.lastIdent = ""
			s.advance()
		}
	}
	return specs
}

// inImportPosition reports whether the string just read sits where a
// module specifier belongs.
func (s *specScanner) inImportPosition() bool {
	switch s.lastIdent {
	case "from", "import":
		return true
	}
	switch s.pendingCall {
	case "import", "require":
		return true
	}
	return false
}

func (s *specScanner) readString(quote byte) (Specifier, bool) {
	start := s.position()
	s.advance() // opening quote
	textStart := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' {
			s.advance()
			s.advance()
			continue
		}
		if c == quote {
			text := string(s.src[textStart:s.pos])
			s.advance() // closing quote
			return Specifier{
				Text:  text,
				Start: start,
				End:   s.position(),
			}, true
		}
		if c == '\n' {
			break // unterminated; not a specifier
		}
		s.advance()
	}
	return Specifier{}, false
}

func (s *specScanner) skipTemplate() {
	s.advance() // opening backtick
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' {
			s.advance()
			s.advance()
			continue
		}
		s.advance()
		if c == '`' {
			return
		}
	}
}

func (s *specScanner) skipLineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.advance()
	}
}

func (s *specScanner) skipBlockComment() {
	s.advance()
	s.advance()
	for s.pos < len(s.src) {
		if s.src[s.pos] == '*' && s.peek(1) == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
}

func (s *specScanner) readIdent() {
	start := s.pos
	for s.pos < len(s.src) && isIdentByte(s.src[s.pos]) {
		s.advance()
	}
	s.lastIdent = string(s.src[start:s.pos])
}

func (s *specScanner) position() tt.Position {
	return tt.Position{Line: s.line, Column: s.col, Offset: s.pos}
}

func (s *specScanner) advance() {
	if s.pos >= len(s.src) {
		return
	}
	if s.src[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

func (s *specScanner) peek(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
