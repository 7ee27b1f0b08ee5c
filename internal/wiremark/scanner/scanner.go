// Package scanner turns raw wiremark text into a stream of tokens.
//
// Comments and whitespace are consumed silently but still advance the
// line/column counters, so token positions always refer to the original
// text. Lexical failures (unterminated strings or block comments, stray
// characters) surface as a single token.Error carrying the offending
// start position.
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/wiremark/wiremark/internal/wiremark/token"
)

type Scanner struct {
	src  string
	off  int // byte offset of the next rune
	line int
	col  int
}

func New(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// Next returns the next token. After the input is exhausted it returns
// token.EOF forever. A token.Error token is terminal as well: the scanner
// does not attempt to resynchronize past a lexical error.
func (s *Scanner) Next() token.Token {
	for {
		r := s.peek()
		switch {
		case r == 0:
			pos := s.pos()
			return token.Token{Type: token.EOF, Pos: pos, End: pos}
		case unicode.IsSpace(r):
			s.advance()
		case r == '/':
			if tok, ok := s.skipComment(); !ok {
				return tok
			}
		default:
			return s.scanToken(r)
		}
	}
}

func (s *Scanner) scanToken(r rune) token.Token {
	start := s.pos()
	switch {
	case r == '"' || r == '\'':
		return s.scanString(r)
	case r == '-' || isDigit(r):
		return s.scanNumber()
	case isIdentStart(r):
		return s.scanIdent()
	}

	var typ token.Type
	switch r {
	case '{':
		typ = token.LBrace
	case '}':
		typ = token.RBrace
	case '[':
		typ = token.LBracket
	case ']':
		typ = token.RBracket
	case ',':
		typ = token.Comma
	case '=':
		typ = token.Equals
	default:
		s.advance()
		return s.errorToken(start, fmt.Sprintf("unexpected character %q", r))
	}
	s.advance()
	return token.Token{Type: typ, Literal: string(r), Pos: start, End: s.pos()}
}

// skipComment consumes a // or /* */ comment. It returns ok=false with an
// error token when the slash does not open a comment or the block comment
// never closes.
func (s *Scanner) skipComment() (token.Token, bool) {
	start := s.pos()
	switch s.peekAhead() {
	case '/':
		for r := s.peek(); r != 0 && r != '\n'; r = s.peek() {
			s.advance()
		}
		return token.Token{}, true
	case '*':
		s.advance()
		s.advance()
		for {
			r := s.peek()
			if r == 0 {
				return s.errorToken(start, "unterminated block comment"), false
			}
			s.advance()
			if r == '*' && s.peek() == '/' {
				s.advance()
				return token.Token{}, true
			}
		}
	default:
		s.advance()
		return s.errorToken(start, "unexpected character '/'"), false
	}
}

func (s *Scanner) scanString(quote rune) token.Token {
	start := s.pos()
	s.advance()
	var buf []rune
	for {
		r := s.peek()
		switch r {
		case 0:
			return s.errorToken(start, "unterminated string literal")
		case quote:
			s.advance()
			return token.Token{Type: token.String, Literal: string(buf), Pos: start, End: s.pos()}
		case '\\':
			s.advance()
			e := s.peek()
			if e == 0 {
				return s.errorToken(start, "unterminated string literal")
			}
			if e == 'n' {
				buf = append(buf, '\n')
			} else {
				// \" \' \\ and any other escaped rune decode to the rune itself.
				buf = append(buf, e)
			}
			s.advance()
		default:
			buf = append(buf, r)
			s.advance()
		}
	}
}

func (s *Scanner) scanNumber() token.Token {
	start := s.pos()
	lit := s.off
	if s.peek() == '-' {
		s.advance()
		if !isDigit(s.peek()) {
			return s.errorToken(start, "unexpected character '-'")
		}
	}
	for isDigit(s.peek()) {
		s.advance()
	}
	typ := token.Int
	if s.peek() == '.' && isDigit(s.peekAhead()) {
		typ = token.Float
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return token.Token{Type: typ, Literal: s.src[lit:s.off], Pos: start, End: s.pos()}
}

func (s *Scanner) scanIdent() token.Token {
	start := s.pos()
	lit := s.off
	for r := s.peek(); isIdentStart(r) || isDigit(r) || r == '-'; r = s.peek() {
		s.advance()
	}
	return token.Token{Type: token.Ident, Literal: s.src[lit:s.off], Pos: start, End: s.pos()}
}

func (s *Scanner) errorToken(pos token.Position, msg string) token.Token {
	return token.Token{Type: token.Error, Literal: msg, Pos: pos, End: s.pos()}
}

func (s *Scanner) pos() token.Position {
	return token.Position{Line: s.line, Column: s.col}
}

func (s *Scanner) peek() rune {
	if s.off >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.off:])
	return r
}

// peekAhead returns the rune after the current one, or 0 at end of input.
func (s *Scanner) peekAhead() rune {
	if s.off >= len(s.src) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s.src[s.off:])
	if s.off+size >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.off+size:])
	return r
}

func (s *Scanner) advance() {
	if s.off >= len(s.src) {
		return
	}
	r, size := utf8.DecodeRuneInString(s.src[s.off:])
	s.off += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
