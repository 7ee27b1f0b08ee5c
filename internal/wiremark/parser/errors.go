package parser

import (
	"fmt"

	"github.com/wiremark/wiremark/internal/wiremark/token"
)

// ErrorClass separates scanner-level failures from grammar-level ones.
type ErrorClass int

const (
	LexicalError ErrorClass = iota
	SyntaxError
)

func (c ErrorClass) String() string {
	if c == LexicalError {
		return "lexical error"
	}
	return "syntax error"
}

// Error is the single failure type of a parse call. It carries the class,
// the offending position, and an expectation message. A parse either
// returns a complete Document or exactly one *Error; there is no recovery
// and no partial tree.
type Error struct {
	Class ErrorClass
	Pos   token.Position
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func syntaxf(pos token.Position, format string, args ...any) *Error {
	return &Error{Class: SyntaxError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// lexical converts the scanner's error token into a fatal lexical error.
func (p *parser) lexical() *Error {
	return &Error{Class: LexicalError, Pos: p.cur.Pos, Msg: p.cur.Literal}
}
