// Package token defines the lexical tokens of the wiremark language and the
// source positions attached to them.
package token

import "fmt"

type Type int

const (
	EOF Type = iota
	Ident
	String
	Int
	Float
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Equals

	// Error carries a lexical error message in Literal. The scanner emits it
	// instead of failing in place; the parser turns it into a fatal error.
	Error
)

func (t Type) String() string {
	switch t {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case String:
		return "string"
	case Int:
		return "number"
	case Float:
		return "number"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Comma:
		return "','"
	case Equals:
		return "'='"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Position is a 1-based line/column location in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p precedes q in document order.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Column < q.Column)
}

// Range spans from the first character of a construct to one past its last.
type Range struct {
	Start Position
	End   Position
}

// Token is one lexeme. For String tokens Literal holds the decoded value,
// for Error tokens the error message, otherwise the raw text.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
	End     Position
}
