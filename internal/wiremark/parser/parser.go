// Package parser implements the wiremark grammar: a recursive-descent parser
// that turns markup text into the ast.Document tree, with 1-based source
// ranges attached to every node.
package parser

import (
	"strconv"

	"github.com/wiremark/wiremark/internal/wiremark/ast"
	"github.com/wiremark/wiremark/internal/wiremark/scanner"
	"github.com/wiremark/wiremark/internal/wiremark/token"
)

// maxDepth bounds block nesting so pathological input cannot exhaust the
// goroutine stack.
const maxDepth = 200

type parser struct {
	sc   *scanner.Scanner
	cur  token.Token
	peek token.Token
	last token.Position // exclusive end of the last consumed token
}

// Parse consumes the complete markup text and returns its Document, or a
// *Error describing the first lexical or syntax failure. The call holds no
// shared state; concurrent parses of different documents are safe.
func Parse(src string) (*ast.Document, error) {
	p := &parser{sc: scanner.New(src)}
	p.cur = p.sc.Next()
	p.peek = p.sc.Next()

	doc := &ast.Document{}
	for p.cur.Type != token.EOF {
		if p.cur.Type == token.Error {
			return nil, p.lexical()
		}
		if p.cur.Type != token.Ident {
			return nil, syntaxf(p.cur.Pos, "expected element keyword 'page', got %s", p.cur.Type)
		}
		kind, ok := ast.KindForKeyword(p.cur.Literal)
		if !ok {
			return nil, syntaxf(p.cur.Pos, "unknown element keyword %q", p.cur.Literal)
		}
		if kind != ast.KindPage {
			return nil, syntaxf(p.cur.Pos, "element %q must appear inside a page block", p.cur.Literal)
		}
		page, err := p.parseElement(0)
		if err != nil {
			return nil, err
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func (p *parser) advance() {
	p.last = p.cur.End
	p.cur = p.peek
	p.peek = p.sc.Next()
}

// parseElement parses one element: keyword, optional quoted text slot,
// attributes, optional positional array, optional child block. The caller
// guarantees cur is an identifier.
func (p *parser) parseElement(depth int) (*ast.Node, error) {
	if depth > maxDepth {
		return nil, syntaxf(p.cur.Pos, "nesting too deep (more than %d levels)", maxDepth)
	}

	kind, ok := ast.KindForKeyword(p.cur.Literal)
	if !ok {
		return nil, syntaxf(p.cur.Pos, "unknown element keyword %q", p.cur.Literal)
	}
	node := &ast.Node{Kind: kind}
	node.Loc.Start = p.cur.Pos
	p.advance()

	if p.cur.Type == token.String {
		text := p.cur.Literal
		node.Text = &text
		p.advance()
		if p.cur.Type == token.String {
			return nil, syntaxf(p.cur.Pos, "element takes at most one string literal")
		}
	}

	if err := p.parseAttrs(node); err != nil {
		return nil, err
	}

	// The positional array, when present, must precede the child block.
	if p.cur.Type == token.LBracket {
		list, err := p.parseArray()
		if err != nil {
			return nil, err
		}
		node.List = list
	}

	if p.cur.Type == token.LBrace {
		open := p.cur.Pos
		p.advance()
		children, err := p.parseChildren(open, depth+1)
		if err != nil {
			return nil, err
		}
		node.Children = children
	}

	node.Loc.End = p.last
	return node, nil
}

// parseChildren parses elements until the '}' matching open.
func (p *parser) parseChildren(open token.Position, depth int) ([]*ast.Node, error) {
	var children []*ast.Node
	for {
		switch p.cur.Type {
		case token.Error:
			return nil, p.lexical()
		case token.RBrace:
			p.advance()
			return children, nil
		case token.EOF:
			return nil, syntaxf(open, "unclosed '{': missing '}' before end of input")
		case token.Ident:
			child, err := p.parseElement(depth)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		default:
			return nil, syntaxf(p.cur.Pos, "expected element keyword or '}', got %s", p.cur.Type)
		}
	}
}

// parseAttrs consumes boolean flags and key=value pairs in any order. A bare
// word that is an element keyword (and is not followed by '=') terminates
// the list: it starts the next sibling element.
func (p *parser) parseAttrs(node *ast.Node) error {
	seen := make(map[string]bool)
	for p.cur.Type == token.Ident {
		if ast.IsKeyword(p.cur.Literal) && p.peek.Type != token.Equals {
			return nil
		}
		key := p.cur.Literal
		keyPos := p.cur.Pos
		if key == "kind" || key == "type" || key == "loc" || key == "children" {
			return syntaxf(keyPos, "attribute name %q is reserved", key)
		}
		if seen[key] {
			return syntaxf(keyPos, "duplicate attribute %q", key)
		}
		seen[key] = true
		p.advance()

		val := ast.Value(ast.Bool{Value: true})
		if p.cur.Type == token.Equals {
			p.advance()
			v, err := p.parseScalar()
			if err != nil {
				return err
			}
			val = v
		}
		node.Attrs = append(node.Attrs, ast.Attr{Key: key, Value: val})
	}
	if p.cur.Type == token.Error {
		return p.lexical()
	}
	return nil
}

// parseScalar parses a single number, string, or bare identifier value.
func (p *parser) parseScalar() (ast.Value, error) {
	switch p.cur.Type {
	case token.Error:
		return nil, p.lexical()
	case token.String:
		v := ast.String{Value: p.cur.Literal}
		p.advance()
		return v, nil
	case token.Int:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return nil, syntaxf(p.cur.Pos, "invalid number %q", p.cur.Literal)
		}
		p.advance()
		return ast.Int{Value: n}, nil
	case token.Float:
		f, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return nil, syntaxf(p.cur.Pos, "invalid number %q", p.cur.Literal)
		}
		p.advance()
		return ast.Float{Value: f}, nil
	case token.Ident:
		v := ast.Ident{Value: p.cur.Literal}
		p.advance()
		return v, nil
	default:
		return nil, syntaxf(p.cur.Pos, "expected number, string, or identifier after '=', got %s", p.cur.Type)
	}
}
