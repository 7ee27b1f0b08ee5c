package parser

import (
	"github.com/wiremark/wiremark/internal/wiremark/ast"
	"github.com/wiremark/wiremark/internal/wiremark/token"
)

// parseArray parses a bracketed positional list. Elements are either all
// string literals or all flat object literals; commas between elements are
// optional. An empty list parses as an empty StringList.
func (p *parser) parseArray() (ast.Value, error) {
	open := p.cur.Pos
	p.advance()

	var strs []string
	var objs []ast.Object
	for {
		switch p.cur.Type {
		case token.Error:
			return nil, p.lexical()
		case token.Comma:
			p.advance()
		case token.RBracket:
			p.advance()
			if len(objs) > 0 {
				return ast.ObjectList{Items: objs}, nil
			}
			return ast.StringList{Items: strs}, nil
		case token.EOF:
			return nil, syntaxf(open, "unclosed '[': missing ']' before end of input")
		case token.String:
			if len(objs) > 0 {
				return nil, syntaxf(p.cur.Pos, "array elements must be all strings or all objects")
			}
			strs = append(strs, p.cur.Literal)
			p.advance()
		case token.LBrace:
			if len(strs) > 0 {
				return nil, syntaxf(p.cur.Pos, "array elements must be all strings or all objects")
			}
			obj, err := p.parseObject()
			if err != nil {
				return nil, err
			}
			objs = append(objs, obj)
		default:
			return nil, syntaxf(p.cur.Pos, "expected value, comma, or closing bracket, got %s", p.cur.Type)
		}
	}
}

// parseObject parses one { key=value ... } literal inside an array. Values
// are scalars only; flags are permitted, nesting is not.
func (p *parser) parseObject() (ast.Object, error) {
	open := p.cur.Pos
	p.advance()

	var obj ast.Object
	seen := make(map[string]bool)
	for {
		switch p.cur.Type {
		case token.Error:
			return ast.Object{}, p.lexical()
		case token.Comma:
			p.advance()
		case token.RBrace:
			p.advance()
			return obj, nil
		case token.EOF:
			return ast.Object{}, syntaxf(open, "unclosed '{': missing '}' before end of input")
		case token.Ident:
			key := p.cur.Literal
			keyPos := p.cur.Pos
			if seen[key] {
				return ast.Object{}, syntaxf(keyPos, "duplicate attribute %q", key)
			}
			seen[key] = true
			p.advance()

			val := ast.Value(ast.Bool{Value: true})
			if p.cur.Type == token.Equals {
				p.advance()
				if p.cur.Type == token.LBracket || p.cur.Type == token.LBrace {
					return ast.Object{}, syntaxf(p.cur.Pos, "object literals may not contain nested arrays or objects")
				}
				v, err := p.parseScalar()
				if err != nil {
					return ast.Object{}, err
				}
				val = v
			}
			obj.Attrs = append(obj.Attrs, ast.Attr{Key: key, Value: val})
		default:
			return ast.Object{}, syntaxf(p.cur.Pos, "expected attribute or '}', got %s", p.cur.Type)
		}
	}
}
