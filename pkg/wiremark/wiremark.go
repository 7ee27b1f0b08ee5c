// Package wiremark is the public entry point: parse wireframe markup and
// turn it into HTML or the JSON node tree.
package wiremark

import (
	"github.com/wiremark/wiremark/internal/wiremark/ast"
	"github.com/wiremark/wiremark/internal/wiremark/export"
	"github.com/wiremark/wiremark/internal/wiremark/parser"
	"github.com/wiremark/wiremark/internal/wiremark/render"
)

// Document is the parsed AST root. See the internal ast package for the
// node shape.
type Document = ast.Document

// Parse parses a complete .wire source into its Document, or returns a
// *parser.Error with the offending line and column.
func Parse(src []byte) (*Document, error) {
	return parser.Parse(string(src))
}

// RenderHTML parses src and renders it as a complete HTML page.
func RenderHTML(src []byte) ([]byte, error) {
	doc, err := Parse(src)
	if err != nil {
		return nil, err
	}
	out, err := render.HTML(doc)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// ExportJSON parses src and serializes the tree to the JSON node shape
// consumed by renderers and design-tool exporters.
func ExportJSON(src []byte) ([]byte, error) {
	doc, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return export.Document(doc)
}
