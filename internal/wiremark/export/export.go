// Package export serializes a parsed wiremark tree to the JSON node shape
// consumed by downstream tools: every node carries "type" and "loc", its
// attributes flattened by name, a per-kind field for the text slot and the
// positional list, and "children" for container kinds. Absent attributes are
// absent fields, never empty strings or false.
package export

import (
	"bytes"
	"encoding/json"

	"github.com/wiremark/wiremark/internal/wiremark/ast"
	"github.com/wiremark/wiremark/internal/wiremark/token"
)

// Document marshals the tree with two-space indentation.
func Document(doc *ast.Document) ([]byte, error) {
	root := &object{}
	root.set("type", "Document")
	children := make([]any, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		children = append(children, nodeObject(page))
	}
	root.set("children", children)
	return json.MarshalIndent(root, "", "  ")
}

// Node marshals a single node subtree.
func Node(n *ast.Node) ([]byte, error) {
	return json.MarshalIndent(nodeObject(n), "", "  ")
}

func nodeObject(n *ast.Node) *object {
	o := &object{}
	o.set("type", n.Kind.String())
	o.set("loc", locObject(n.Loc))
	if n.Text != nil {
		o.set(TextField(n.Kind), *n.Text)
	}
	for _, a := range n.Attrs {
		o.set(a.Key, valueJSON(a.Value))
	}
	if n.List != nil {
		o.set(ListField(n.Kind), valueJSON(n.List))
	}
	if n.Kind.Container() || len(n.Children) > 0 {
		children := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, nodeObject(c))
		}
		o.set("children", children)
	}
	return o
}

func locObject(r token.Range) *object {
	start := &object{}
	start.set("line", r.Start.Line)
	start.set("column", r.Start.Column)
	end := &object{}
	end.set("line", r.End.Line)
	end.set("column", r.End.Column)
	o := &object{}
	o.set("start", start)
	o.set("end", end)
	return o
}

func valueJSON(v ast.Value) any {
	switch v := v.(type) {
	case ast.Bool:
		return v.Value
	case ast.Int:
		return v.Value
	case ast.Float:
		return v.Value
	case ast.String:
		return v.Value
	case ast.Ident:
		return v.Value
	case ast.StringList:
		items := make([]any, 0, len(v.Items))
		for _, s := range v.Items {
			items = append(items, s)
		}
		return items
	case ast.ObjectList:
		items := make([]any, 0, len(v.Items))
		for _, obj := range v.Items {
			o := &object{}
			for _, a := range obj.Attrs {
				o.set(a.Key, valueJSON(a.Value))
			}
			items = append(items, o)
		}
		return items
	default:
		return nil
	}
}

// TextField names the exported field for a node's quoted text slot.
func TextField(k ast.Kind) string {
	switch k {
	case ast.KindText, ast.KindTitle:
		return "content"
	case ast.KindButton, ast.KindLink, ast.KindInput, ast.KindTextarea,
		ast.KindSelect, ast.KindCheckbox, ast.KindRadio, ast.KindSwitch,
		ast.KindBadge:
		return "label"
	default:
		return "title"
	}
}

// ListField names the exported field for a node's positional list.
func ListField(k ast.Kind) string {
	switch k {
	case ast.KindSelect, ast.KindDropdown:
		return "options"
	case ast.KindTable:
		return "columns"
	default:
		return "items"
	}
}

// object is a JSON object that marshals its keys in insertion order, so
// exported nodes keep source attribute order.
type object struct {
	keys []string
	vals []any
}

func (o *object) set(key string, val any) {
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
