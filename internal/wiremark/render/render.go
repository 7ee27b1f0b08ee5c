// Package render lowers a parsed wiremark tree to an HTML wireframe built
// from gomponents nodes. Every element renders as a semantic tag (or a div)
// tagged with a wire-<kind> class; flags and enum attributes become class
// modifiers, scalar attributes become data-* attributes unless they map to a
// native HTML attribute.
package render

import (
	"fmt"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/wiremark/wiremark/internal/wiremark/ast"
)

// HTML renders the document to a complete HTML page string.
func HTML(doc *ast.Document) (string, error) {
	var b strings.Builder
	if err := Document(doc).Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Document renders the full page scaffold around the document's pages.
func Document(doc *ast.Document) g.Node {
	pages := make([]g.Node, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		pages = append(pages, Node(p))
	}
	return h.Doctype(
		h.HTML(
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text(docTitle(doc))),
			),
			h.Body(h.Class("wire"), g.Group(pages)),
		),
	)
}

func docTitle(doc *ast.Document) string {
	for _, p := range doc.Pages {
		if p.Text != nil {
			return *p.Text
		}
	}
	return "wireframe"
}

// Node renders one element subtree.
func Node(n *ast.Node) g.Node {
	args := attrNodes(n)
	switch n.Kind {
	case ast.KindPage:
		return h.Div(append(args, heading(n, h.H1), childNodes(n))...)
	case ast.KindHeader:
		return h.Header(append(args, heading(n, h.H2), childNodes(n))...)
	case ast.KindMain:
		return h.Main(append(args, childNodes(n))...)
	case ast.KindFooter:
		return h.Footer(append(args, textNode(n), childNodes(n))...)
	case ast.KindSection:
		return h.Section(append(args, heading(n, h.H2), childNodes(n))...)
	case ast.KindSidebar:
		return g.El("aside", append(args, heading(n, h.H3), childNodes(n))...)
	case ast.KindText:
		return h.P(append(args, textNode(n), childNodes(n))...)
	case ast.KindTitle:
		return h.H2(append(args, textNode(n))...)
	case ast.KindLink:
		return h.A(append(args, textNode(n))...)
	case ast.KindButton:
		return h.Button(append(args, textNode(n))...)
	case ast.KindInput:
		return labeled(n, h.Input(args...))
	case ast.KindTextarea:
		return labeled(n, g.El("textarea", args...))
	case ast.KindSelect:
		return labeled(n, g.El("select", append(args, optionNodes(n.List))...))
	case ast.KindCheckbox:
		return checkable(n, args, "checkbox")
	case ast.KindRadio:
		return checkable(n, args, "radio")
	case ast.KindSwitch:
		return checkable(n, args, "checkbox")
	case ast.KindSlider:
		return h.Input(append(args, h.Type("range"))...)
	case ast.KindImage:
		return h.Img(args...)
	case ast.KindBadge, ast.KindIcon:
		return h.Span(append(args, textNode(n))...)
	case ast.KindTable:
		return h.Table(append(args, tableNodes(n.List))...)
	case ast.KindList:
		return h.Ul(append(args, listItems(n.List))...)
	case ast.KindProgress:
		return g.El("progress", args...)
	case ast.KindNav:
		return h.Nav(append(args, navList("ul", n.List))...)
	case ast.KindTabs:
		return h.Div(append(args, navList("ul", n.List), childNodes(n))...)
	case ast.KindBreadcrumb:
		return h.Nav(append(args, navList("ol", n.List))...)
	default:
		// Card, Modal, Drawer, Accordion, Row, Col, Placeholder, Avatar,
		// Alert, Toast, Spinner, Tooltip, Popover, Dropdown.
		return h.Div(append(args, heading(n, h.H3), childNodes(n))...)
	}
}

// attrNodes lowers the node's attributes into a class list plus HTML
// attribute nodes. The wire-<kind> class always comes first.
func attrNodes(n *ast.Node) []g.Node {
	classes := []string{"wire-" + n.Kind.Keyword()}
	var out []g.Node
	for _, a := range n.Attrs {
		switch v := a.Value.(type) {
		case ast.Bool:
			classes = append(classes, "wire-"+a.Key)
		case ast.Ident:
			classes = append(classes, "wire-"+a.Key+"-"+v.Value)
		case ast.Int:
			if a.Key == "span" {
				classes = append(classes, fmt.Sprintf("wire-span-%d", v.Value))
				continue
			}
			out = append(out, g.Attr("data-"+a.Key, strconv.FormatInt(v.Value, 10)))
		case ast.Float:
			out = append(out, g.Attr("data-"+a.Key, strconv.FormatFloat(v.Value, 'f', -1, 64)))
		case ast.String:
			switch a.Key {
			case "class":
				classes = append(classes, v.Value)
			case "id":
				out = append(out, h.ID(v.Value))
			case "src":
				out = append(out, h.Src(v.Value))
			case "href":
				out = append(out, h.Href(v.Value))
			case "alt":
				out = append(out, h.Alt(v.Value))
			case "placeholder":
				out = append(out, h.Placeholder(v.Value))
			default:
				out = append(out, g.Attr("data-"+a.Key, v.Value))
			}
		}
	}
	return append([]g.Node{h.Class(strings.Join(classes, " "))}, out...)
}

func textNode(n *ast.Node) g.Node {
	if n.Text == nil {
		return nil
	}
	return g.Text(*n.Text)
}

func heading(n *ast.Node, tag func(...g.Node) g.Node) g.Node {
	if n.Text == nil {
		return nil
	}
	return tag(h.Class("wire-heading"), g.Text(*n.Text))
}

func childNodes(n *ast.Node) g.Node {
	if len(n.Children) == 0 {
		return nil
	}
	kids := make([]g.Node, 0, len(n.Children))
	for _, c := range n.Children {
		kids = append(kids, Node(c))
	}
	return g.Group(kids)
}

func labeled(n *ast.Node, control g.Node) g.Node {
	if n.Text == nil {
		return control
	}
	return h.Label(g.Text(*n.Text), control)
}

func checkable(n *ast.Node, args []g.Node, typ string) g.Node {
	return h.Label(
		h.Input(append(args, h.Type(typ))...),
		textNode(n),
	)
}

func optionNodes(list ast.Value) g.Node {
	sl, ok := list.(ast.StringList)
	if !ok {
		return nil
	}
	opts := make([]g.Node, 0, len(sl.Items))
	for _, item := range sl.Items {
		opts = append(opts, g.El("option", g.Text(item)))
	}
	return g.Group(opts)
}

func tableNodes(list ast.Value) g.Node {
	switch v := list.(type) {
	case ast.StringList:
		// A string list is the column header row.
		ths := make([]g.Node, 0, len(v.Items))
		for _, col := range v.Items {
			ths = append(ths, h.Th(g.Text(col)))
		}
		return h.THead(h.Tr(ths...))
	case ast.ObjectList:
		rows := make([]g.Node, 0, len(v.Items))
		for _, obj := range v.Items {
			tds := make([]g.Node, 0, len(obj.Attrs))
			for _, a := range obj.Attrs {
				tds = append(tds, h.Td(g.Text(scalarText(a.Value))))
			}
			rows = append(rows, h.Tr(tds...))
		}
		return h.TBody(rows...)
	default:
		return nil
	}
}

func listItems(list ast.Value) g.Node {
	sl, ok := list.(ast.StringList)
	if !ok {
		return nil
	}
	items := make([]g.Node, 0, len(sl.Items))
	for _, item := range sl.Items {
		items = append(items, h.Li(g.Text(item)))
	}
	return g.Group(items)
}

// navList renders a positional list as ul/ol items. Object items understand
// label, href, and the active flag.
func navList(tag string, list ast.Value) g.Node {
	switch v := list.(type) {
	case ast.StringList:
		items := make([]g.Node, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, h.Li(g.Text(item)))
		}
		return g.El(tag, items...)
	case ast.ObjectList:
		items := make([]g.Node, 0, len(v.Items))
		for _, obj := range v.Items {
			var label, href string
			if val, ok := obj.Attr("label"); ok {
				label = scalarText(val)
			}
			if val, ok := obj.Attr("href"); ok {
				href = scalarText(val)
			}
			var li []g.Node
			active := false
			if val, ok := obj.Attr("active"); ok {
				if b, ok := val.(ast.Bool); ok && b.Value {
					active = true
				}
			}
			if active {
				li = append(li, h.Class("wire-active"))
			}
			if href != "" {
				li = append(li, h.A(h.Href(href), g.Text(label)))
			} else {
				li = append(li, g.Text(label))
			}
			items = append(items, h.Li(li...))
		}
		return g.El(tag, items...)
	default:
		return nil
	}
}

func scalarText(v ast.Value) string {
	switch v := v.(type) {
	case ast.String:
		return v.Value
	case ast.Ident:
		return v.Value
	case ast.Int:
		return strconv.FormatInt(v.Value, 10)
	case ast.Float:
		return strconv.FormatFloat(v.Value, 'f', -1, 64)
	case ast.Bool:
		return strconv.FormatBool(v.Value)
	default:
		return ""
	}
}
