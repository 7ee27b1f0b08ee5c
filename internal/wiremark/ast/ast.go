// Package ast defines the wiremark abstract syntax tree: a Document of Page
// nodes, each node a fixed Kind with typed attributes, an optional text slot,
// an optional positional list, and a source location range.
package ast

import "github.com/wiremark/wiremark/internal/wiremark/token"

// Kind is the element discriminant. The zero value is invalid.
type Kind uint8

const (
	KindInvalid Kind = iota

	// layout
	KindPage
	KindHeader
	KindMain
	KindFooter
	KindSidebar
	KindSection

	// grid
	KindRow
	KindCol

	// container
	KindCard
	KindModal
	KindDrawer
	KindAccordion

	// text
	KindText
	KindTitle
	KindLink

	// input
	KindInput
	KindTextarea
	KindSelect
	KindCheckbox
	KindRadio
	KindSwitch
	KindSlider

	// button
	KindButton

	// display
	KindImage
	KindPlaceholder
	KindAvatar
	KindBadge
	KindIcon

	// data
	KindTable
	KindList

	// feedback
	KindAlert
	KindToast
	KindProgress
	KindSpinner

	// overlay
	KindTooltip
	KindPopover
	KindDropdown

	// navigation
	KindNav
	KindTabs
	KindBreadcrumb
)

var kindNames = [...]string{
	KindInvalid:     "Invalid",
	KindPage:        "Page",
	KindHeader:      "Header",
	KindMain:        "Main",
	KindFooter:      "Footer",
	KindSidebar:     "Sidebar",
	KindSection:     "Section",
	KindRow:         "Row",
	KindCol:         "Col",
	KindCard:        "Card",
	KindModal:       "Modal",
	KindDrawer:      "Drawer",
	KindAccordion:   "Accordion",
	KindText:        "Text",
	KindTitle:       "Title",
	KindLink:        "Link",
	KindInput:       "Input",
	KindTextarea:    "Textarea",
	KindSelect:      "Select",
	KindCheckbox:    "Checkbox",
	KindRadio:       "Radio",
	KindSwitch:      "Switch",
	KindSlider:      "Slider",
	KindButton:      "Button",
	KindImage:       "Image",
	KindPlaceholder: "Placeholder",
	KindAvatar:      "Avatar",
	KindBadge:       "Badge",
	KindIcon:        "Icon",
	KindTable:       "Table",
	KindList:        "List",
	KindAlert:       "Alert",
	KindToast:       "Toast",
	KindProgress:    "Progress",
	KindSpinner:     "Spinner",
	KindTooltip:     "Tooltip",
	KindPopover:     "Popover",
	KindDropdown:    "Dropdown",
	KindNav:         "Nav",
	KindTabs:        "Tabs",
	KindBreadcrumb:  "Breadcrumb",
}

// keywords maps source keywords to kinds. Keywords are the lowercase forms
// of the kind names.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k := KindPage; k <= KindBreadcrumb; k++ {
		m[lower(kindNames[k])] = k
	}
	return m
}()

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// String returns the capitalized tag, e.g. "Page".
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "Invalid"
	}
	return kindNames[k]
}

// Keyword returns the source keyword for the kind, e.g. "page".
func (k Kind) Keyword() string { return lower(k.String()) }

// KindForKeyword resolves an element keyword to its Kind.
func KindForKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// IsKeyword reports whether word is an element keyword.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Container reports whether the kind belongs to a container category
// (layout, grid, container) and is expected to carry children. The parser
// accepts a child block on any kind; consumers use this to decide shape.
func (k Kind) Container() bool {
	return k >= KindPage && k <= KindAccordion
}

// Value is the closed set of attribute value shapes. Implementations are
// Bool, Int, Float, String, Ident, StringList, and ObjectList.
type Value interface {
	value()
}

// Bool is a bare flag attribute. Presence is the only way to assert true;
// there is no flag=false syntax, so Value is always true in parsed trees.
type Bool struct {
	Value bool
}

// Int is an integer literal, sign preserved.
type Int struct {
	Value int64
}

// Float is a decimal literal.
type Float struct {
	Value float64
}

// String is a quoted string literal, escapes decoded.
type String struct {
	Value string
}

// Ident is a bare enum-like word used as a value, e.g. justify=between.
type Ident struct {
	Value string
}

// StringList is a homogeneous array of strings.
type StringList struct {
	Items []string
}

// ObjectList is a homogeneous array of flat object literals.
type ObjectList struct {
	Items []Object
}

func (Bool) value()       {}
func (Int) value()        {}
func (Float) value()      {}
func (String) value()     {}
func (Ident) value()      {}
func (StringList) value() {}
func (ObjectList) value() {}

// Attr is one named attribute. Keys are unique per element and per object
// literal; the parser rejects duplicates.
type Attr struct {
	Key   string
	Value Value
}

// Object is a flat key/value literal inside an array. Field order follows
// source order.
type Object struct {
	Attrs []Attr
}

// Attr returns the value for key, if present.
func (o Object) Attr(key string) (Value, bool) {
	for _, a := range o.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// Node is one parsed element. Nodes are created once by the parser and not
// mutated afterwards; children belong to exactly one parent.
type Node struct {
	Kind Kind

	// Text is the optional quoted title/content/label slot. nil means the
	// slot was absent, which is distinct from an empty string.
	Text *string

	// Attrs holds attributes in source order.
	Attrs []Attr

	// List is the positional array payload (StringList or ObjectList), or
	// nil when no bracketed list followed the attributes.
	List Value

	Children []*Node

	Loc token.Range
}

// Attr returns the value for key, if present.
func (n *Node) Attr(key string) (Value, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// Flag reports whether the boolean flag key is set on the node.
func (n *Node) Flag(key string) bool {
	v, ok := n.Attr(key)
	if !ok {
		return false
	}
	b, ok := v.(Bool)
	return ok && b.Value
}

// Document is the parse root: an ordered sequence of Page nodes.
type Document struct {
	Pages []*Node
}
