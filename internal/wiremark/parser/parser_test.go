package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wiremark/wiremark/internal/wiremark/ast"
	"github.com/wiremark/wiremark/internal/wiremark/token"
)

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return doc
}

// ignoreLoc compares trees structurally, disregarding source ranges.
var ignoreLoc = cmpopts.IgnoreFields(ast.Node{}, "Loc")

func TestParseEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "// only a comment\n/* and another */"} {
		doc := mustParse(t, src)
		if len(doc.Pages) != 0 {
			t.Errorf("Parse(%q): want empty document, got %d pages", src, len(doc.Pages))
		}
	}
}

func TestParseBarePage(t *testing.T) {
	doc := mustParse(t, "page { }")
	if len(doc.Pages) != 1 {
		t.Fatalf("want 1 page, got %d", len(doc.Pages))
	}
	page := doc.Pages[0]
	if page.Kind != ast.KindPage {
		t.Errorf("kind = %s, want Page", page.Kind)
	}
	if page.Text != nil {
		t.Errorf("title = %q, want absent", *page.Text)
	}
	if len(page.Children) != 0 {
		t.Errorf("children = %d, want 0", len(page.Children))
	}
	want := token.Range{
		Start: token.Position{Line: 1, Column: 1},
		End:   token.Position{Line: 1, Column: 9},
	}
	if page.Loc != want {
		t.Errorf("loc = %+v, want %+v", page.Loc, want)
	}
}

func TestParseDeterminism(t *testing.T) {
	src := `page "Dashboard" {
		row flex gap=4 {
			col span=6 { text "Hi" }
			col span=6 { button "Go" primary }
		}
		nav [{label="Home" active} {label="About"}]
		select "Country" ["USA", "Korea"]
	}`
	first := mustParse(t, src)
	second := mustParse(t, src)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parses differ (-first +second):\n%s", diff)
	}
}

func TestQuoteStylesEquivalent(t *testing.T) {
	double := mustParse(t, `page "My Page" { }`)
	single := mustParse(t, `page 'My Page' { }`)
	if diff := cmp.Diff(double, single); diff != "" {
		t.Errorf("quote styles parse differently (-double +single):\n%s", diff)
	}
}

func TestEscapedQuotesDecoded(t *testing.T) {
	doc := mustParse(t, `page { text "Say \"Hello\"" }`)
	text := doc.Pages[0].Children[0]
	if text.Kind != ast.KindText || text.Text == nil {
		t.Fatalf("want Text node with content, got %+v", text)
	}
	if got, want := *text.Text, `Say "Hello"`; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestAttributeTyping(t *testing.T) {
	doc := mustParse(t, `page { row gap=4 mt=-2 ratio=1.5 justify=between label="x" wrap { } }`)
	row := doc.Pages[0].Children[0]

	tests := []struct {
		key  string
		want ast.Value
	}{
		{"gap", ast.Int{Value: 4}},
		{"mt", ast.Int{Value: -2}},
		{"ratio", ast.Float{Value: 1.5}},
		{"justify", ast.Ident{Value: "between"}},
		{"label", ast.String{Value: "x"}},
		{"wrap", ast.Bool{Value: true}},
	}
	for _, tt := range tests {
		got, ok := row.Attr(tt.key)
		if !ok {
			t.Errorf("attribute %q missing", tt.key)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("attribute %q (-want +got):\n%s", tt.key, diff)
		}
	}
	if !row.Flag("wrap") {
		t.Error("Flag(wrap) = false, want true")
	}
	if row.Flag("gap") {
		t.Error("Flag(gap) = true for a numeric attribute")
	}
}

func TestAttrOrderPreserved(t *testing.T) {
	doc := mustParse(t, `page { card b=1 a=2 c=3 { } }`)
	card := doc.Pages[0].Children[0]
	var keys []string
	for _, a := range card.Attrs {
		keys = append(keys, a.Key)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, keys); diff != "" {
		t.Errorf("attribute order (-want +got):\n%s", diff)
	}
}

func TestPositionalStringList(t *testing.T) {
	doc := mustParse(t, `page { select "Country" ["USA","Korea"] }`)
	sel := doc.Pages[0].Children[0]
	want := ast.StringList{Items: []string{"USA", "Korea"}}
	if diff := cmp.Diff(ast.Value(want), sel.List); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
}

func TestPositionalObjectList(t *testing.T) {
	doc := mustParse(t, `page { nav [{label="Home" active} {label="About"}] }`)
	nav := doc.Pages[0].Children[0]
	want := ast.ObjectList{Items: []ast.Object{
		{Attrs: []ast.Attr{
			{Key: "label", Value: ast.String{Value: "Home"}},
			{Key: "active", Value: ast.Bool{Value: true}},
		}},
		{Attrs: []ast.Attr{
			{Key: "label", Value: ast.String{Value: "About"}},
		}},
	}}
	if diff := cmp.Diff(ast.Value(want), nav.List); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestArraySeparatorsOptional(t *testing.T) {
	comma := mustParse(t, `page { breadcrumb ["a", "b", "c"] }`)
	bare := mustParse(t, "page { breadcrumb [\"a\"\n\"b\"\n\"c\"] }")
	if diff := cmp.Diff(comma, bare, ignoreLoc); diff != "" {
		t.Errorf("separator styles parse differently (-comma +bare):\n%s", diff)
	}
}

func TestEmptyArray(t *testing.T) {
	doc := mustParse(t, `page { nav [] }`)
	nav := doc.Pages[0].Children[0]
	if diff := cmp.Diff(ast.Value(ast.StringList{}), nav.List); diff != "" {
		t.Errorf("empty list (-want +got):\n%s", diff)
	}
}

func TestSiblingLeavesWithoutSeparators(t *testing.T) {
	doc := mustParse(t, `page { text "a" text "b" button "Go" }`)
	page := doc.Pages[0]
	if len(page.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(page.Children))
	}
	kinds := []ast.Kind{page.Children[0].Kind, page.Children[1].Kind, page.Children[2].Kind}
	want := []ast.Kind{ast.KindText, ast.KindText, ast.KindButton}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("sibling kinds (-want +got):\n%s", diff)
	}
}

func TestKeywordNamedAttributeKey(t *testing.T) {
	// icon is an element keyword, but with '=' it is an attribute key.
	doc := mustParse(t, `page { card icon=home { } }`)
	card := doc.Pages[0].Children[0]
	got, ok := card.Attr("icon")
	if !ok {
		t.Fatal("attribute icon missing")
	}
	if diff := cmp.Diff(ast.Value(ast.Ident{Value: "home"}), got); diff != "" {
		t.Errorf("icon (-want +got):\n%s", diff)
	}
}

func TestCommentsFullyTransparent(t *testing.T) {
	// The comment is replaced by whitespace of the same width, so even the
	// source ranges must match.
	src := "page /* c */ { row { } }"
	stripped := strings.Replace(src, "/* c */", strings.Repeat(" ", len("/* c */")), 1)
	with := mustParse(t, src)
	without := mustParse(t, stripped)
	if diff := cmp.Diff(without, with); diff != "" {
		t.Errorf("comment changed the AST (-without +with):\n%s", diff)
	}

	// Multi-line comments shift locations but never structure.
	shifted := mustParse(t, "// header\npage {\n/* block\ncomment */ row { }\n}")
	plain := mustParse(t, "page { row { } }")
	if diff := cmp.Diff(plain, shifted, ignoreLoc); diff != "" {
		t.Errorf("comments changed structure (-plain +shifted):\n%s", diff)
	}
}

func TestLocationInvariants(t *testing.T) {
	src := `page "Dashboard" {
	header "Top" {
		nav [{label="Home"}]
	}
	row flex gap=4 {
		col span=6 {
			text "Hi"
		}
	}
}`
	doc := mustParse(t, src)
	var walk func(t *testing.T, n *ast.Node)
	walk = func(t *testing.T, n *ast.Node) {
		if !n.Loc.Start.Before(n.Loc.End) {
			t.Errorf("%s: start %v not before end %v", n.Kind, n.Loc.Start, n.Loc.End)
		}
		for _, c := range n.Children {
			if c.Loc.Start.Before(n.Loc.Start) || n.Loc.End.Before(c.Loc.End) {
				t.Errorf("%s child %s: range %+v escapes parent %+v", n.Kind, c.Kind, c.Loc, n.Loc)
			}
			walk(t, c)
		}
	}
	for _, p := range doc.Pages {
		walk(t, p)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		class   ErrorClass
		pos     token.Position
		wantMsg string
	}{
		{
			name: "unknown keyword", src: `page { foobar { } }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 8},
			wantMsg: `unknown element keyword "foobar"`,
		},
		{
			name: "unknown keyword top level", src: `foobar { }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 1},
			wantMsg: `unknown element keyword "foobar"`,
		},
		{
			name: "non-page at top level", src: `row { }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 1},
			wantMsg: `element "row" must appear inside a page block`,
		},
		{
			name: "duplicate attribute", src: `page { row gap=4 gap=2 { } }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 18},
			wantMsg: `duplicate attribute "gap"`,
		},
		{
			name: "reserved attribute", src: `page { row children=4 { } }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 12},
			wantMsg: `attribute name "children" is reserved`,
		},
		{
			name: "second string literal", src: `page "a" "b" { }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 10},
			wantMsg: "element takes at most one string literal",
		},
		{
			name: "heterogeneous array", src: `page { nav ["Home" {label="About"}] }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 20},
			wantMsg: "array elements must be all strings or all objects",
		},
		{
			name: "bad array element", src: `page { nav [=] }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 13},
			wantMsg: "expected value, comma, or closing bracket, got '='",
		},
		{
			name: "nested array in object", src: `page { nav [{items=["x"]}] }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 20},
			wantMsg: "object literals may not contain nested arrays or objects",
		},
		{
			name: "missing attribute value", src: `page { row gap= { } }`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 17},
			wantMsg: "expected number, string, or identifier after '=', got '{'",
		},
		{
			name: "unclosed block", src: "page {\n  row {\n}",
			class: SyntaxError, pos: token.Position{Line: 1, Column: 6},
			wantMsg: "unclosed '{': missing '}' before end of input",
		},
		{
			name: "unclosed array", src: `page { nav ["Home"`,
			class: SyntaxError, pos: token.Position{Line: 1, Column: 12},
			wantMsg: "unclosed '[': missing ']' before end of input",
		},
		{
			name: "unterminated string", src: `page { text "abc }`,
			class: LexicalError, pos: token.Position{Line: 1, Column: 13},
			wantMsg: "unterminated string literal",
		},
		{
			name: "unterminated comment", src: "page { } /* trailing",
			class: LexicalError, pos: token.Position{Line: 1, Column: 10},
			wantMsg: "unterminated block comment",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q): want error, got none", tt.src)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if perr.Class != tt.class {
				t.Errorf("class = %v, want %v", perr.Class, tt.class)
			}
			if perr.Pos != tt.pos {
				t.Errorf("pos = %v, want %v", perr.Pos, tt.pos)
			}
			if perr.Msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", perr.Msg, tt.wantMsg)
			}
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	_, err := Parse("page {\n  row gap=4 gap=2 {}\n}")
	if err == nil {
		t.Fatal("want error")
	}
	if got, want := err.Error(), `2:13: duplicate attribute "gap"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNestingDepthGuard(t *testing.T) {
	var b strings.Builder
	b.WriteString("page { ")
	for i := 0; i < 250; i++ {
		b.WriteString("row { ")
	}
	for i := 0; i < 250; i++ {
		b.WriteString("} ")
	}
	b.WriteString("}")

	_, err := Parse(b.String())
	if err == nil {
		t.Fatal("want nesting error, got none")
	}
	if !strings.Contains(err.Error(), "nesting too deep") {
		t.Errorf("err = %v, want nesting too deep", err)
	}
}

func TestNoPartialTreeOnError(t *testing.T) {
	doc, err := Parse(`page { } page { foobar { } }`)
	if err == nil {
		t.Fatal("want error")
	}
	if doc != nil {
		t.Errorf("doc = %+v, want nil on error", doc)
	}
}
