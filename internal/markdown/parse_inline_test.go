package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func inlineHTML(text string) string {
	var b strings.Builder
	writeInlinesHTML(&b, parseInline(text))
	return b.String()
}

func TestParseInlineHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "plain", "plain"},
		{"strong stars", "**bold**", "<strong>bold</strong>"},
		{"strong underscores", "__bold__", "<strong>bold</strong>"},
		{"emphasis stars", "*em*", "<em>em</em>"},
		{"emphasis underscores", "_em_", "<em>em</em>"},
		{"nested", "**_nested_**", "<strong><em>nested</em></strong>"},
		{"triple", "***both***", "<strong><em>both</em></strong>"},
		{"strong inside emphasis", "*a **b** c*", "<em>a <strong>b</strong> c</em>"},
		{"strike", "~~gone~~", "<del>gone</del>"},
		{"single tilde", "~approx~", "~approx~"},
		{"code", "`a*b*c`", "<code>a*b*c</code>"},
		{"code inside emphasis", "*a `*` b*", "<em>a <code>*</code> b</em>"},
		{"double backtick code", "``code with ` tick``", "<code>code with ` tick</code>"},
		{"unmatched backtick", "`open", "`open"},
		{"snake case", "snake_case_name", "snake_case_name"},
		{"spaced stars", "2 * 3 * 4", "2 * 3 * 4"},
		{"unclosed", "*unclosed", "*unclosed"},
		{"link", "[site](https://example.com)", `<a href="https://example.com">site</a>`},
		{"link new tab", "[site](https://example.com){_blank}", `<a href="https://example.com" target="_blank" rel="noopener noreferrer">site</a>`},
		{"link text markup", "[**bold** link](/x)", `<a href="/x"><strong>bold</strong> link</a>`},
		{"link query escaped", "[a](https://e.com/?a=1&b=2)", `<a href="https://e.com/?a=1&amp;b=2">a</a>`},
		{"image", "![logo](img.png)", `<img src="img.png" alt="logo" title="logo"/>`},
		{"image alt escaped", `![say "hi"](a.png)`, `<img src="a.png" alt="say &#34;hi&#34;" title="say &#34;hi&#34;"/>`},
		{"autolink", "<https://example.com>", `<a href="https://example.com">https://example.com</a>`},
		{"not an autolink", "<b>", "&lt;b&gt;"},
		{"br tag", "a <br> b", "a <br/> b"},
		{"ampersand", "x & y", "x &amp; y"},
		{"escaped stars", `\*not em\*`, "*not em*"},
		{"windows path", `C:\Users\me`, `C:\Users\me`},
		{"forced break", "a  \n", "a<br/>"},
		{"bare percent", "[x](https://a.com/100%)", `<a href="https://a.com/100%">x</a>`},
		{"tel link", "[call](tel:+123)", `<a href="tel:+123">call</a>`},
		{"ftp link", "[files](ftp://ftp.example.org/pub)", `<a href="ftp://ftp.example.org/pub">files</a>`},
		{"empty destination", "[a]()", `<a href="">a</a>`},
		{"unsafe link", "[x](javascript:alert(1))", "x"},
		{"unsafe image", "![pic](data:image/png;base64,AAAA)", "pic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inlineHTML(tt.input); got != tt.want {
				t.Fatalf("inline HTML for %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInlineTree(t *testing.T) {
	got := parseInline("**_nested_** and `code`")
	want := []markdownInline{
		{kind: inlineStrong, children: []markdownInline{
			{kind: inlineEmphasis, children: []markdownInline{
				{kind: inlineText, literal: "nested"},
			}},
		}},
		{kind: inlineText, literal: " and "},
		{kind: inlineCode, literal: "code"},
	}
	opts := []cmp.Option{cmp.AllowUnexported(markdownInline{}), cmpopts.EquateEmpty()}
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Fatalf("inline tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlineLinkNewTabFlag(t *testing.T) {
	nodes := parseInline("[a](https://x.io){_blank} rest")
	if len(nodes) != 2 {
		t.Fatalf("expected link and trailing text, got %+v", nodes)
	}
	if !nodes[0].newTab || nodes[0].destination != "https://x.io" {
		t.Fatalf("expected new-tab link to https://x.io, got %+v", nodes[0])
	}
	if nodes[1].literal != " rest" {
		t.Fatalf("expected marker to be consumed, got %q", nodes[1].literal)
	}
}

func TestParseInlineEmptyInput(t *testing.T) {
	if nodes := parseInline(""); nodes != nil {
		t.Fatalf("expected nil nodes, got %+v", nodes)
	}
}
