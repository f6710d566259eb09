package markdown

import (
	"strconv"
	"strings"
	"sync"
	"testing"
)

const sampleDocument = `# Release notes

Setup
---

- [x] **Fast** parser with ` + "`code`" + ` spans
- [ ] [Docs](https://example.com/docs){_blank}

> Note: *everything* is escaped <b>here</b>.

| Name | Size |
|:-----|-----:|
| a.go | 12 |

` + "```go\nfunc main() {}\n```" + `
`

func TestRenderIsDeterministic(t *testing.T) {
	first := RenderHTML(sampleDocument)
	for i := 0; i < 5; i++ {
		if got := RenderHTML(sampleDocument); got != first {
			t.Fatalf("render %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestRenderConcurrentUse(t *testing.T) {
	wantHTML := RenderHTML(sampleDocument)
	wantText := RenderText(sampleDocument, 40)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := RenderHTML(sampleDocument); got != wantHTML {
					t.Errorf("concurrent HTML render mismatch")
					return
				}
				if got := RenderText(sampleDocument, 40); got != wantText {
					t.Errorf("concurrent text render mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRenderSampleDocument(t *testing.T) {
	out := RenderHTML(sampleDocument)
	for _, fragment := range []string{
		"<h1>Release notes</h1>",
		"<h2>Setup</h2>",
		`<li><input type="checkbox" disabled checked/> <strong>Fast</strong> parser with <code>code</code> spans</li>`,
		`<a href="https://example.com/docs" target="_blank" rel="noopener noreferrer">Docs</a>`,
		"<blockquote><p>Note: <em>everything</em> is escaped &lt;b&gt;here&lt;/b&gt;.</p></blockquote>",
		`<th style="text-align:left">Name</th>`,
		`<td style="text-align:right">12</td>`,
		`<pre><code class="language-go">func main() {}</code></pre>`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
	if err := checkBalanced(out); err != nil {
		t.Fatalf("unbalanced output: %v", err)
	}
}

func TestRenderTextEmpty(t *testing.T) {
	if got := RenderText("", 80); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := RenderText("\n\n", 80); got != "" {
		t.Fatalf("expected blank document to render empty, got %q", got)
	}
}

func BenchmarkRenderHTML(b *testing.B) {
	doc := strings.Repeat(sampleDocument, 20)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = RenderHTML(doc)
	}
}

// Unmatched delimiters each rescan the rest of the line, so this line costs
// quadratic time in its length.
func BenchmarkRenderHTMLUnmatchedDelimiters(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		line := strings.Repeat("*a _b [c ", n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = RenderHTML(line)
			}
		})
	}
}

func BenchmarkRenderText(b *testing.B) {
	doc := strings.Repeat(sampleDocument, 20)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = RenderText(doc, 80)
	}
}
