// Package markdown renders submitted post content to safe HTML.
// Only a minimal markup subset is enabled: emphasis, code spans,
// fenced code blocks and strikethrough. Block-level markdown like
// headings and blockquotes is left off so that ">>N" reply markers
// survive as plain text for anchor linkification.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/petchan-dev/petchan/internal/anchor"
)

// goldmark escapes ">" in text nodes, so markers appear as &gt;&gt;N
// by the time linkification runs.
var replyMarkerRegex = regexp.MustCompile(`&gt;&gt;(\d+)`)

type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	p := parser.NewParser(
		parser.WithBlockParsers(
			util.Prioritized(parser.NewFencedCodeBlockParser(), 700),
			util.Prioritized(parser.NewParagraphParser(), 1000),
		),
		parser.WithInlineParsers(
			util.Prioritized(parser.NewCodeSpanParser(), 100),
			util.Prioritized(parser.NewEmphasisParser(), 500),
		),
	)

	md := goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough),
	)

	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "em", "strong", "del", "code", "pre")

	return &TextProcessor{md: md, policy: policy}
}

// Render converts content to sanitized HTML and links ">>N" markers
// to "#res-N" when N resolves in the thread's index. Markers that
// resolve to nothing stay plain text.
func (p *TextProcessor) Render(text string, ix *anchor.Index) (string, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}

	sanitized := p.policy.SanitizeBytes(buf.Bytes())

	linked := replyMarkerRegex.ReplaceAllFunc(sanitized, func(m []byte) []byte {
		n, err := strconv.Atoi(string(replyMarkerRegex.FindSubmatch(m)[1]))
		if err != nil {
			return m
		}
		if _, ok := ix.Resolve(n); !ok {
			return m
		}
		return []byte(fmt.Sprintf(`<a href="#res-%d">&gt;&gt;%d</a>`, n, n))
	})

	return string(linked), nil
}
