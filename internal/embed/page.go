package embed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/ziadkadry99/p5embed/internal/preview"
	"github.com/ziadkadry99/p5embed/internal/sketch"
)

// PageOptions controls the standalone embed page.
type PageOptions struct {
	P5URL    string
	ShowCode bool
	// Highlight renders the code listing with syntax colouring instead of
	// a plain escaped <pre>.
	Highlight bool
	Style     string
}

var textPolicy = bluemonday.StrictPolicy()

// Page renders the standalone page served at /embed/{id}. The sketch CSS
// and JS are inlined verbatim.
func Page(doc sketch.Document, opts PageOptions) (string, error) {
	if opts.P5URL == "" {
		opts.P5URL = preview.DefaultP5URL
	}

	var listing string
	if opts.ShowCode {
		code, err := codeListing(doc.JS, opts)
		if err != nil {
			return "", err
		}
		listing = "\n    <div class=\"code-container\">\n      " + code + "\n    </div>"
	}

	title := textPolicy.Sanitize(doc.Title) + " by " + textPolicy.Sanitize(doc.Author)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n  <head>\n")
	b.WriteString("    <meta charset=\"utf-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("    <title>" + title + "</title>\n")
	b.WriteString("    <script src=\"" + opts.P5URL + "\"></script>\n")
	b.WriteString("    <style>\n" + pageStyle + doc.CSS + "\n    </style>\n")
	b.WriteString("  </head>\n  <body>\n    <main></main>\n")
	b.WriteString("    <script>" + doc.JS + "</script>")
	b.WriteString(listing)
	b.WriteString("\n  </body>\n</html>\n")
	return b.String(), nil
}

func codeListing(js string, opts PageOptions) (string, error) {
	if !opts.Highlight {
		return "<pre><code>" + EscapeCode(js) + "</code></pre>", nil
	}

	style := opts.Style
	if style == "" {
		style = "github"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(fencedJS(js)), &buf); err != nil {
		return "", fmt.Errorf("highlighting sketch code: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// fencedJS wraps js in a markdown code fence longer than any backtick run
// inside it.
func fencedJS(js string) string {
	longest, run := 0, 0
	for _, r := range js {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", max(3, longest+1))
	return fence + "javascript\n" + js + "\n" + fence + "\n"
}

const pageStyle = `      html, body {
        margin: 0;
        padding: 0;
        overflow: hidden;
      }
      canvas {
        display: block;
      }
      .code-container {
        margin: 10px;
        padding: 10px;
        background: #f5f5f5;
        border-radius: 4px;
        overflow: auto;
        max-height: 300px;
      }
      pre {
        margin: 0;
        white-space: pre-wrap;
      }
`
