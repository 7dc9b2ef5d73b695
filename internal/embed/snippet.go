package embed

import (
	"net/url"
	"strings"

	"github.com/ziadkadry99/p5embed/internal/sketch"
)

// PlaceholderSrc stands in for the iframe URL of a sketch that has not been
// saved yet.
const PlaceholderSrc = "YOUR_SKETCH_URL_HERE"

// Options controls the generated embed snippet.
type Options struct {
	Width      string `json:"width"`
	Height     string `json:"height"`
	ShowCode   bool   `json:"showCode"`
	Responsive bool   `json:"responsive"`
	Autoplay   bool   `json:"autoplay"`
}

// DefaultOptions returns the options a new editor starts with.
func DefaultOptions() Options {
	return Options{
		Width:      "100%",
		Height:     "400px",
		Responsive: true,
		Autoplay:   true,
	}
}

// ParseOptions reads snippet options from query parameters. Flags are on
// only for the literal "true"; absent responsive and autoplay keep their
// defaults.
func ParseOptions(q url.Values) Options {
	opts := DefaultOptions()
	if v := q.Get("width"); v != "" {
		opts.Width = v
	}
	if v := q.Get("height"); v != "" {
		opts.Height = v
	}
	opts.ShowCode = q.Get("showCode") == "true"
	if q.Has("responsive") {
		opts.Responsive = q.Get("responsive") == "true"
	}
	if q.Has("autoplay") {
		opts.Autoplay = q.Get("autoplay") == "true"
	}
	return opts
}

// EscapeCode replaces angle brackets so source can sit inside <pre>.
func EscapeCode(code string) string {
	return strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace(code)
}

// Snippet returns the markup a page author pastes to embed a sketch served
// from src.
func Snippet(doc sketch.Document, src string, opts Options) string {
	var b strings.Builder
	b.WriteString(`<div class="p5-sketch-container" style="width: ` + opts.Width + `; height: ` + opts.Height + `;">` + "\n")
	b.WriteString("  <iframe\n")
	b.WriteString(`    src="` + src + `"` + "\n")
	b.WriteString(`    style="width: 100%; height: 100%; border: none;"` + "\n")
	if !opts.Autoplay {
		b.WriteString(`    data-autoplay="false"` + "\n")
	}
	b.WriteString("  ></iframe>")

	if opts.ShowCode {
		b.WriteString("\n  <details>\n    <summary>View Code</summary>\n")
		b.WriteString("    <pre><code>" + EscapeCode(doc.JS) + "</code></pre>\n")
		b.WriteString("  </details>")
	}

	b.WriteString("\n</div>")

	if opts.Responsive {
		b.WriteString(responsiveStyle)
	}
	return b.String()
}

const responsiveStyle = `
<style>
  .p5-sketch-container {
    position: relative;
    overflow: hidden;
  }
  @media (max-width: 600px) {
    .p5-sketch-container {
      height: 300px;
    }
  }
</style>`
