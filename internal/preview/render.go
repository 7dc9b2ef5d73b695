package preview

import (
	"strings"

	"github.com/ziadkadry99/p5embed/internal/sketch"
)

// DefaultP5URL is the CDN build of p5.js loaded by every rendered sketch.
const DefaultP5URL = "https://cdnjs.cloudflare.com/ajax/libs/p5.js/1.11.1/p5.js"

// Render builds a self-contained HTML document for a sketch. The sketch CSS
// and JS are inlined verbatim; nothing is escaped.
func Render(doc sketch.Document, p5URL string) string {
	if p5URL == "" {
		p5URL = DefaultP5URL
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n  <head>\n")
	b.WriteString("    <meta charset=\"utf-8\" />\n")
	b.WriteString("    <script src=\"" + p5URL + "\"></script>\n")
	b.WriteString("    <style>" + doc.CSS + "</style>\n")
	b.WriteString("  </head>\n  <body>\n    <main></main>\n")
	b.WriteString("    <script>\n" + doc.JS + "\n    </script>\n")
	b.WriteString("  </body>\n</html>")
	return b.String()
}

// LoadingPage is shown in the frame while a sketch is being prepared.
func LoadingPage() string { return loadingHTML }

// StoppedPage is shown in the frame after the sketch is stopped.
func StoppedPage() string { return stoppedHTML }

const loadingHTML = `<html>
  <body style="display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; font-family: sans-serif; background-color: #f9f9f9;">
    <div style="text-align: center;">
      <div style="width: 40px; height: 40px; border: 4px solid #f3f3f3; border-top: 4px solid #3b82f6; border-radius: 50%; margin: 0 auto 15px; animation: spin 1s linear infinite;"></div>
      <div>Loading sketch...</div>
    </div>
    <style>
      @keyframes spin {
        0% { transform: rotate(0deg); }
        100% { transform: rotate(360deg); }
      }
    </style>
  </body>
</html>`

const stoppedHTML = `<html>
  <body style="display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; font-family: sans-serif; background-color: #f9f9f9; color: #666;">
    <div style="text-align: center; padding: 20px; border: 1px dashed #ccc; border-radius: 8px;">
      <svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" style="margin: 0 auto 10px; display: block;">
        <rect x="3" y="3" width="18" height="18" rx="2" ry="2"></rect>
        <line x1="9" y1="9" x2="15" y2="15"></line>
        <line x1="15" y1="9" x2="9" y2="15"></line>
      </svg>
      <div>Sketch stopped</div>
      <div style="font-size: 12px; margin-top: 8px;">Click Run to start the sketch</div>
    </div>
  </body>
</html>`
