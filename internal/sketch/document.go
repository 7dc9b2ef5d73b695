package sketch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRenderable is returned by Validate when the document has no JS.
var ErrNotRenderable = errors.New("sketch JS code is required")

// DefaultHTML is the page template new sketches start from.
const DefaultHTML = `<!DOCTYPE html>
<html>
  <head>
    <script src="https://cdnjs.cloudflare.com/ajax/libs/p5.js/1.11.1/p5.js"></script>
    <meta charset="utf-8" />
  </head>
  <body>
    <main></main>
    <script src="sketch.js"></script>
  </body>
</html>`

// DefaultJS draws a circle that follows the mouse.
const DefaultJS = `function setup() {
  createCanvas(400, 400);
}

function draw() {
  background(220);
  fill(255, 0, 0);
  ellipse(mouseX, mouseY, 50, 50);
}`

// DefaultCSS removes page margins so the canvas sits flush.
const DefaultCSS = `html, body {
  margin: 0;
  padding: 0;
}
canvas {
  display: block;
}`

// Default returns the bootstrap document shown in a fresh editor.
func Default() Document {
	return Document{HTML: DefaultHTML, JS: DefaultJS, CSS: DefaultCSS}
}

// WithDefaults returns a copy of d with empty HTML and CSS replaced by the
// built-in templates. JS is never filled in.
func (d Document) WithDefaults() Document {
	if d.HTML == "" {
		d.HTML = DefaultHTML
	}
	if d.CSS == "" {
		d.CSS = DefaultCSS
	}
	return d
}

// Renderable reports whether the document carries sketch code.
func (d Document) Renderable() bool {
	return strings.TrimSpace(d.JS) != ""
}

// Validate returns ErrNotRenderable when the document has no JS.
func (d Document) Validate() error {
	if !d.Renderable() {
		return ErrNotRenderable
	}
	return nil
}

// Get returns the value of a source field.
func (d Document) Get(f Field) string {
	switch f {
	case FieldJS:
		return d.JS
	case FieldHTML:
		return d.HTML
	case FieldCSS:
		return d.CSS
	}
	return ""
}

// Set replaces one source field in place.
func (d *Document) Set(f Field, value string) error {
	switch f {
	case FieldJS:
		d.JS = value
	case FieldHTML:
		d.HTML = value
	case FieldCSS:
		d.CSS = value
	default:
		return fmt.Errorf("unknown sketch field %d", int(f))
	}
	return nil
}

// Equal reports whether two documents have identical content.
func (d Document) Equal(o Document) bool {
	return d == o
}
