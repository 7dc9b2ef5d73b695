package sketch

import "fmt"

// Document is the editable source of one p5.js sketch.
type Document struct {
	HTML   string `json:"html"`
	JS     string `json:"js"`
	CSS    string `json:"css"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
}

// Field identifies one of the three source fields of a Document.
type Field int

const (
	FieldJS Field = iota
	FieldHTML
	FieldCSS
)

// Fields lists the source fields in tab order.
var Fields = []Field{FieldJS, FieldHTML, FieldCSS}

// String returns the JSON key of the field.
func (f Field) String() string {
	switch f {
	case FieldJS:
		return "js"
	case FieldHTML:
		return "html"
	case FieldCSS:
		return "css"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Label returns the editor tab label for the field.
func (f Field) Label() string {
	switch f {
	case FieldJS:
		return "sketch.js"
	case FieldHTML:
		return "index.html"
	case FieldCSS:
		return "style.css"
	default:
		return ""
	}
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool {
	return f >= FieldJS && f <= FieldCSS
}

// ParseField maps a JSON key ("js", "html", "css") to a Field.
func ParseField(s string) (Field, error) {
	switch s {
	case "js":
		return FieldJS, nil
	case "html":
		return FieldHTML, nil
	case "css":
		return FieldCSS, nil
	}
	return 0, fmt.Errorf("unknown sketch field %q", s)
}

// MarshalText encodes the field as its JSON key.
func (f Field) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("unknown sketch field %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes a JSON key into a Field.
func (f *Field) UnmarshalText(b []byte) error {
	parsed, err := ParseField(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
