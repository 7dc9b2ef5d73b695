package sketch

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDefaultIsRenderable(t *testing.T) {
	d := Default()
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !strings.Contains(d.HTML, "<main></main>") {
		t.Error("default html should contain a <main> mount point")
	}
}

func TestWithDefaultsKeepsJS(t *testing.T) {
	d := Document{JS: "  "}.WithDefaults()
	if d.HTML != DefaultHTML {
		t.Error("expected default html")
	}
	if d.CSS != DefaultCSS {
		t.Error("expected default css")
	}
	if d.JS != "  " {
		t.Errorf("js should be untouched, got %q", d.JS)
	}
	if !errors.Is(d.Validate(), ErrNotRenderable) {
		t.Error("blank js should not be renderable")
	}

	custom := Document{HTML: "<p>x</p>", CSS: "p{}", JS: "draw()"}.WithDefaults()
	if custom.HTML != "<p>x</p>" || custom.CSS != "p{}" {
		t.Errorf("existing fields overwritten: %+v", custom)
	}
}

func TestSetAndGet(t *testing.T) {
	var d Document
	for _, f := range Fields {
		if err := d.Set(f, f.Label()); err != nil {
			t.Fatalf("Set(%s): %v", f, err)
		}
	}
	if d.JS != "sketch.js" || d.HTML != "index.html" || d.CSS != "style.css" {
		t.Errorf("unexpected document: %+v", d)
	}
	for _, f := range Fields {
		if got := d.Get(f); got != f.Label() {
			t.Errorf("Get(%s) = %q", f, got)
		}
	}
	if err := d.Set(Field(7), "x"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestFieldText(t *testing.T) {
	var payload struct {
		Tab Field `json:"tab"`
	}
	if err := json.Unmarshal([]byte(`{"tab":"css"}`), &payload); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if payload.Tab != FieldCSS {
		t.Errorf("expected css, got %s", payload.Tab)
	}
	if err := json.Unmarshal([]byte(`{"tab":"md"}`), &payload); err == nil {
		t.Error("expected error for unknown tab")
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"tab":"css"}` {
		t.Errorf("unexpected json %s", out)
	}
}

func TestImport(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mode    ImportMode
		wantErr string
		wantJS  string
	}{
		{
			name:   "lenient js only",
			input:  `{"js":"function setup(){}"}`,
			mode:   ImportLenient,
			wantJS: "function setup(){}",
		},
		{
			name:   "strict all fields",
			input:  `{"js":"function setup(){}","css":"","html":""}`,
			mode:   ImportStrict,
			wantJS: "function setup(){}",
		},
		{
			name:    "strict missing css and html",
			input:   `{"js":"draw()"}`,
			mode:    ImportStrict,
			wantErr: "css and html",
		},
		{
			name:    "missing js",
			input:   `{"css":"body{}"}`,
			mode:    ImportLenient,
			wantErr: "js",
		},
		{
			name:    "js not a string",
			input:   `{"js":42}`,
			mode:    ImportLenient,
			wantErr: "js",
		},
		{
			name:    "malformed",
			input:   `{"js": "x"`,
			mode:    ImportLenient,
			wantErr: "unexpected end of JSON input",
		},
		{
			name:    "null",
			input:   `null`,
			mode:    ImportLenient,
			wantErr: "js",
		},
		{
			name:    "array",
			input:   `[1,2]`,
			mode:    ImportLenient,
			wantErr: "Invalid JSON format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Import([]byte(tt.input), tt.mode)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				var ie *ImportError
				if !errors.As(err, &ie) {
					t.Fatalf("expected *ImportError, got %T", err)
				}
				if !strings.HasPrefix(err.Error(), "Invalid JSON format or missing keys: ") {
					t.Errorf("unexpected prefix: %q", err.Error())
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if doc.JS != tt.wantJS {
				t.Errorf("js = %q, want %q", doc.JS, tt.wantJS)
			}
		})
	}
}

func TestImportCarriesMetadata(t *testing.T) {
	doc, err := Import([]byte(`{"title":"Waves","author":"Ada","js":"draw()","css":"","html":""}`), ImportStrict)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if doc.Title != "Waves" || doc.Author != "Ada" {
		t.Errorf("metadata lost: %+v", doc)
	}
}
