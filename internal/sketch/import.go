package sketch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ImportMode selects which fields an imported payload must carry.
type ImportMode int

const (
	// ImportLenient requires only js.
	ImportLenient ImportMode = iota
	// ImportStrict requires js, css and html.
	ImportStrict
)

// ImportError describes why a payload could not be imported.
type ImportError struct {
	Missing []string
	Err     error
}

func (e *ImportError) Error() string {
	var reason string
	switch {
	case e.Err != nil:
		reason = e.Err.Error()
	case len(e.Missing) == 1:
		reason = fmt.Sprintf("JSON must contain a %s string property.", e.Missing[0])
	default:
		reason = fmt.Sprintf("JSON must contain %s string properties.", joinFields(e.Missing))
	}
	return "Invalid JSON format or missing keys: " + reason
}

func (e *ImportError) Unwrap() error { return e.Err }

// Import decodes a JSON sketch payload. The result is either a complete
// document or an error; nothing is merged into an existing document.
func Import(data []byte, mode ImportMode) (Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &ImportError{Err: err}
	}
	if raw == nil {
		return Document{}, &ImportError{Missing: required(mode)}
	}

	var missing []string
	for _, key := range required(mode) {
		if _, ok := raw[key].(string); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Document{}, &ImportError{Missing: missing}
	}

	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}
	return Document{
		HTML:   str("html"),
		JS:     str("js"),
		CSS:    str("css"),
		Title:  str("title"),
		Author: str("author"),
	}, nil
}

func required(mode ImportMode) []string {
	if mode == ImportStrict {
		return []string{"js", "css", "html"}
	}
	return []string{"js"}
}

func joinFields(keys []string) string {
	if len(keys) < 2 {
		return strings.Join(keys, "")
	}
	return strings.Join(keys[:len(keys)-1], ", ") + " and " + keys[len(keys)-1]
}
