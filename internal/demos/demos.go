// Package demos ships the example sketches offered by the editor.
package demos

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/p5embed/internal/sketch"
)

//go:embed examples/*.json
var files embed.FS

// ErrUnknownDemo is returned for names with no bundled sketch.
var ErrUnknownDemo = errors.New("unknown demo sketch")

// Names lists the bundled demo sketches, sorted.
func Names() ([]string, error) {
	matches, err := doublestar.Glob(files, "examples/*.json")
	if err != nil {
		return nil, fmt.Errorf("listing demos: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Raw returns the JSON source of a demo sketch.
func Raw(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return nil, ErrUnknownDemo
	}
	data, err := files.ReadFile("examples/" + name + ".json")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrUnknownDemo
	}
	if err != nil {
		return nil, fmt.Errorf("reading demo %s: %w", name, err)
	}
	return data, nil
}

// Load decodes a demo sketch.
func Load(name string) (sketch.Document, error) {
	data, err := Raw(name)
	if err != nil {
		return sketch.Document{}, err
	}
	doc, err := sketch.Import(data, sketch.ImportLenient)
	if err != nil {
		return sketch.Document{}, fmt.Errorf("decoding demo %s: %w", name, err)
	}
	return doc, nil
}
