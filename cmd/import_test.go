package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/p5embed/internal/sketch"
	"github.com/ziadkadry99/p5embed/internal/store"
)

type countingReporter struct {
	total, last int
	finished    bool
}

func (r *countingReporter) Start(total int)             { r.total = total }
func (r *countingReporter) Update(current int, _ string) { r.last = current }
func (r *countingReporter) Finish()                      { r.finished = true }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.json"), `{}`)
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.json"), `{}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), ``)

	paths, err := expandGlobs([]string{
		filepath.Join(dir, "**", "*.json"),
		filepath.Join(dir, "a.json"),
	})
	if err != nil {
		t.Fatalf("expandGlobs: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 unique files, got %v", paths)
	}
	if !strings.HasSuffix(paths[1], filepath.Join("nested", "deep", "b.json")) {
		t.Errorf("unexpected order %v", paths)
	}
}

func TestImportFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, good, `{"js": "function draw(){}", "title": "Good"}`)
	writeFile(t, bad, `{"css": "body{}"}`)

	st := store.NewMemory()
	rep := &countingReporter{}
	results := importFiles(context.Background(), st, []string{bad, good}, rep)

	if rep.total != 2 || rep.last != 2 || !rep.finished {
		t.Errorf("unexpected progress %+v", rep)
	}
	if results[0].Err == nil {
		t.Error("expected bad.json to fail")
	}
	if results[1].Err != nil {
		t.Fatalf("good.json: %v", results[1].Err)
	}

	saved, err := st.GetByID(context.Background(), results[1].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if saved.Title != "Good" || saved.HTML != sketch.DefaultHTML {
		t.Errorf("unexpected stored sketch %+v", saved)
	}
	if st.Len() != 1 {
		t.Errorf("expected 1 stored sketch, got %d", st.Len())
	}
}

func TestReadSketchDemo(t *testing.T) {
	doc, err := readSketch("mouse-trail", true)
	if err != nil {
		t.Fatalf("readSketch: %v", err)
	}
	if doc.Title != "Mouse Trail" || doc.CSS == "" {
		t.Errorf("unexpected demo %+v", doc)
	}
	if _, err := readSketch("../etc/passwd", true); err == nil {
		t.Error("expected error for invalid demo name")
	}
}
