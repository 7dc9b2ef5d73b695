package editor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/p5embed/internal/demos"
	"github.com/ziadkadry99/p5embed/internal/preview"
	"github.com/ziadkadry99/p5embed/internal/store"
)

// StorageKey is the localStorage key the editor page keeps the active
// sketch under.
const StorageKey = "p5-sketch-data"

// Editor serves the editing UI and hosts one Session per connected page.
type Editor struct {
	store    store.Store
	registry *preview.Registry
	opts     preview.Options
}

// New creates an Editor. Preview documents of every session are published
// into reg.
func New(st store.Store, reg *preview.Registry, opts preview.Options) *Editor {
	return &Editor{store: st, registry: reg, opts: opts}
}

// RegisterRoutes mounts the editor page, demo sketches, preview resources
// and the session socket.
func (e *Editor) RegisterRoutes(r chi.Router) {
	r.Get("/", ServeIndex)
	r.Get("/api/demos", handleDemoList)
	r.Get("/examples/{name}.json", handleDemo)
	r.Get("/preview/{token}", e.registry.ServeHTTP)
	r.Get("/ws/editor", e.handleWebSocket)
}

func handleDemoList(w http.ResponseWriter, r *http.Request) {
	names, err := demos.Names()
	if err != nil {
		http.Error(w, `{"error":"failed to list demos"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(names)
}

func handleDemo(w http.ResponseWriter, r *http.Request) {
	data, err := demos.Raw(chi.URLParam(r, "name"))
	if errors.Is(err, demos.ErrUnknownDemo) {
		http.Error(w, "Could not load demo sketch", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Could not load demo sketch", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
