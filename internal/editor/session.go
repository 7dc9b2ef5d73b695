package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/ziadkadry99/p5embed/internal/api"
	"github.com/ziadkadry99/p5embed/internal/embed"
	"github.com/ziadkadry99/p5embed/internal/preview"
	"github.com/ziadkadry99/p5embed/internal/sketch"
	"github.com/ziadkadry99/p5embed/internal/store"
)

// State is the view of a session pushed to the browser.
type State struct {
	Document     sketch.Document  `json:"document"`
	ActiveTab    sketch.Field     `json:"activeTab"`
	Dirty        bool             `json:"dirty"`
	Preview      preview.Snapshot `json:"preview"`
	EmbedOptions embed.Options    `json:"embedOptions"`
	EmbedCode    string           `json:"embedCode"`
	SketchID     string           `json:"sketchId,omitempty"`
}

// Session is one open editor: the sketch being edited, the tab in front,
// the embed options and the preview frame.
//
// Preview transitions are triggered with s.mu released, since controller
// listeners call back into State.
type Session struct {
	mu        sync.Mutex
	doc       sketch.Document
	baseline  sketch.Document
	tab       sketch.Field
	embedOpts embed.Options
	savedID   string

	store   store.Store
	preview *preview.Controller
}

// NewSession creates a session holding the default sketch. The preview is
// not started until Load or Apply.
func NewSession(st store.Store, ctrl *preview.Controller) *Session {
	doc := sketch.Default()
	return &Session{
		doc:       doc,
		baseline:  doc,
		tab:       sketch.FieldJS,
		embedOpts: embed.DefaultOptions(),
		store:     st,
		preview:   ctrl,
	}
}

// Document returns a copy of the sketch being edited.
func (s *Session) Document() sketch.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Load replaces the sketch wholesale and restarts the preview with it.
// id is the store id the sketch came from, or empty.
func (s *Session) Load(doc sketch.Document, id string) error {
	s.mu.Lock()
	s.doc = doc
	s.baseline = doc
	s.savedID = id
	s.mu.Unlock()
	return s.preview.Run(doc)
}

// Import decodes a JSON payload and, only if it is valid, replaces the
// sketch with it.
func (s *Session) Import(data []byte, mode sketch.ImportMode) error {
	doc, err := sketch.Import(data, mode)
	if err != nil {
		return err
	}
	return s.Load(doc, "")
}

// SetField edits one source field in place. The preview is not refreshed.
func (s *Session) SetField(f sketch.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Set(f, value)
}

// SelectTab brings a source field to the front.
func (s *Session) SelectTab(f sketch.Field) error {
	if !f.Valid() {
		return fmt.Errorf("unknown sketch field %d", int(f))
	}
	s.mu.Lock()
	s.tab = f
	s.mu.Unlock()
	return nil
}

// Apply reruns the preview with the current edits.
func (s *Session) Apply() error {
	s.mu.Lock()
	doc := s.doc
	s.baseline = doc
	s.mu.Unlock()
	return s.preview.Run(doc)
}

// Toggle stops a running or loading preview, and runs a stopped one.
func (s *Session) Toggle() error {
	if s.preview.Snapshot().State == preview.StateStopped {
		return s.Apply()
	}
	return s.preview.Stop()
}

// SetEmbedOptions replaces the snippet options.
func (s *Session) SetEmbedOptions(opts embed.Options) {
	s.mu.Lock()
	s.embedOpts = opts
	s.mu.Unlock()
}

// Save stores the current sketch and remembers its id for embed code.
func (s *Session) Save(ctx context.Context) (*store.Sketch, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no sketch store configured")
	}
	doc := s.Document()
	saved, err := s.store.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.savedID = saved.ID
	s.mu.Unlock()
	return saved, nil
}

// State returns the browser view of the session. origin is the
// scheme://host embed URLs are built on.
func (s *Session) State(origin string) State {
	snap := s.preview.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Document:     s.doc,
		ActiveTab:    s.tab,
		Dirty:        !s.doc.Equal(s.baseline),
		Preview:      snap,
		EmbedOptions: s.embedOpts,
		EmbedCode:    embed.Snippet(s.doc, s.embedSrcLocked(origin), s.embedOpts),
		SketchID:     s.savedID,
	}
}

func (s *Session) embedSrcLocked(origin string) string {
	if s.savedID == "" {
		return embed.PlaceholderSrc
	}
	src := origin + api.EmbedPath(s.savedID)
	if s.embedOpts.ShowCode {
		src += "?showCode=true"
	}
	return src
}

// Close stops the preview and releases its resources.
func (s *Session) Close() {
	s.preview.Close()
}
