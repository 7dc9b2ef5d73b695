package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ziadkadry99/p5embed/internal/sketch"
)

// Memory keeps sketches in a map for the lifetime of the process. It has
// no size bound and loses everything on restart.
type Memory struct {
	mu       sync.RWMutex
	sketches map[string]Sketch
	now      func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sketches: make(map[string]Sketch), now: time.Now}
}

// Create validates and stores a sketch.
func (m *Memory) Create(_ context.Context, doc sketch.Document) (*Sketch, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	s := newSketch(doc, m.now())

	m.mu.Lock()
	m.sketches[s.ID] = s
	m.mu.Unlock()
	return &s, nil
}

// GetByID returns the sketch with the given id or ErrNotFound.
func (m *Memory) GetByID(_ context.Context, id string) (*Sketch, error) {
	m.mu.RLock()
	s, ok := m.sketches[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// List returns up to limit sketches, newest first. A limit <= 0 returns all.
func (m *Memory) List(_ context.Context, limit int) ([]Sketch, error) {
	m.mu.RLock()
	out := make([]Sketch, 0, len(m.sketches))
	for _, s := range m.sketches {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of stored sketches.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sketches)
}
