package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ziadkadry99/p5embed/internal/sketch"
)

const (
	DefaultTitle  = "Untitled Sketch"
	DefaultAuthor = "Anonymous"
)

var (
	// ErrNotFound is returned when no sketch has the requested id.
	ErrNotFound = errors.New("sketch not found")
	// ErrJSRequired is returned when a sketch without code is submitted.
	ErrJSRequired = errors.New("sketch JS code is required")
)

// Sketch is a document the store has accepted.
type Sketch struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	HTML    string    `json:"html"`
	JS      string    `json:"js"`
	CSS     string    `json:"css"`
	Created time.Time `json:"created"`
}

// Document returns the editable part of the stored sketch.
func (s *Sketch) Document() sketch.Document {
	return sketch.Document{HTML: s.HTML, JS: s.JS, CSS: s.CSS, Title: s.Title, Author: s.Author}
}

// Store is the persistence capability the HTTP layer depends on.
type Store interface {
	Create(ctx context.Context, doc sketch.Document) (*Sketch, error)
	GetByID(ctx context.Context, id string) (*Sketch, error)
}

// Lister is implemented by stores that can enumerate their sketches.
type Lister interface {
	List(ctx context.Context, limit int) ([]Sketch, error)
}

// Validate rejects documents the store cannot accept.
func Validate(doc sketch.Document) error {
	if doc.JS == "" {
		return ErrJSRequired
	}
	return nil
}

// newSketch applies the server-side defaults and assigns an id.
func newSketch(doc sketch.Document, now time.Time) Sketch {
	s := Sketch{
		ID:      NewID(now),
		Title:   doc.Title,
		Author:  doc.Author,
		HTML:    doc.HTML,
		JS:      doc.JS,
		CSS:     doc.CSS,
		Created: now.UTC().Truncate(time.Millisecond),
	}
	if strings.TrimSpace(s.Title) == "" {
		s.Title = DefaultTitle
	}
	if strings.TrimSpace(s.Author) == "" {
		s.Author = DefaultAuthor
	}
	return s
}
