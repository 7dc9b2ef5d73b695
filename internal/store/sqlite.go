package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/p5embed/internal/db"
	"github.com/ziadkadry99/p5embed/internal/sketch"
)

// SQLite persists sketches in the sketches table.
type SQLite struct {
	db *db.DB
}

// NewSQLite creates a store over an opened database.
func NewSQLite(database *db.DB) *SQLite {
	return &SQLite{db: database}
}

// Create validates and inserts a sketch.
func (s *SQLite) Create(ctx context.Context, doc sketch.Document) (*Sketch, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}
	sk := newSketch(doc, time.Now())

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sketches (id, title, author, html, js, css, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sk.ID, sk.Title, sk.Author, sk.HTML, sk.JS, sk.CSS, sk.Created,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting sketch: %w", err)
	}
	return &sk, nil
}

// GetByID returns the sketch with the given id or ErrNotFound.
func (s *SQLite) GetByID(ctx context.Context, id string) (*Sketch, error) {
	var sk Sketch
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, author, html, js, css, created_at FROM sketches WHERE id = ?`, id,
	).Scan(&sk.ID, &sk.Title, &sk.Author, &sk.HTML, &sk.JS, &sk.CSS, &sk.Created)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting sketch: %w", err)
	}
	sk.Created = sk.Created.UTC()
	return &sk, nil
}

// List returns up to limit sketches, newest first. A limit <= 0 returns all.
func (s *SQLite) List(ctx context.Context, limit int) ([]Sketch, error) {
	query := `SELECT id, title, author, html, js, css, created_at FROM sketches ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sketches: %w", err)
	}
	defer rows.Close()

	var sketches []Sketch
	for rows.Next() {
		var sk Sketch
		if err := rows.Scan(&sk.ID, &sk.Title, &sk.Author, &sk.HTML, &sk.JS, &sk.CSS, &sk.Created); err != nil {
			return nil, fmt.Errorf("scanning sketch: %w", err)
		}
		sk.Created = sk.Created.UTC()
		sketches = append(sketches, sk)
	}
	return sketches, rows.Err()
}
