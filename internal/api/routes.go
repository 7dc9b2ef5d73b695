package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/p5embed/internal/embed"
	"github.com/ziadkadry99/p5embed/internal/sketch"
	"github.com/ziadkadry99/p5embed/internal/store"
)

// Options configures the sketch routes.
type Options struct {
	// MaxBodyBytes caps the size of a submitted sketch.
	MaxBodyBytes int64
	// Page controls the server-rendered embed page.
	Page embed.PageOptions
}

// createRequest is the decoded POST body. Fields that are absent or not
// strings read as empty, so a non-string js is reported as missing.
type createRequest map[string]any

func (req createRequest) str(key string) string {
	v, _ := req[key].(string)
	return v
}

type createResponse struct {
	ID       string `json:"id"`
	EmbedURL string `json:"embedUrl"`
	ViewURL  string `json:"viewUrl"`
}

type embedResponse struct {
	EmbedCode string `json:"embedCode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes mounts the sketch API, embed pages and view redirects.
func RegisterRoutes(r chi.Router, s store.Store, opts Options) {
	r.Route("/api/sketches", func(r chi.Router) {
		r.Post("/", handleCreate(s, opts))
		r.Get("/{id}", handleGetByID(s))
		r.Get("/{id}/embed", handleEmbedCode(s))
	})
	r.Get("/embed/{id}", handleEmbedPage(s, opts))
	r.Get("/view/{id}", handleView(s))
}

// EmbedPath is the path of the standalone embed page for a sketch.
func EmbedPath(id string) string { return "/embed/" + url.PathEscape(id) }

// ViewPath is the path that opens a sketch in the editor.
func ViewPath(id string) string { return "/view/" + url.PathEscape(id) }

func handleCreate(s store.Store, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if opts.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes)
		}

		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		created, err := s.Create(r.Context(), sketch.Document{
			HTML:   req.str("html"),
			JS:     req.str("js"),
			CSS:    req.str("css"),
			Title:  req.str("title"),
			Author: req.str("author"),
		})
		if errors.Is(err, store.ErrJSRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Sketch JS code is required"})
			return
		}
		if err != nil {
			log.Printf("api: creating sketch: %v", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to create sketch"})
			return
		}

		writeJSON(w, http.StatusCreated, createResponse{
			ID:       created.ID,
			EmbedURL: EmbedPath(created.ID),
			ViewURL:  ViewPath(created.ID),
		})
	}
}

func handleGetByID(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sk, ok := lookupJSON(w, r, s)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, sk)
	}
}

func handleEmbedCode(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sk, ok := lookupJSON(w, r, s)
		if !ok {
			return
		}

		opts := embed.ParseOptions(r.URL.Query())
		src := Origin(r) + EmbedPath(sk.ID)
		if opts.ShowCode {
			src += "?showCode=true"
		}

		writeJSON(w, http.StatusOK, embedResponse{
			EmbedCode: embed.Snippet(sk.Document(), src, opts),
		})
	}
}

func handleEmbedPage(s store.Store, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sk, ok := lookupText(w, r, s)
		if !ok {
			return
		}

		pageOpts := opts.Page
		pageOpts.ShowCode = r.URL.Query().Get("showCode") == "true"

		page, err := embed.Page(sk.Document(), pageOpts)
		if err != nil {
			log.Printf("api: rendering embed page %s: %v", sk.ID, err)
			http.Error(w, "Failed to render sketch", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}
}

func handleView(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sk, ok := lookupText(w, r, s)
		if !ok {
			return
		}
		http.Redirect(w, r, "/?sketch="+url.QueryEscape(sk.ID), http.StatusFound)
	}
}

// lookupJSON loads the sketch named by the {id} param, answering with a
// JSON error when it cannot.
func lookupJSON(w http.ResponseWriter, r *http.Request, s store.Store) (*store.Sketch, bool) {
	id := chi.URLParam(r, "id")
	sk, err := s.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Sketch not found"})
		return nil, false
	}
	if err != nil {
		log.Printf("api: loading sketch %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load sketch"})
		return nil, false
	}
	return sk, true
}

// lookupText is lookupJSON for routes that answer with plain text.
func lookupText(w http.ResponseWriter, r *http.Request, s store.Store) (*store.Sketch, bool) {
	id := chi.URLParam(r, "id")
	sk, err := s.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Sketch not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		log.Printf("api: loading sketch %s: %v", id, err)
		http.Error(w, "Failed to load sketch", http.StatusInternalServerError)
		return nil, false
	}
	return sk, true
}

// Origin returns scheme://host as seen by the client.
func Origin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
