package preview

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Resource is a registered preview document, addressable by token.
type Resource struct {
	Token string
}

// URL returns the path the resource is served from.
func (r Resource) URL() string {
	if r.Token == "" {
		return ""
	}
	return "/preview/" + r.Token
}

// Registry holds rendered preview documents until they are released.
type Registry struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string][]byte)}
}

// Put stores content and returns a fresh resource for it.
func (r *Registry) Put(content string) Resource {
	token := uuid.New().String()
	r.mu.Lock()
	r.items[token] = []byte(content)
	r.mu.Unlock()
	return Resource{Token: token}
}

// Get returns the content registered under token.
func (r *Registry) Get(token string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[token]
	return b, ok
}

// Release frees a resource. Releasing an unknown token is a no-op.
func (r *Registry) Release(token string) {
	if token == "" {
		return
	}
	r.mu.Lock()
	delete(r.items, token)
	r.mu.Unlock()
}

// Len returns the number of live resources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// ServeHTTP serves GET /preview/{token}.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	content, ok := r.Get(chi.URLParam(req, "token"))
	if !ok {
		http.Error(w, "Preview not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(content)
}
