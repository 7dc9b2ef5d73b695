package preview

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/p5embed/internal/sketch"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestRenderInlinesSourceVerbatim(t *testing.T) {
	docs := []sketch.Document{
		sketch.Default(),
		{JS: "function setup(){ if (1 < 2 && 3 > 2) { createCanvas(10, 10); } }", CSS: "body > main { color: red; }"},
		{JS: "let s = '</p>&amp;';", CSS: ""},
	}

	for _, doc := range docs {
		out := Render(doc, "")
		if !strings.Contains(out, "<style>"+doc.CSS+"</style>") {
			t.Errorf("css not inlined verbatim:\n%s", out)
		}
		if !strings.Contains(out, "<script>\n"+doc.JS+"\n    </script>") {
			t.Errorf("js not inlined verbatim:\n%s", out)
		}
		if strings.Count(out, "<style>") != 1 {
			t.Errorf("expected exactly one style block")
		}
		if !strings.Contains(out, `<script src="`+DefaultP5URL+`"></script>`) {
			t.Errorf("missing p5 script tag")
		}
		if !strings.Contains(out, "<main></main>") {
			t.Errorf("missing main mount")
		}
	}
}

func TestRenderCustomP5URL(t *testing.T) {
	out := Render(sketch.Document{JS: "draw()"}, "/static/p5.min.js")
	if !strings.Contains(out, `<script src="/static/p5.min.js"></script>`) {
		t.Errorf("custom p5 url not used:\n%s", out)
	}
}

func TestRenderSnapshot(t *testing.T) {
	snaps.WithConfig(snaps.Ext(".html")).MatchStandaloneSnapshot(t, Render(sketch.Default(), ""))
}

func TestRegistryServe(t *testing.T) {
	reg := NewRegistry()
	res := reg.Put("<p>hi</p>")

	r := chi.NewRouter()
	r.Get("/preview/{token}", reg.ServeHTTP)

	req := httptest.NewRequest("GET", res.URL(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "<p>hi</p>" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}

	reg.Release(res.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", res.URL(), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after release, got %d", w.Code)
	}
}

func TestControllerImmediate(t *testing.T) {
	reg := NewRegistry()
	c := NewController(reg, Options{})
	doc := sketch.Document{JS: "function draw(){}", CSS: "canvas{}"}

	if err := c.Run(doc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	snap := c.Snapshot()
	if snap.State != StateRunning {
		t.Fatalf("expected running, got %s", snap.State)
	}
	content, ok := reg.Get(strings.TrimPrefix(snap.Src, "/preview/"))
	if !ok {
		t.Fatal("running resource not registered")
	}
	if string(content) != Render(doc, "") {
		t.Error("resource does not hold the rendered sketch")
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	snap = c.Snapshot()
	if snap.State != StateStopped {
		t.Fatalf("expected stopped, got %s", snap.State)
	}
	content, _ = reg.Get(strings.TrimPrefix(snap.Src, "/preview/"))
	if string(content) != StoppedPage() {
		t.Error("expected stopped page")
	}
	if reg.Len() != 1 {
		t.Errorf("expected one live resource, got %d", reg.Len())
	}

	c.Close()
	if reg.Len() != 0 {
		t.Errorf("expected no live resources after Close, got %d", reg.Len())
	}
	if err := c.Run(doc); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestControllerLoadingThenRunning(t *testing.T) {
	reg := NewRegistry()
	c := NewController(reg, Options{LoadingDelay: 20 * time.Millisecond})
	defer c.Close()

	running := make(chan Snapshot, 4)
	c.OnChange(func(s Snapshot) {
		if s.State == StateRunning {
			running <- s
		}
	})

	if err := c.Run(sketch.Document{JS: "draw()"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	snap := c.Snapshot()
	if snap.State != StateLoading {
		t.Fatalf("expected loading, got %s", snap.State)
	}
	content, _ := reg.Get(strings.TrimPrefix(snap.Src, "/preview/"))
	if string(content) != LoadingPage() {
		t.Error("expected loading page while loading")
	}

	select {
	case s := <-running:
		if s.Version <= snap.Version {
			t.Errorf("expected newer version, got %d after %d", s.Version, snap.Version)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sketch never reached running")
	}
	if reg.Len() != 1 {
		t.Errorf("expected one live resource, got %d", reg.Len())
	}
}

func TestControllerSupersededRun(t *testing.T) {
	reg := NewRegistry()
	c := NewController(reg, Options{LoadingDelay: 30 * time.Millisecond})
	defer c.Close()

	var mu sync.Mutex
	var states []Snapshot
	var once sync.Once
	done := make(chan struct{})
	c.OnChange(func(s Snapshot) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
		if s.State == StateRunning {
			once.Do(func() { close(done) })
		}
	})

	first := sketch.Document{JS: "// first"}
	second := sketch.Document{JS: "// second"}
	c.Run(first)
	c.Run(second)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sketch never reached running")
	}
	// Give a stale timer the chance to misfire.
	time.Sleep(60 * time.Millisecond)

	snap := c.Snapshot()
	content, _ := reg.Get(strings.TrimPrefix(snap.Src, "/preview/"))
	if !strings.Contains(string(content), "// second") {
		t.Errorf("expected second sketch to be live:\n%s", content)
	}

	mu.Lock()
	defer mu.Unlock()
	runs := 0
	for _, s := range states {
		if s.State == StateRunning {
			runs++
		}
	}
	if runs != 1 {
		t.Errorf("expected exactly one running transition, got %d", runs)
	}
	if reg.Len() != 1 {
		t.Errorf("expected one live resource, got %d", reg.Len())
	}
}

func TestControllerStopCancelsPendingRun(t *testing.T) {
	reg := NewRegistry()
	c := NewController(reg, Options{LoadingDelay: 20 * time.Millisecond})
	defer c.Close()

	c.Run(sketch.Document{JS: "draw()"})
	c.Stop()
	time.Sleep(60 * time.Millisecond)

	if s := c.Snapshot(); s.State != StateStopped {
		t.Errorf("expected stopped, got %s", s.State)
	}
}
