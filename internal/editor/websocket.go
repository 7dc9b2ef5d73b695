package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/p5embed/internal/api"
	"github.com/ziadkadry99/p5embed/internal/demos"
	"github.com/ziadkadry99/p5embed/internal/embed"
	"github.com/ziadkadry99/p5embed/internal/preview"
	"github.com/ziadkadry99/p5embed/internal/sketch"
	"github.com/ziadkadry99/p5embed/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type    string         `json:"type"` // update, tab, apply, toggle, import, embed_options, save
	ID      int            `json:"id,omitempty"`
	Field   *sketch.Field  `json:"field,omitempty"`
	Value   string         `json:"value,omitempty"`
	JSON    string         `json:"json,omitempty"`
	Strict  *bool          `json:"strict,omitempty"`
	Options *embed.Options `json:"options,omitempty"`
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type  string `json:"type"` // state, error, import_result
	ID    int    `json:"id,omitempty"`
	State *State `json:"state,omitempty"`
	Error string `json:"error,omitempty"`
}

// conn serializes writes; gorilla connections allow one concurrent writer.
type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) send(msg serverMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.WriteJSON(msg); err != nil {
		log.Printf("editor: websocket write: %v", err)
	}
}

func (e *Editor) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("editor: websocket upgrade: %v", err)
		return
	}
	defer ws.Close()

	c := &conn{ws: ws}
	origin := api.Origin(r)

	sess := NewSession(e.store, preview.NewController(e.registry, e.opts))
	defer sess.Close()

	pushState := func() {
		st := sess.State(origin)
		c.send(serverMessage{Type: "state", State: &st})
	}
	sess.preview.OnChange(func(preview.Snapshot) { pushState() })

	doc, id, err := e.initialDocument(r.Context(), r)
	if err != nil {
		c.send(serverMessage{Type: "error", Error: err.Error()})
	}
	if err := sess.Load(doc, id); err != nil {
		log.Printf("editor: starting preview: %v", err)
		return
	}

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("editor: websocket read: %v", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.send(serverMessage{Type: "error", Error: "invalid message format"})
			continue
		}

		err = e.dispatch(r.Context(), sess, msg)
		if msg.Type == "import" {
			// Import replies carry the request id.
			result := serverMessage{Type: "import_result", ID: msg.ID}
			if err != nil {
				result.Error = err.Error()
			} else {
				pushState()
			}
			c.send(result)
			continue
		}
		if err != nil {
			c.send(serverMessage{Type: "error", Error: err.Error()})
			continue
		}
		pushState()
	}
}

// dispatch applies one client message to the session.
func (e *Editor) dispatch(ctx context.Context, sess *Session, msg clientMessage) error {
	switch msg.Type {
	case "update":
		if msg.Field == nil {
			return errors.New("field is required")
		}
		return sess.SetField(*msg.Field, msg.Value)
	case "tab":
		if msg.Field == nil {
			return errors.New("field is required")
		}
		return sess.SelectTab(*msg.Field)
	case "apply":
		return sess.Apply()
	case "toggle":
		return sess.Toggle()
	case "import":
		mode := sketch.ImportStrict
		if msg.Strict != nil && !*msg.Strict {
			mode = sketch.ImportLenient
		}
		return sess.Import([]byte(msg.JSON), mode)
	case "embed_options":
		if msg.Options == nil {
			return errors.New("options are required")
		}
		sess.SetEmbedOptions(*msg.Options)
		return nil
	case "save":
		if _, err := sess.Save(ctx); err != nil {
			if errors.Is(err, store.ErrJSRequired) {
				return errors.New("Sketch JS code is required")
			}
			log.Printf("editor: saving sketch: %v", err)
			return errors.New("Failed to save sketch")
		}
		return nil
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// initialDocument picks the sketch a new session opens with: a stored
// sketch (?sketch=id), a demo (?demo=name) or the default. On failure it
// returns the default together with the error.
func (e *Editor) initialDocument(ctx context.Context, r *http.Request) (sketch.Document, string, error) {
	q := r.URL.Query()

	if id := q.Get("sketch"); id != "" && e.store != nil {
		sk, err := e.store.GetByID(ctx, id)
		if err != nil {
			return sketch.Default(), "", fmt.Errorf("Error loading sketch: %w", err)
		}
		return sk.Document().WithDefaults(), sk.ID, nil
	}

	if name := q.Get("demo"); name != "" {
		doc, err := demos.Load(name)
		if err != nil {
			return sketch.Default(), "", fmt.Errorf("Could not load demo sketch: %w", err)
		}
		return doc.WithDefaults(), "", nil
	}

	return sketch.Default(), "", nil
}
