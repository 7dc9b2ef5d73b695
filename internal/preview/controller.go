package preview

import (
	"errors"
	"sync"
	"time"

	"github.com/ziadkadry99/p5embed/internal/sketch"
)

// DefaultLoadingDelay is how long the loading page stays up before the
// sketch itself is installed.
const DefaultLoadingDelay = 500 * time.Millisecond

// ErrClosed is returned by operations on a closed Controller.
var ErrClosed = errors.New("preview controller closed")

// State is the run state of a preview frame.
type State string

const (
	StateStopped State = "stopped"
	StateLoading State = "loading"
	StateRunning State = "running"
)

// Snapshot is the observable state of a Controller.
type Snapshot struct {
	State   State  `json:"state"`
	Src     string `json:"src"`
	Version uint64 `json:"version"`
}

// Options configures a Controller.
type Options struct {
	P5URL        string
	LoadingDelay time.Duration
}

// Controller drives one preview frame. It owns at most one live registry
// resource at a time and releases it whenever it is superseded.
//
// Listeners registered with OnChange are called after the controller lock is
// released, so concurrent transitions may be delivered out of order; compare
// Snapshot.Version to discard stale ones.
type Controller struct {
	mu        sync.Mutex
	reg       *Registry
	opts      Options
	state     State
	current   Resource
	version   uint64
	gen       uint64
	timer     *time.Timer
	closed    bool
	listeners []func(Snapshot)
}

// NewController creates a stopped controller that publishes into reg.
func NewController(reg *Registry, opts Options) *Controller {
	if opts.P5URL == "" {
		opts.P5URL = DefaultP5URL
	}
	if opts.LoadingDelay < 0 {
		opts.LoadingDelay = 0
	}
	return &Controller{reg: reg, opts: opts, state: StateStopped}
}

// OnChange registers a listener for state transitions.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Run shows the loading page, then installs the rendered sketch once the
// loading delay has passed. A later Run or Stop cancels a pending install.
func (c *Controller) Run(doc sketch.Document) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.cancelLocked()

	if c.opts.LoadingDelay == 0 {
		c.installLocked(Render(doc, c.opts.P5URL))
		c.state = StateRunning
		c.publishLocked()
		return nil
	}

	c.installLocked(LoadingPage())
	c.state = StateLoading
	gen := c.gen
	c.timer = time.AfterFunc(c.opts.LoadingDelay, func() { c.finish(gen, doc) })
	c.publishLocked()
	return nil
}

// Stop cancels pending work and shows the stopped page.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.cancelLocked()
	c.installLocked(StoppedPage())
	c.state = StateStopped
	c.publishLocked()
	return nil
}

// Close cancels pending work and releases the live resource.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelLocked()
	c.reg.Release(c.current.Token)
	c.current = Resource{}
	c.state = StateStopped
	c.listeners = nil
}

func (c *Controller) finish(gen uint64, doc sketch.Document) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.installLocked(Render(doc, c.opts.P5URL))
	c.state = StateRunning
	c.publishLocked()
}

// cancelLocked invalidates any scheduled install.
func (c *Controller) cancelLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) installLocked(content string) {
	old := c.current
	c.current = c.reg.Put(content)
	c.reg.Release(old.Token)
	c.version++
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{State: c.state, Src: c.current.URL(), Version: c.version}
}

// publishLocked releases c.mu and hands the new snapshot to listeners.
func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	listeners := append([]func(Snapshot){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}
