package field

import (
	"log/slog"
	"math/rand"
	"sync"
)

// Scheduler invokes a callback once per display refresh until cancelled.
type Scheduler interface {
	Every(fn func()) (cancel func())
}

// Host is the view a field is mounted in. It supplies the container size,
// the drawing surface and the frame cadence.
type Host interface {
	Scheduler
	Bounds() (width, height int)
	Acquire(width, height int) (Surface, error)
	Release(s Surface)
}

// State of an Animation.
type State int

const (
	StateActive State = iota
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Animation is the handle of one mounted field. It is created active by
// Start and becomes stopped exactly once; it never restarts.
type Animation struct {
	host    Host
	logger  *slog.Logger
	surface Surface
	field   *Field
	cancel  func()

	mu    sync.Mutex // serialises frames against Stop and Resize
	state State
	once  sync.Once
}

// Start mounts a new field on h and begins scheduling frames. If no surface
// can be acquired the returned animation is already stopped and nothing is
// scheduled; the failure is only logged, since the field is decorative.
func Start(h Host, opts Options, rng *rand.Rand, logger *slog.Logger) *Animation {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Animation{host: h, logger: logger, state: StateStopped}

	w, hgt := h.Bounds()
	s, err := h.Acquire(w, hgt)
	if err != nil {
		logger.Debug("particle field disabled", "error", err, "width", w, "height", hgt)
		return a
	}

	scheduled := false
	defer func() {
		if !scheduled {
			h.Release(s)
		}
	}()

	a.surface = s
	a.field = New(float64(w), float64(hgt), opts, rng)
	a.state = StateActive
	a.cancel = h.Every(a.frame)
	scheduled = true

	logger.Debug("particle field started", "particles", opts.Count, "distance", opts.Distance, "width", w, "height", hgt)
	return a
}

// frame runs one advance+render step.
func (a *Animation) frame() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateActive {
		return
	}
	a.field.Advance()
	a.field.Render(a.surface)
}

// Stop cancels frame scheduling and releases the surface. Calling it more
// than once is harmless. A frame already running completes first.
func (a *Animation) Stop() {
	a.once.Do(func() {
		a.mu.Lock()
		wasActive := a.state == StateActive
		a.state = StateStopped
		a.mu.Unlock()
		if !wasActive {
			return
		}

		a.cancel()
		a.host.Release(a.surface)
		a.logger.Debug("particle field stopped", "frames", a.field.Frame())
	})
}

// Resize follows a change of the container size. The surface is resized and
// the field bounds updated; particles keep their positions. A surface that
// cannot be resized stops the animation.
func (a *Animation) Resize(width, height int) {
	a.mu.Lock()
	if a.state != StateActive {
		a.mu.Unlock()
		return
	}
	err := a.surface.Resize(width, height)
	if err == nil {
		a.field.Resize(float64(width), float64(height))
	}
	a.mu.Unlock()

	if err != nil {
		a.logger.Debug("particle field surface resize failed", "error", err, "width", width, "height", height)
		a.Stop()
	}
}

// State reports whether the animation is still running.
func (a *Animation) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Field returns the animated field, or nil if Start never got a surface.
func (a *Animation) Field() *Field {
	return a.field
}

// Surface returns the surface frames are drawn on, or nil if Start never
// got one.
func (a *Animation) Surface() Surface {
	return a.surface
}
