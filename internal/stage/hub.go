package stage

import "sync"

// frameHub fans one Update out to every registered frame callback, in
// registration order, on the game goroutine.
type frameHub struct {
	mu     sync.Mutex
	nextID uint64
	subs   []frameSub
}

type frameSub struct {
	id uint64
	fn func()
}

// Every registers fn to run on each tick until the returned cancel is called.
// Cancel is idempotent.
func (h *frameHub) Every(fn func()) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, frameSub{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *frameHub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

// tick runs one frame. Callbacks registered or cancelled during the tick
// take effect from the next one.
func (h *frameHub) tick() {
	h.mu.Lock()
	subs := h.subs
	h.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}

func (h *frameHub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
