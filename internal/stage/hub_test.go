package stage

import "testing"

func TestFrameHub_TickOrder(t *testing.T) {
	var h frameHub
	var got []int
	h.Every(func() { got = append(got, 1) })
	h.Every(func() { got = append(got, 2) })

	h.tick()
	h.tick()

	want := []int{1, 2, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFrameHub_CancelIdempotent(t *testing.T) {
	var h frameHub
	var a, b int
	cancelA := h.Every(func() { a++ })
	h.Every(func() { b++ })

	h.tick()
	cancelA()
	cancelA()
	h.tick()

	if a != 1 || b != 2 {
		t.Errorf("a=%d b=%d, want 1 and 2", a, b)
	}
	if h.len() != 1 {
		t.Errorf("len = %d, want 1", h.len())
	}
}

func TestFrameHub_ChangesDuringTick(t *testing.T) {
	var h frameHub
	var late, self int
	var cancelSelf func()
	cancelSelf = h.Every(func() {
		self++
		cancelSelf()
		h.Every(func() { late++ })
	})

	h.tick()
	if self != 1 || late != 0 {
		t.Fatalf("first tick: self=%d late=%d, want 1 and 0", self, late)
	}

	h.tick()
	if self != 1 || late != 1 {
		t.Errorf("second tick: self=%d late=%d, want 1 and 1", self, late)
	}
}
