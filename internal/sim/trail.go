package sim

import "github.com/san-kum/attractors/internal/dynamo"

// Trail is a fixed-capacity ring of recent states. Pushing into a full trail
// overwrites the oldest entry. A trail with capacity <= 0 records nothing.
type Trail struct {
	data []dynamo.Vec3
	pos  int
	full bool
}

// NewTrail creates a Trail holding at most capacity states.
func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{data: make([]dynamo.Vec3, capacity)}
}

// Push appends s, evicting the oldest state when the trail is full.
func (t *Trail) Push(s dynamo.Vec3) {
	if len(t.data) == 0 {
		return
	}
	t.data[t.pos] = s
	t.pos++
	if t.pos >= len(t.data) {
		t.pos = 0
		t.full = true
	}
}

// Len returns the number of recorded states.
func (t *Trail) Len() int {
	if t.full {
		return len(t.data)
	}
	return t.pos
}

func (t *Trail) Cap() int { return len(t.data) }

// At returns the i-th recorded state, 0 being the oldest.
func (t *Trail) At(i int) dynamo.Vec3 {
	if i < 0 || i >= t.Len() {
		panic("sim: trail index out of range")
	}
	if t.full {
		i = (t.pos + i) % len(t.data)
	}
	return t.data[i]
}

// Last returns the newest state, or false if the trail is empty.
func (t *Trail) Last() (dynamo.Vec3, bool) {
	n := t.Len()
	if n == 0 {
		return dynamo.Vec3{}, false
	}
	return t.At(n - 1), true
}

// Points returns a copy of the recorded states, oldest first.
func (t *Trail) Points() []dynamo.Vec3 {
	out := make([]dynamo.Vec3, t.Len())
	if t.full {
		n := copy(out, t.data[t.pos:])
		copy(out[n:], t.data[:t.pos])
	} else {
		copy(out, t.data[:t.pos])
	}
	return out
}

// Each calls fn for every recorded state, oldest first, without allocating.
func (t *Trail) Each(fn func(i int, s dynamo.Vec3)) {
	n := t.Len()
	for i := 0; i < n; i++ {
		fn(i, t.At(i))
	}
}

// Clear forgets every recorded state. Capacity is kept.
func (t *Trail) Clear() {
	t.pos = 0
	t.full = false
}
