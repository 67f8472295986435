package effects

import (
	"time"

	"github.com/Faultbox/aquarium/pkg/math"
)

// Point is one trail sample.
type Point struct {
	Pos  math.Vec2
	Born time.Time
}

// Trail is a fixed-capacity ring of recent pointer positions. Once full,
// each push evicts the oldest point.
type Trail struct {
	buf   []Point
	start int
	n     int
}

// NewTrail creates a trail holding at most capacity points.
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]Point, capacity)}
}

// Push appends a point, evicting the oldest when the trail is full.
func (t *Trail) Push(p math.Vec2, now time.Time) {
	if t.n == len(t.buf) {
		t.buf[t.start] = Point{Pos: p, Born: now}
		t.start = (t.start + 1) % len(t.buf)
		return
	}
	t.buf[(t.start+t.n)%len(t.buf)] = Point{Pos: p, Born: now}
	t.n++
}

// Expire drops points older than ttl.
func (t *Trail) Expire(now time.Time, ttl time.Duration) {
	for t.n > 0 && now.Sub(t.buf[t.start].Born) >= ttl {
		t.start = (t.start + 1) % len(t.buf)
		t.n--
	}
}

// Len returns the number of live points.
func (t *Trail) Len() int {
	return t.n
}

// Cap returns the maximum number of points.
func (t *Trail) Cap() int {
	return len(t.buf)
}

// At returns the i-th point, oldest first.
func (t *Trail) At(i int) Point {
	return t.buf[(t.start+i)%len(t.buf)]
}

// Clear drops every point.
func (t *Trail) Clear() {
	t.start, t.n = 0, 0
}
