// Package effects implements the pointer-follower effects: an eased chain of
// points, a fading trail, drifting particles and a cat that chases the
// pointer.
package effects

import "github.com/Faultbox/aquarium/pkg/math"

// Chain is a tail of points behind the pointer. Link 0 sits on the input;
// every other link moves a fixed fraction of the way toward the link in
// front of it each frame.
type Chain struct {
	links  []math.Vec2
	easing float32
}

// NewChain creates n links collapsed onto start. n is at least 1 and easing
// is clamped to (0, 1].
func NewChain(n int, easing float32, start math.Vec2) *Chain {
	if n < 1 {
		n = 1
	}
	if easing <= 0 || easing > 1 {
		easing = 1
	}
	c := &Chain{links: make([]math.Vec2, n), easing: easing}
	c.Reset(start)
	return c
}

// Reset collapses every link onto p.
func (c *Chain) Reset(p math.Vec2) {
	for i := range c.links {
		c.links[i] = p
	}
}

// snapDistance is how close a link gets before it lands on the link ahead.
// Below it the float32 ease no longer moves the link.
const snapDistance = 1e-3

// Update pins the head to target and eases each following link.
func (c *Chain) Update(target math.Vec2) {
	c.links[0] = target
	for i := 1; i < len(c.links); i++ {
		if c.links[i].Distance(c.links[i-1]) < snapDistance {
			c.links[i] = c.links[i-1]
			continue
		}
		c.links[i] = c.links[i].Lerp(c.links[i-1], c.easing)
	}
}

// Links returns the link positions, head first. Callers must not modify it.
func (c *Chain) Links() []math.Vec2 {
	return c.links
}

// Len returns the number of links.
func (c *Chain) Len() int {
	return len(c.links)
}

// Tail returns the last link.
func (c *Chain) Tail() math.Vec2 {
	return c.links[len(c.links)-1]
}
