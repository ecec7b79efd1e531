// Package world keeps the shop's collision bodies in a resolv space and
// answers the ray queries perception needs.
package world

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"
	dmath "github.com/yohamta/donburi/features/math"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/gamemath"
	"github.com/automoto/kradylechka/perception"
	"github.com/automoto/kradylechka/tags"
)

// Body links a resolv object to whatever owns it.
type Body struct {
	Object *resolv.Object
	Owner  any
	tags   []string
	crowd  func() bool
	scale  float64
}

// Tags returns the body's tags, including the crowd tag while its crowd
// check reports true.
func (b *Body) Tags() []string {
	if b.crowd != nil && b.crowd() {
		return append(append([]string(nil), b.tags...), tags.ResolvCrowd)
	}
	return b.tags
}

// SetCrowd installs a check deciding when the body blocks sight.
func (b *Body) SetCrowd(fn func() bool) {
	b.crowd = fn
}

// Rect is the body's box in world units.
func (b *Body) Rect() gamemath.Rect {
	return gamemath.Rect{
		X: b.Object.X / b.scale,
		Y: b.Object.Y / b.scale,
		W: b.Object.W / b.scale,
		H: b.Object.H / b.scale,
	}
}

func (b *Body) Center() dmath.Vec2 {
	return b.Rect().Center()
}

// MoveTo centers the body on pos.
func (b *Body) MoveTo(pos dmath.Vec2) {
	b.Object.X = pos.X*b.scale - b.Object.W/2
	b.Object.Y = pos.Y*b.scale - b.Object.H/2
	b.Object.Update()
}

// Space is the occluder set for one simulation. The resolv space works in
// pixels, so world units are scaled by config.Level.PixelsPerUnit on the way
// in and back on the way out.
type Space struct {
	space         *resolv.Space
	width, height float64
	scale         float64
}

// NewSpace creates a space covering width x height world units, bucketed
// into cells of cellSize world units.
func NewSpace(width, height float64, cellSize int) *Space {
	if cellSize <= 0 {
		cellSize = 1
	}
	scale := config.Level.PixelsPerUnit
	if scale <= 0 {
		scale = 1
	}
	cell := int(math.Ceil(float64(cellSize) * scale))
	return &Space{
		space:  resolv.NewSpace(int(math.Ceil(width*scale)), int(math.Ceil(height*scale)), cell, cell),
		width:  width,
		height: height,
		scale:  scale,
	}
}

func (s *Space) Resolv() *resolv.Space { return s.space }
func (s *Space) Width() float64        { return s.width }
func (s *Space) Height() float64       { return s.height }

// AddRect adds a static box, such as a wall or shelf.
func (s *Space) AddRect(owner any, r gamemath.Rect, bodyTags ...string) *Body {
	w, h := r.W*s.scale, r.H*s.scale
	obj := resolv.NewObject(r.X*s.scale, r.Y*s.scale, w, h, bodyTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	body := &Body{Object: obj, Owner: owner, tags: bodyTags, scale: s.scale}
	obj.Data = body
	s.space.Add(obj)
	return body
}

// AddBody adds a square body of the given radius centered on pos.
func (s *Space) AddBody(owner any, pos dmath.Vec2, radius float64, bodyTags ...string) *Body {
	size := radius * 2
	return s.AddRect(owner, gamemath.Rect{X: pos.X - radius, Y: pos.Y - radius, W: size, H: size}, bodyTags...)
}

func (s *Space) Remove(b *Body) {
	if b == nil {
		return
	}
	s.space.Remove(b.Object)
}

// RaycastAll returns every body the segment crosses, nearest first.
func (s *Space) RaycastAll(origin, direction dmath.Vec2, maxDistance float64) []perception.Hit {
	dir := gamemath.Normalize(direction)
	if gamemath.IsZero(dir) || maxDistance <= 0 {
		return nil
	}

	var hits []perception.Hit
	for _, obj := range s.space.Objects() {
		body, ok := obj.Data.(*Body)
		if !ok {
			continue
		}
		dist, ok := gamemath.RaySegmentAABB(origin, dir, maxDistance, body.Rect())
		if !ok {
			continue
		}
		hits = append(hits, perception.Hit{
			Distance: dist,
			Tags:     body.Tags(),
			Owner:    body.Owner,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// SolidAt reports whether r overlaps a solid body. A probe object finds
// candidates through the resolv cells, then each is confirmed by box overlap.
func (s *Space) SolidAt(r gamemath.Rect) bool {
	probe := resolv.NewObject(r.X*s.scale, r.Y*s.scale, r.W*s.scale, r.H*s.scale)
	s.space.Add(probe)
	defer s.space.Remove(probe)

	collision := probe.Check(0, 0, tags.ResolvSolid)
	if collision == nil {
		return false
	}
	for _, obj := range collision.Objects {
		body, ok := obj.Data.(*Body)
		if ok && r.Overlaps(body.Rect()) {
			return true
		}
	}
	return false
}

// Blocked reports whether a point lies inside a solid body.
func (s *Space) Blocked(p dmath.Vec2) bool {
	for _, obj := range s.space.Objects() {
		body, ok := obj.Data.(*Body)
		if !ok || !obj.HasTags(tags.ResolvSolid) {
			continue
		}
		if body.Rect().Contains(p) {
			return true
		}
	}
	return false
}
