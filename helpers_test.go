package rowan

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// drawOp records one renderer call for order and argument assertions.
type drawOp struct {
	kind  string // "clear", "tile", "sprite", "outline"
	image ImageRef
	src   Rect
	dest  Vec2
	rect  Rect
	color Color
}

// recordRenderer is a Renderer that appends every call to an op log.
type recordRenderer struct {
	width, height int
	ops           []drawOp
	presented     int
}

func (r *recordRenderer) ViewportSize() (int, int) { return r.width, r.height }

func (r *recordRenderer) Clear(c Color) {
	r.ops = append(r.ops, drawOp{kind: "clear", color: c})
}

func (r *recordRenderer) DrawTile(image ImageRef, src Rect, dest Vec2) {
	r.ops = append(r.ops, drawOp{kind: "tile", image: image, src: src, dest: dest})
}

func (r *recordRenderer) DrawSpriteFrame(image ImageRef, src Rect, dest Vec2) {
	r.ops = append(r.ops, drawOp{kind: "sprite", image: image, src: src, dest: dest})
}

func (r *recordRenderer) DrawRectOutline(c Color, rect Rect) {
	r.ops = append(r.ops, drawOp{kind: "outline", color: c, rect: rect})
}

func (r *recordRenderer) Present() { r.presented++ }

func (r *recordRenderer) opsFor(image ImageRef) []drawOp {
	var out []drawOp
	for _, op := range r.ops {
		if op.image == image {
			out = append(out, op)
		}
	}
	return out
}

func (r *recordRenderer) count(kind string) int {
	n := 0
	for _, op := range r.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

// stubDetector is a CollisionDetector with a pluggable hit test. A nil
// blocked func means all space is passable.
type stubDetector struct {
	w, h    int
	blocked func(Rect) bool
}

func (d stubDetector) Collides(hitbox Rect) bool {
	return d.blocked != nil && d.blocked(hitbox)
}

func (d stubDetector) PixelSize() (int, int) { return d.w, d.h }

// walkSheet builds a 16x16-frame sheet with one-frame idles and four-frame
// walks, the shape most tests need.
func walkSheet(t *testing.T, image ImageRef) SpriteSheetDescriptor {
	t.Helper()
	sheet, err := NewSpriteSheetDescriptor(image, 16, 16, 4, 8, AnimationMap{
		ActionIdle: {
			DirDown: {0}, DirUp: {1}, DirLeft: {2}, DirRight: {3},
		},
		ActionWalk: {
			DirDown: {0, 1, 2, 3}, DirUp: {0, 1, 2, 3},
			DirLeft: {0, 1, 2, 3}, DirRight: {0, 1, 2, 3},
		},
	})
	if err != nil {
		t.Fatalf("NewSpriteSheetDescriptor: %v", err)
	}
	return sheet
}

// mustTilemap parses and builds a collision tilemap with 16px tiles where
// id 1 blocks.
func mustTilemap(t *testing.T, text string) *Tilemap {
	t.Helper()
	tiles, err := ParseTilemap(text, true)
	if err != nil {
		t.Fatalf("ParseTilemap: %v", err)
	}
	m, err := NewTilemap(tiles, 16, 16, 1)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	return m
}
