package rowan

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the camera's manual pan.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// MapCamera computes the pixel offset applied when mapping world coordinates
// to screen coordinates. Each frame it centers on a followed hitbox, adds
// the accumulated manual pan, and clamps so the view never leaves the map.
// The camera only reads its target's hitbox; it never owns the target.
type MapCamera struct {
	mapW, mapH   int
	viewW, viewH int

	panX, panY float64 // accumulated manual pan, persisted across frames
	x, y       float64 // clamped offset for the current frame

	panQueue []Vec2 // queued pan deltas, one consumed per update
	scroll   *scrollAnim
}

// NewMapCamera creates a camera with no map or view size yet. Both are
// assigned by the scene before the first follow.
func NewMapCamera() *MapCamera { return &MapCamera{} }

// Offset returns the camera's current pixel offset, truncated to whole
// pixels so tiles and sprites land on the same raster.
func (c *MapCamera) Offset() Vec2 {
	return Vec2{math.Trunc(c.x), math.Trunc(c.y)}
}

// SetMapSize assigns the map bounds in pixels and re-clamps the offset.
func (c *MapCamera) SetMapSize(width, height int) {
	c.mapW, c.mapH = width, height
	c.x, c.y = c.clamp(c.x, c.y)
}

// SetViewSize assigns the viewport size in pixels and re-clamps the offset.
func (c *MapCamera) SetViewSize(width, height int) {
	c.viewW, c.viewH = width, height
	c.x, c.y = c.clamp(c.x, c.y)
}

// Pan shifts the camera by a delta that persists across frames, on top of
// whatever target the camera follows.
func (c *MapCamera) Pan(dx, dy float64) {
	c.panX += dx
	c.panY += dy
	c.x, c.y = c.clamp(c.x+dx, c.y+dy)
}

// PanRoute queues a sequence of pan deltas. One delta is consumed per update
// frame and then discarded, so a route plays out over len(deltas) frames
// rather than landing all at once.
func (c *MapCamera) PanRoute(deltas []Vec2) {
	c.panQueue = append(c.panQueue, deltas...)
}

// ScrollTo tweens the manual pan to the given absolute offset over duration
// seconds. The tween runs during Update and composes with Follow like any
// other pan.
func (c *MapCamera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.panX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.panY), float32(y), duration, easeFn),
	}
}

// Update advances queued pan deltas and any active scroll tween. Called once
// per frame by the scene, before Follow.
func (c *MapCamera) Update(dt float64) {
	if len(c.panQueue) > 0 {
		delta := c.panQueue[0]
		c.panQueue = c.panQueue[1:]
		c.Pan(delta.X, delta.Y)
	}

	if c.scroll != nil {
		if !c.scroll.doneX {
			val, done := c.scroll.tweenX.Update(float32(dt))
			c.panX = float64(val)
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			val, done := c.scroll.tweenY.Update(float32(dt))
			c.panY = float64(val)
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}
}

// Follow recenters the camera over the target hitbox: its center minus half
// the viewport, plus the manual pan, clamped to the map.
func (c *MapCamera) Follow(target Rect) {
	if c.viewW == 0 && c.viewH == 0 {
		return
	}
	center := target.Center()
	x := center.X - float64(c.viewW)/2 + c.panX
	y := center.Y - float64(c.viewH)/2 + c.panY
	c.x, c.y = c.clamp(x, y)
}

// clamp restricts an offset to [0, map − view] per axis. A map smaller than
// the viewport pins that axis to 0; the clamp range is never negative.
func (c *MapCamera) clamp(x, y float64) (float64, float64) {
	maxX := math.Max(float64(c.mapW-c.viewW), 0)
	maxY := math.Max(float64(c.mapH-c.viewH), 0)
	return math.Min(math.Max(x, 0), maxX), math.Min(math.Max(y, 0), maxY)
}
