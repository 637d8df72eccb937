package rowan

// ImageRef is an opaque identifier for an image asset. The core never loads
// or inspects image data; backends resolve refs against their own registry
// (for example a name to *ebiten.Image map).
type ImageRef string

// Renderer is the drawing capability a backend supplies to the core. All
// calls are expected to be non-blocking; Present flips the finished frame.
type Renderer interface {
	// ViewportSize returns the drawable area in pixels.
	ViewportSize() (width, height int)
	// Clear fills the whole viewport with a solid color.
	Clear(color Color)
	// DrawTile blits the source rectangle of the referenced image with its
	// top-left corner at dest (screen pixels).
	DrawTile(image ImageRef, source Rect, dest Vec2)
	// DrawSpriteFrame blits one sprite frame. Backends may treat it exactly
	// like DrawTile; it exists so adapters can batch or layer sprites apart
	// from terrain.
	DrawSpriteFrame(image ImageRef, source Rect, dest Vec2)
	// DrawRectOutline draws an unfilled rectangle. Used only by debug
	// overlays.
	DrawRectOutline(color Color, rect Rect)
	// Present displays the completed frame.
	Present()
}

// EventSource supplies the input events that arrived since the last poll.
// The returned slice is drained once per frame and owned by the caller until
// the next Poll.
type EventSource interface {
	Poll() []InputEvent
}

// TimeSource measures frame-to-frame elapsed time.
type TimeSource interface {
	// Tick returns the seconds elapsed since the previous Tick. Backends
	// must never return a negative value.
	Tick() float64
}

// CollisionDetector answers whether a world-space rectangle overlaps
// impassable terrain.
type CollisionDetector interface {
	// Collides reports whether the hitbox overlaps blocked space or leaves
	// the collidable area.
	Collides(hitbox Rect) bool
	// PixelSize is the total size of the collidable map in pixels. Map
	// scenes use it to derive movement bounds.
	PixelSize() (width, height int)
}

// Drawable is anything that can render itself relative to a camera offset.
// TilemapLayer implements it; a collision source may implement it too, in
// which case MapScene draws it above the visual layer.
type Drawable interface {
	Render(renderer Renderer, cameraOffset Vec2)
}
