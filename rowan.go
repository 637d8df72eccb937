package rowan

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Intersects reports whether r and other overlap with positive area.
// Rectangles that share only an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Key identifies a logical input key, independent of the backend's key codes.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
)

// EventKind distinguishes input event types delivered by an EventSource.
type EventKind uint8

const (
	EventKeyDown EventKind = iota // key pressed this frame
	EventKeyUp                    // key released this frame
	EventQuit                     // window close / interrupt
)

// InputEvent is a backend-agnostic input event. Key is meaningful for
// EventKeyDown and EventKeyUp.
type InputEvent struct {
	Kind EventKind
	Key  Key
}

// Color is an 8-bit RGB color used for clears and debug overlays.
type Color struct {
	R, G, B uint8
}

// Config carries feature flags shared across scenes via the SceneManager.
type Config struct {
	// DebugCollision draws impassable tiles and sprite hitboxes as outlines.
	DebugCollision bool
}
