package rowan

import (
	"fmt"
	"math"
)

// Animation action and direction names. Animations is keyed by these, but
// any string works — sprites only look up what their sheet declares.
const (
	ActionIdle = "idle"
	ActionWalk = "walk"

	DirUp    = "up"
	DirDown  = "down"
	DirLeft  = "left"
	DirRight = "right"
)

// AnimationMap maps an action name to a direction name to the ordered frame
// indices composing the animation.
type AnimationMap map[string]map[string][]int

// defaultHitboxScale is the fraction of the frame used for collision when no
// explicit hitbox is set. A sub-frame box centered on the sprite keeps
// collisions fair for frames with transparent borders.
const defaultHitboxScale = 0.75

// SpriteSheetDescriptor describes how to slice a spritesheet image. Frames
// are equally sized and counted in row-major order, like tileset ids.
type SpriteSheetDescriptor struct {
	Image       ImageRef
	FrameWidth  int
	FrameHeight int
	Columns     int
	// FrameCount is the sheet's total frame count, used to validate
	// animation tables. Zero means unknown (no validation possible).
	FrameCount int
	Animations AnimationMap
}

// NewSpriteSheetDescriptor validates sheet geometry and the animation table.
// An animation referencing a frame index outside the sheet fails here rather
// than rendering garbage mid-game.
func NewSpriteSheetDescriptor(image ImageRef, frameWidth, frameHeight, columns, frameCount int, animations AnimationMap) (SpriteSheetDescriptor, error) {
	if frameWidth <= 0 || frameHeight <= 0 {
		return SpriteSheetDescriptor{}, fmt.Errorf("rowan: spritesheet frame size %dx%d must be positive", frameWidth, frameHeight)
	}
	if columns < 1 {
		return SpriteSheetDescriptor{}, fmt.Errorf("rowan: spritesheet needs at least 1 column, got %d", columns)
	}
	for action, directions := range animations {
		for direction, frames := range directions {
			for _, frame := range frames {
				if frame < 0 || (frameCount > 0 && frame >= frameCount) {
					return SpriteSheetDescriptor{}, fmt.Errorf(
						"rowan: animation %s/%s frame %d outside sheet of %d frames",
						action, direction, frame, frameCount)
				}
			}
		}
	}
	return SpriteSheetDescriptor{
		Image:       image,
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		Columns:     columns,
		FrameCount:  frameCount,
		Animations:  animations,
	}, nil
}

// defaultAnimationFrames is the single-frame idle/down timeline assumed for
// sheets declared without an animation table.
var defaultAnimationFrames = []int{0}

// frames returns the frame sequence for an action/direction pair. A sheet
// with no animation table gets a one-frame idle/down default; any other
// missing entry yields nil and the sprite draws nothing for that state.
func (s SpriteSheetDescriptor) frames(action, direction string) []int {
	if len(s.Animations) == 0 {
		if action == ActionIdle && direction == DirDown {
			return defaultAnimationFrames
		}
		return nil
	}
	if directions, ok := s.Animations[action]; ok {
		if frames, ok := directions[direction]; ok {
			return frames
		}
	}
	return nil
}

// frameSourceRect returns the image region for a frame index.
func (s SpriteSheetDescriptor) frameSourceRect(frame int) Rect {
	row := frame / s.Columns
	col := frame % s.Columns
	return Rect{
		X:      float64(col * s.FrameWidth),
		Y:      float64(row * s.FrameHeight),
		Width:  float64(s.FrameWidth),
		Height: float64(s.FrameHeight),
	}
}

// CharacterSprite is a collision-aware, animated map entity. It holds the
// state every sprite kind shares: position, velocity, animation timeline,
// hitbox, and map bounds. PCMapSprite and NPCMapSprite differ only in where
// their velocity comes from.
type CharacterSprite struct {
	Sheet SpriteSheetDescriptor
	// X, Y is the sprite's top-left corner in world pixels.
	X, Y float64
	// Velocity in pixels per second. Written by input or a controller each
	// tick; integrated by Update.
	Velocity Vec2
	// Speed is the sprite's movement rate in pixels per second.
	Speed float64
	// FrameDuration is the fixed time each animation frame is shown.
	FrameDuration float64

	action       string
	direction    string
	facing       string
	frameIndex   int
	frameElapsed float64

	hitboxSize   Vec2 // zero means the default sub-frame box
	hitboxOffset Vec2

	boundsW, boundsH int // map bounds in pixels, 0 = unbounded
	collision        CollisionDetector
	colliders        func() []Rect // hitboxes of other blocking sprites
	blocked          bool
}

// NewCharacterSprite creates a sprite at the origin with the default walking
// speed and frame timing.
func NewCharacterSprite(sheet SpriteSheetDescriptor) *CharacterSprite {
	return &CharacterSprite{
		Sheet:         sheet,
		Speed:         120,
		FrameDuration: 0.12,
		action:        ActionIdle,
		direction:     DirDown,
		facing:        DirDown,
	}
}

// SetMapBounds assigns the movement bounds in pixels. Positions clamp to
// [0, bounds − frame size] on each axis.
func (c *CharacterSprite) SetMapBounds(width, height int) {
	c.boundsW, c.boundsH = width, height
}

// SetCollisionDetector assigns the terrain hit test consulted during moves.
func (c *CharacterSprite) SetCollisionDetector(detector CollisionDetector) {
	c.collision = detector
}

// SetColliders supplies the hitboxes of other sprites this one must not
// walk through. Re-evaluated on every collision query; the callback must
// not include this sprite's own hitbox.
func (c *CharacterSprite) SetColliders(colliders func() []Rect) {
	c.colliders = colliders
}

// SetHitbox overrides the default collision box. size is the box dimensions
// and offset shifts it from the sprite's top-left corner.
func (c *CharacterSprite) SetHitbox(size, offset Vec2) {
	c.hitboxSize = size
	c.hitboxOffset = offset
}

// Hitbox returns the sprite's current collision rectangle.
func (c *CharacterSprite) Hitbox() Rect { return c.HitboxAt(c.X, c.Y) }

// HitboxAt returns the collision rectangle the sprite would have if anchored
// at (x, y).
func (c *CharacterSprite) HitboxAt(x, y float64) Rect {
	fw := float64(c.Sheet.FrameWidth)
	fh := float64(c.Sheet.FrameHeight)
	if c.hitboxSize == (Vec2{}) {
		w := fw * defaultHitboxScale
		h := fh * defaultHitboxScale
		offset := c.hitboxOffset
		if offset == (Vec2{}) {
			offset = Vec2{(fw - w) / 2, (fh - h) / 2}
		}
		return Rect{X: x + offset.X, Y: y + offset.Y, Width: w, Height: h}
	}
	return Rect{
		X:      x + c.hitboxOffset.X,
		Y:      y + c.hitboxOffset.Y,
		Width:  c.hitboxSize.X,
		Height: c.hitboxSize.Y,
	}
}

// Facing returns the direction the sprite last moved toward.
func (c *CharacterSprite) Facing() string { return c.facing }

// Blocked reports whether the last Update had a movement attempt stopped by
// a collision on either axis.
func (c *CharacterSprite) Blocked() bool { return c.blocked }

// AnimationState returns the current action, direction, and frame index.
func (c *CharacterSprite) AnimationState() (action, direction string, frame int) {
	return c.action, c.direction, c.frameIndex
}

// SetAnimationState switches the animation, restarting the timeline when the
// state actually changes.
func (c *CharacterSprite) SetAnimationState(action, direction string) {
	if action == c.action && direction == c.direction {
		return
	}
	c.action = action
	c.direction = direction
	c.frameIndex = 0
	c.frameElapsed = 0
}

// RenderOrderY is the depth sort key: the world Y of the sprite's feet.
func (c *CharacterSprite) RenderOrderY() float64 {
	return c.Y + float64(c.Sheet.FrameHeight)
}

// Update integrates velocity with per-axis collision resolution, then
// advances the animation timeline by dt seconds.
func (c *CharacterSprite) Update(dt float64) {
	c.integrateVelocity(dt)

	if c.Velocity != (Vec2{}) {
		c.facing = c.directionFromVelocity()
		c.SetAnimationState(ActionWalk, c.facing)
	} else {
		c.SetAnimationState(ActionIdle, c.facing)
	}

	frames := c.Sheet.frames(c.action, c.direction)
	if len(frames) == 0 {
		return
	}
	c.frameElapsed += dt
	for c.frameElapsed >= c.FrameDuration {
		c.frameElapsed -= c.FrameDuration
		c.frameIndex = (c.frameIndex + 1) % len(frames)
	}
}

// Render draws the current animation frame, translated by the camera offset.
// Sprites with no frames for their state draw nothing.
func (c *CharacterSprite) Render(renderer Renderer, cameraOffset Vec2) {
	frames := c.Sheet.frames(c.action, c.direction)
	if len(frames) == 0 {
		return
	}
	src := c.Sheet.frameSourceRect(frames[c.frameIndex])
	dest := Vec2{c.X - cameraOffset.X, c.Y - cameraOffset.Y}
	renderer.DrawSpriteFrame(c.Sheet.Image, src, dest)
}

// integrateVelocity moves the sprite by velocity*dt, resolving each axis
// independently so a collision on one axis still lets the sprite slide along
// the other.
func (c *CharacterSprite) integrateVelocity(dt float64) {
	c.blocked = false
	if dt <= 0 || c.Velocity == (Vec2{}) {
		return
	}
	targetX := c.X + c.Velocity.X*dt
	targetY := c.Y + c.Velocity.Y*dt

	clamped := c.clampAxis(targetX, float64(c.Sheet.FrameWidth), c.boundsW)
	if !c.collidesAt(clamped, c.Y) {
		c.X = clamped
	} else {
		c.blocked = true
	}

	clamped = c.clampAxis(targetY, float64(c.Sheet.FrameHeight), c.boundsH)
	if !c.collidesAt(c.X, clamped) {
		c.Y = clamped
	} else {
		c.blocked = true
	}
}

func (c *CharacterSprite) clampAxis(proposed, size float64, bound int) float64 {
	if bound <= 0 {
		return proposed
	}
	limit := math.Max(float64(bound)-size, 0)
	return math.Max(0, math.Min(proposed, limit))
}

func (c *CharacterSprite) collidesAt(x, y float64) bool {
	hitbox := c.HitboxAt(x, y)
	if c.collision != nil && c.collision.Collides(hitbox) {
		return true
	}
	if c.colliders != nil {
		for _, other := range c.colliders() {
			if hitbox.Intersects(other) {
				return true
			}
		}
	}
	return false
}

// directionFromVelocity picks the facing from the dominant velocity axis,
// keeping the previous facing for a pure tie at zero.
func (c *CharacterSprite) directionFromVelocity() string {
	dx, dy := c.Velocity.X, c.Velocity.Y
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return DirRight
		}
		return DirLeft
	}
	if dy > 0 {
		return DirDown
	}
	if dy < 0 {
		return DirUp
	}
	return c.facing
}

// PCMapSprite is the player-controlled sprite: its velocity is rebuilt from
// the live pressed-key set each frame. It is polled, not pushed — the sprite
// holds no input state of its own.
type PCMapSprite struct {
	CharacterSprite
}

// NewPCMapSprite creates a player sprite.
func NewPCMapSprite(sheet SpriteSheetDescriptor) *PCMapSprite {
	return &PCMapSprite{CharacterSprite: *NewCharacterSprite(sheet)}
}

// HandleInput maps the pressed directional keys to a velocity vector.
// Simultaneous directions combine without magnitude normalization: diagonal
// movement runs at full speed on both axes.
func (p *PCMapSprite) HandleInput(pressed map[Key]bool) {
	var dx, dy float64
	if pressed[KeyLeft] {
		dx--
	}
	if pressed[KeyRight] {
		dx++
	}
	if pressed[KeyUp] {
		dy--
	}
	if pressed[KeyDown] {
		dy++
	}
	p.Velocity = Vec2{dx * p.Speed, dy * p.Speed}
	if dx != 0 || dy != 0 {
		p.facing = p.directionFromVelocity()
	}
}

// NPCMapSprite is a sprite whose velocity is written by an NPCController.
// It never sees input.
type NPCMapSprite struct {
	CharacterSprite
}

// NewNPCMapSprite creates an NPC sprite.
func NewNPCMapSprite(sheet SpriteSheetDescriptor) *NPCMapSprite {
	return &NPCMapSprite{CharacterSprite: *NewCharacterSprite(sheet)}
}
