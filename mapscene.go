package rowan

import (
	"fmt"
	"math"
	"sort"
)

// TileCoord addresses one grid cell as (row, column).
type TileCoord struct {
	Row, Col int
}

// CoordinateHandler runs when the player's feet enter a watched tile.
type CoordinateHandler func(scene *MapScene, tile TileCoord)

// tileSizer is implemented by layers and detectors that know their tile
// dimensions. MapScene probes for it to resolve coordinate triggers.
type tileSizer interface {
	TileSize() (width, height int)
}

// MapSceneConfig is the assembly input for a MapScene. Visual and Collision
// come from parsed map data; the builder layer that produces them lives
// outside the core.
type MapSceneConfig struct {
	// Visual is the terrain layer, drawn first.
	Visual Drawable
	// Object is an optional prop layer whose tiles depth-sort against
	// sprites by their bottom edge.
	Object *TilemapLayer
	// Collision answers movement queries and defines the map bounds. If it
	// also implements Drawable it is drawn above the visual layer.
	Collision CollisionDetector
	// Player is the input-driven sprite. Required.
	Player *PCMapSprite
	// Controllers drive the scene's NPC sprites.
	Controllers []*NPCController
	// Background fills the frame before terrain.
	Background Color
	// OnCoordinate maps watched tiles to handlers fired when the player's
	// feet enter them.
	OnCoordinate map[TileCoord]CoordinateHandler
}

// MapScene is the playable tile-world scene: it owns the tilemap layers, the
// player, the NPC controllers and their sprites, and the camera, and it runs
// the per-frame movement → collision → animation → camera sequence.
type MapScene struct {
	SceneBase

	visual      Drawable
	object      *TilemapLayer
	collision   CollisionDetector
	player      *PCMapSprite
	controllers []*NPCController
	npcs        []*NPCMapSprite
	camera      *MapCamera
	background  Color

	config       Config
	pressed      map[Key]bool
	onCoordinate map[TileCoord]CoordinateHandler
	lastTile     TileCoord
	hasLastTile  bool
}

// NewMapScene wires the scene together: map bounds are derived once from the
// collision source's pixel size and pushed to every sprite, and sprites are
// registered as each other's colliders so they cannot walk through one
// another.
func NewMapScene(cfg MapSceneConfig) (*MapScene, error) {
	if cfg.Visual == nil {
		return nil, fmt.Errorf("rowan: map scene needs a visual tilemap")
	}
	if cfg.Collision == nil {
		return nil, fmt.Errorf("rowan: map scene needs a collision source")
	}
	if cfg.Player == nil {
		return nil, fmt.Errorf("rowan: map scene needs a player sprite")
	}

	s := &MapScene{
		visual:       cfg.Visual,
		object:       cfg.Object,
		collision:    cfg.Collision,
		player:       cfg.Player,
		controllers:  cfg.Controllers,
		camera:       NewMapCamera(),
		background:   cfg.Background,
		pressed:      make(map[Key]bool),
		onCoordinate: cfg.OnCoordinate,
	}
	for _, controller := range s.controllers {
		if npc := controller.Sprite(); npc != nil {
			s.npcs = append(s.npcs, npc)
		}
	}

	boundsW, boundsH := cfg.Collision.PixelSize()
	s.camera.SetMapSize(boundsW, boundsH)
	for _, sprite := range s.allSprites() {
		sprite.SetMapBounds(boundsW, boundsH)
		sprite.SetCollisionDetector(cfg.Collision)
	}
	s.wireSpriteColliders()
	return s, nil
}

// SetConfig receives the manager's shared configuration.
func (s *MapScene) SetConfig(config Config) { s.config = config }

// Camera exposes the scene's camera for panning.
func (s *MapScene) Camera() *MapCamera { return s.camera }

// Player returns the player sprite.
func (s *MapScene) Player() *PCMapSprite { return s.player }

// PanCamera adds a persistent manual pan on top of the follow target.
func (s *MapScene) PanCamera(dx, dy float64) { s.camera.Pan(dx, dy) }

// PanCameraRoute queues pan deltas consumed one per update frame; each is
// applied once and then discarded.
func (s *MapScene) PanCameraRoute(deltas []Vec2) { s.camera.PanRoute(deltas) }

// OnEnter resets NPC route progress.
func (s *MapScene) OnEnter() {
	for _, controller := range s.controllers {
		controller.OnEnter()
	}
}

// OnExit notifies the controllers.
func (s *MapScene) OnExit() {
	for _, controller := range s.controllers {
		controller.OnExit()
	}
}

// HandleEvents tracks key transitions and forwards the resulting pressed set
// to the player sprite only. An Enter press triggers interaction with the
// NPC the player faces, if any.
func (s *MapScene) HandleEvents(events []InputEvent) {
	interact := false
	for _, event := range events {
		switch event.Kind {
		case EventQuit:
			s.RequestExit()
		case EventKeyDown:
			s.pressed[event.Key] = true
			if event.Key == KeyEnter {
				interact = true
			}
		case EventKeyUp:
			delete(s.pressed, event.Key)
		}
	}
	s.player.HandleInput(s.pressed)
	if interact {
		if controller := s.facingController(); controller != nil {
			controller.Interact(s.player)
		}
	}
}

// Update runs one simulation tick: player movement with per-axis collision
// and bounds clamping, NPC controllers followed by the same movement
// sequence for their sprites, animation advance, coordinate triggers, and
// finally the camera.
func (s *MapScene) Update(dt float64) error {
	s.player.Update(dt)

	for _, controller := range s.controllers {
		controller.Update(dt, s.player)
	}
	for _, npc := range s.npcs {
		npc.Update(dt)
	}

	s.fireCoordinateTriggers()

	s.camera.Update(dt)
	s.camera.Follow(s.player.Hitbox())
	return nil
}

// Render draws the frame in fixed order: clear, visual terrain (culled to
// the camera window), drawable collision layer if the collision source is
// one, then object tiles and sprites depth-sorted by their bottom edge. The
// sort is stable with NPCs in insertion order and the player last on ties,
// so draw order is deterministic frame to frame.
func (s *MapScene) Render(renderer Renderer) {
	renderer.Clear(s.background)

	viewW, viewH := renderer.ViewportSize()
	s.camera.SetViewSize(viewW, viewH)
	s.camera.Follow(s.player.Hitbox())
	offset := s.camera.Offset()

	s.visual.Render(renderer, offset)
	if drawable, ok := s.collision.(Drawable); ok {
		drawable.Render(renderer, offset)
	}

	items := s.renderItems(viewW, viewH, offset)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].orderY < items[j].orderY
	})
	for _, item := range items {
		item.draw(renderer, offset)
	}

	if s.config.DebugCollision {
		s.renderCollisionDebug(renderer, offset)
	}
}

// renderItem pairs a depth key with a deferred draw call.
type renderItem struct {
	orderY float64
	draw   func(Renderer, Vec2)
}

// renderItems collects the visible object tiles and every sprite. Insertion
// order fixes ties: object tiles, NPCs, then the player.
func (s *MapScene) renderItems(viewW, viewH int, offset Vec2) []renderItem {
	var items []renderItem

	if s.object != nil {
		tw, th := s.object.TileSize()
		startCol, endCol := visibleRange(offset.X, viewW, tw, s.object.Columns())
		startRow, endRow := visibleRange(offset.Y, viewH, th, s.object.Rows())
		for row := startRow; row < endRow; row++ {
			for col := startCol; col < endCol; col++ {
				id := s.object.TileAt(row, col)
				if id < 0 {
					continue
				}
				src, ok := s.object.Tileset().SourceRect(id)
				if !ok {
					continue
				}
				cellOffset := s.object.OffsetAt(row, col)
				dest := Vec2{float64(col * tw), float64(row * th)}.Add(cellOffset)
				items = append(items, renderItem{
					orderY: dest.Y + float64(th),
					draw: func(r Renderer, camera Vec2) {
						r.DrawTile(s.object.Tileset().Image, src, Vec2{dest.X - camera.X, dest.Y - camera.Y})
					},
				})
			}
		}
	}

	for _, npc := range s.npcs {
		items = append(items, renderItem{orderY: npc.RenderOrderY(), draw: npc.Render})
	}
	items = append(items, renderItem{orderY: s.player.RenderOrderY(), draw: s.player.Render})
	return items
}

// renderCollisionDebug outlines sprite hitboxes, and impassable tiles when
// the collision source exposes its grid.
func (s *MapScene) renderCollisionDebug(renderer Renderer, offset Vec2) {
	const outline = 255
	debugColor := Color{R: outline}

	if detector, ok := s.collision.(*TileCollisionDetector); ok {
		m := detector.tilemap
		viewW, viewH := renderer.ViewportSize()
		startCol, endCol := visibleRange(offset.X, viewW, m.tileWidth, m.cols)
		startRow, endRow := visibleRange(offset.Y, viewH, m.tileHeight, m.rows)
		for row := startRow; row < endRow; row++ {
			for col := startCol; col < endCol; col++ {
				if !m.IsImpassable(row, col) {
					continue
				}
				renderer.DrawRectOutline(Color{R: outline, G: 165}, Rect{
					X:      float64(col*m.tileWidth) - offset.X,
					Y:      float64(row*m.tileHeight) - offset.Y,
					Width:  float64(m.tileWidth),
					Height: float64(m.tileHeight),
				})
			}
		}
	}

	for _, sprite := range s.allSprites() {
		hitbox := sprite.Hitbox()
		hitbox.X -= offset.X
		hitbox.Y -= offset.Y
		renderer.DrawRectOutline(debugColor, hitbox)
	}
}

// allSprites returns the player followed by the NPC sprites in insertion
// order. This is also the tie-break draw order, reversed.
func (s *MapScene) allSprites() []*CharacterSprite {
	sprites := make([]*CharacterSprite, 0, 1+len(s.npcs))
	sprites = append(sprites, &s.player.CharacterSprite)
	for _, npc := range s.npcs {
		sprites = append(sprites, &npc.CharacterSprite)
	}
	return sprites
}

// wireSpriteColliders registers every sprite's hitbox with every other
// sprite, so the player and NPCs block each other like terrain.
func (s *MapScene) wireSpriteColliders() {
	s.player.SetColliders(func() []Rect {
		boxes := make([]Rect, 0, len(s.npcs))
		for _, npc := range s.npcs {
			boxes = append(boxes, npc.Hitbox())
		}
		return boxes
	})
	for _, npc := range s.npcs {
		npc := npc
		npc.SetColliders(func() []Rect {
			boxes := make([]Rect, 0, len(s.npcs))
			boxes = append(boxes, s.player.Hitbox())
			for _, other := range s.npcs {
				if other != npc {
					boxes = append(boxes, other.Hitbox())
				}
			}
			return boxes
		})
	}
}

// facingController returns the controller whose NPC sits in the zone the
// player faces: a strip half a frame deep off the facing edge of the
// player's hitbox.
func (s *MapScene) facingController() *NPCController {
	hitbox := s.player.Hitbox()
	reach := math.Max(float64(s.player.Sheet.FrameWidth), float64(s.player.Sheet.FrameHeight)) / 2

	var zone Rect
	switch s.player.Facing() {
	case DirLeft:
		zone = Rect{X: hitbox.X - reach, Y: hitbox.Y, Width: reach, Height: hitbox.Height}
	case DirRight:
		zone = Rect{X: hitbox.X + hitbox.Width, Y: hitbox.Y, Width: reach, Height: hitbox.Height}
	case DirUp:
		zone = Rect{X: hitbox.X, Y: hitbox.Y - reach, Width: hitbox.Width, Height: reach}
	default:
		zone = Rect{X: hitbox.X, Y: hitbox.Y + hitbox.Height, Width: hitbox.Width, Height: reach}
	}

	for _, controller := range s.controllers {
		npc := controller.Sprite()
		if npc != nil && zone.Intersects(npc.Hitbox()) {
			return controller
		}
	}
	return nil
}

// fireCoordinateTriggers runs the handler for the tile under the player's
// feet when that tile changes. Feet are sampled at the hitbox's bottom
// center, nudged up so standing flush on a boundary counts as the tile the
// player is still in.
func (s *MapScene) fireCoordinateTriggers() {
	if len(s.onCoordinate) == 0 {
		return
	}
	sizer, ok := s.collision.(tileSizer)
	if !ok {
		if sizer, ok = s.visual.(tileSizer); !ok {
			return
		}
	}
	tw, th := sizer.TileSize()
	if tw <= 0 || th <= 0 {
		return
	}

	hitbox := s.player.Hitbox()
	sampleX := hitbox.X + hitbox.Width/2
	sampleY := math.Nextafter(hitbox.Y+hitbox.Height, math.Inf(-1))
	tile := TileCoord{Row: int(sampleY) / th, Col: int(sampleX) / tw}

	if s.hasLastTile && tile == s.lastTile {
		return
	}
	s.lastTile = tile
	s.hasLastTile = true
	if handler, ok := s.onCoordinate[tile]; ok {
		handler(s, tile)
	}
}
