// Package rowan is a backend-agnostic runtime for tile-based 2D games.
//
// Rowan provides the frame loop, scene lifecycle, tilemap rendering
// coordination, axis-aligned tile collision, sprite animation, a clamped
// follow camera, and waypoint-driven NPC movement. It renders and polls
// input through small capability interfaces ([Renderer], [EventSource],
// [TimeSource]) so the same scene logic runs under a graphical backend, a
// terminal, or a deterministic test stub.
//
// # Quick start
//
// Assemble a [MapScene] from a visual [TilemapLayer], a collision
// [Tilemap], a player sprite, and any NPC controllers, then drive it with a
// [GameLoop]:
//
//	visual, err := rowan.NewTilemapLayer(tileset, tiles, nil)
//	// ...
//	scene, err := rowan.NewMapScene(rowan.MapSceneConfig{
//		Visual:    visual,
//		Collision: rowan.NewTileCollisionDetector(collision),
//		Player:    player,
//	})
//	// ...
//	manager := rowan.NewSceneManager(scene, rowan.Config{})
//	loop := rowan.NewGameLoop(manager, renderer, events, clock)
//	err = loop.Run()
//
// Backends live in subpackages: rowan/ebitenbackend for Ebitengine windows
// and rowan/tcellbackend for terminal rendering. Under a backend that owns
// its own frame loop (ebiten), use [GameLoop.Step] instead of [GameLoop.Run].
//
// # Coordinate model
//
// The world is measured in pixels with the origin at the top-left and Y
// increasing downward. Tiles are fixed-size grid cells addressed by integer
// id into a tileset; a tile occupies the half-open interval
// [col*w, (col+1)*w) on each axis, so a rectangle flush against a boundary
// belongs to the tile it is entering.
package rowan
