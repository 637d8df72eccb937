// Package ebitenbackend implements rowan's Renderer, EventSource, and
// TimeSource capabilities on top of [Ebitengine].
//
// Ebiten owns the outer frame loop, so instead of rowan's GameLoop.Run the
// bridge type [Game] replays the same per-frame sequence across ebiten's
// Update/Draw split: events and simulation in Update, scene drawing in Draw.
//
// [Ebitengine]: https://ebitengine.org
package ebitenbackend

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/rowan"
)

// Renderer draws rowan scenes onto the ebiten screen. Image refs resolve
// against a registry filled by RegisterImage; unknown refs skip drawing,
// matching the core's missing-cell policy.
type Renderer struct {
	screen *ebiten.Image
	images map[rowan.ImageRef]*ebiten.Image
	width  int
	height int
}

// NewRenderer creates a renderer with a fixed logical viewport size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		images: make(map[rowan.ImageRef]*ebiten.Image),
		width:  width,
		height: height,
	}
}

// RegisterImage binds an opaque image ref to a loaded ebiten image.
func (r *Renderer) RegisterImage(ref rowan.ImageRef, img *ebiten.Image) {
	r.images[ref] = img
}

// ViewportSize returns the logical screen size in pixels.
func (r *Renderer) ViewportSize() (width, height int) { return r.width, r.height }

// Clear fills the screen with a solid color.
func (r *Renderer) Clear(c rowan.Color) {
	if r.screen != nil {
		r.screen.Fill(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	}
}

// DrawTile blits a sub-rectangle of the referenced image at dest.
func (r *Renderer) DrawTile(ref rowan.ImageRef, src rowan.Rect, dest rowan.Vec2) {
	r.blit(ref, src, dest)
}

// DrawSpriteFrame blits a sprite frame; identical to DrawTile here, the
// distinction exists for backends that batch terrain separately.
func (r *Renderer) DrawSpriteFrame(ref rowan.ImageRef, src rowan.Rect, dest rowan.Vec2) {
	r.blit(ref, src, dest)
}

func (r *Renderer) blit(ref rowan.ImageRef, src rowan.Rect, dest rowan.Vec2) {
	if r.screen == nil {
		return
	}
	img, ok := r.images[ref]
	if !ok {
		return
	}
	sub := img.SubImage(image.Rect(
		int(src.X), int(src.Y),
		int(src.X+src.Width), int(src.Y+src.Height),
	)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(dest.X, dest.Y)
	r.screen.DrawImage(sub, op)
}

// DrawRectOutline strokes an unfilled rectangle (debug overlays).
func (r *Renderer) DrawRectOutline(c rowan.Color, rect rowan.Rect) {
	if r.screen == nil {
		return
	}
	vector.StrokeRect(r.screen,
		float32(rect.X), float32(rect.Y),
		float32(rect.Width), float32(rect.Height),
		1, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, false)
}

// Present is a no-op: ebiten flips the frame itself after Draw returns.
func (r *Renderer) Present() {}

// keyBindings maps ebiten keys to rowan's logical keys. Arrows and WASD both
// steer; Enter and Space both interact.
var keyBindings = map[ebiten.Key]rowan.Key{
	ebiten.KeyArrowUp:    rowan.KeyUp,
	ebiten.KeyArrowDown:  rowan.KeyDown,
	ebiten.KeyArrowLeft:  rowan.KeyLeft,
	ebiten.KeyArrowRight: rowan.KeyRight,
	ebiten.KeyW:          rowan.KeyUp,
	ebiten.KeyS:          rowan.KeyDown,
	ebiten.KeyA:          rowan.KeyLeft,
	ebiten.KeyD:          rowan.KeyRight,
	ebiten.KeyEnter:      rowan.KeyEnter,
	ebiten.KeySpace:      rowan.KeyEnter,
}

// Events translates ebiten's keyboard state into rowan key transitions.
type Events struct {
	batch []rowan.InputEvent
}

// NewEvents creates the keyboard event source.
func NewEvents() *Events { return &Events{} }

// Poll returns the key transitions since the last tick. Escape emits a quit
// event.
func (e *Events) Poll() []rowan.InputEvent {
	e.batch = e.batch[:0]
	for ebitenKey, key := range keyBindings {
		if inpututil.IsKeyJustPressed(ebitenKey) {
			e.batch = append(e.batch, rowan.InputEvent{Kind: rowan.EventKeyDown, Key: key})
		}
		if inpututil.IsKeyJustReleased(ebitenKey) {
			e.batch = append(e.batch, rowan.InputEvent{Kind: rowan.EventKeyUp, Key: key})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		e.batch = append(e.batch, rowan.InputEvent{Kind: rowan.EventQuit})
	}
	return e.batch
}

// Clock reports ebiten's fixed simulation timestep: 1/TPS seconds per tick,
// the delta every scene update advances by under this backend.
type Clock struct{}

// Tick returns the fixed per-tick delta.
func (Clock) Tick() float64 { return 1.0 / float64(ebiten.TPS()) }

// Game bridges a rowan SceneManager into ebiten.RunGame. Update polls
// events, checks exit, and advances the scene; Draw renders it. The ordering
// guarantees match rowan.GameLoop: events before update, update before
// render, every frame presented.
type Game struct {
	manager  *rowan.SceneManager
	renderer *Renderer
	events   rowan.EventSource
	clock    rowan.TimeSource
	quit     bool

	showFPS    bool
	fpsText    string
	fpsElapsed float64
}

// NewGame wires a scene manager to this backend's adapters.
func NewGame(manager *rowan.SceneManager, renderer *Renderer) *Game {
	return &Game{
		manager:  manager,
		renderer: renderer,
		events:   NewEvents(),
		clock:    Clock{},
	}
}

// Update runs the event and simulation half of the frame. It returns
// ebiten.Termination when a quit event arrived or the active scene requested
// exit; a scene update error propagates as-is and terminates RunGame.
func (g *Game) Update() error {
	batch := g.events.Poll()
	for _, event := range batch {
		if event.Kind == rowan.EventQuit {
			g.quit = true
		}
	}
	g.manager.HandleEvents(batch)

	if g.quit || g.manager.ShouldExit() {
		return ebiten.Termination
	}
	return g.manager.Update(g.clock.Tick())
}

// Draw renders the active scene to the ebiten screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.screen = screen
	g.manager.Render(g.renderer)
	g.renderer.Present()
	if g.showFPS {
		g.drawFPS(screen)
	}
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.width, g.renderer.height
}

// Run opens a window and drives the scene manager until exit.
func Run(title string, manager *rowan.SceneManager, renderer *Renderer) error {
	ebiten.SetWindowSize(renderer.width, renderer.height)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(NewGame(manager, renderer)); err != nil {
		return fmt.Errorf("ebitenbackend: %w", err)
	}
	return nil
}
