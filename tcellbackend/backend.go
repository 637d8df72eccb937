// Package tcellbackend implements rowan's Renderer, EventSource, and
// TimeSource capabilities on a terminal via [tcell]. Tiles and sprite frames
// render as colored cells, with colors derived from the image ref and source
// rectangle so each tileset cell keeps a stable hue. It exists as a debug
// view and as proof the capability contracts carry a non-graphical adapter.
//
// [tcell]: https://github.com/gdamore/tcell
package tcellbackend

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/rowan"
)

// PixelsPerCell maps world pixels onto terminal cells. One tile rendered at
// 16px with the default scale covers a 2x2 cell block.
const defaultPixelsPerCell = 8

// Backend bundles the terminal renderer, event source, and clock over a
// single tcell screen. Create with Init, release with Fini.
type Backend struct {
	screen   tcell.Screen
	events   chan rowan.InputEvent
	batch    []rowan.InputEvent
	releases []rowan.InputEvent

	// PixelsPerCell is the world-to-cell scale. Defaults to 8.
	PixelsPerCell int
}

// Init opens and takes over the terminal.
func Init() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcellbackend: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tcellbackend: %w", err)
	}
	b := &Backend{
		screen:        screen,
		events:        make(chan rowan.InputEvent, 64),
		PixelsPerCell: defaultPixelsPerCell,
	}
	go b.pumpEvents()
	return b, nil
}

// Fini restores the terminal.
func (b *Backend) Fini() { b.screen.Fini() }

// pumpEvents converts blocking tcell events into buffered rowan events so
// Poll stays non-blocking. tcell reports no key-up; Poll synthesizes the
// release on the following frame, so each keystroke moves the player one
// impulse instead of continuously.
func (b *Backend) pumpEvents() {
	for {
		event := b.screen.PollEvent()
		if event == nil {
			return
		}
		keyEvent, ok := event.(*tcell.EventKey)
		if !ok {
			continue
		}

		var key rowan.Key
		switch keyEvent.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			b.push(rowan.InputEvent{Kind: rowan.EventQuit})
			continue
		case tcell.KeyUp:
			key = rowan.KeyUp
		case tcell.KeyDown:
			key = rowan.KeyDown
		case tcell.KeyLeft:
			key = rowan.KeyLeft
		case tcell.KeyRight:
			key = rowan.KeyRight
		case tcell.KeyEnter:
			key = rowan.KeyEnter
		case tcell.KeyRune:
			switch keyEvent.Rune() {
			case 'w':
				key = rowan.KeyUp
			case 's':
				key = rowan.KeyDown
			case 'a':
				key = rowan.KeyLeft
			case 'd':
				key = rowan.KeyRight
			case 'q':
				b.push(rowan.InputEvent{Kind: rowan.EventQuit})
				continue
			default:
				continue
			}
		default:
			continue
		}
		b.push(rowan.InputEvent{Kind: rowan.EventKeyDown, Key: key})
	}
}

func (b *Backend) push(event rowan.InputEvent) {
	select {
	case b.events <- event:
	default: // drop when the sim stalls; input is best-effort
	}
}

// Poll drains the buffered events without blocking. Key presses collected
// this frame are released on the next one.
func (b *Backend) Poll() []rowan.InputEvent {
	b.batch = append(b.batch[:0], b.releases...)
	b.releases = b.releases[:0]
	for {
		select {
		case event := <-b.events:
			b.batch = append(b.batch, event)
			if event.Kind == rowan.EventKeyDown {
				b.releases = append(b.releases, rowan.InputEvent{Kind: rowan.EventKeyUp, Key: event.Key})
			}
		default:
			return b.batch
		}
	}
}

// ViewportSize reports the terminal size scaled to world pixels.
func (b *Backend) ViewportSize() (width, height int) {
	cols, rows := b.screen.Size()
	return cols * b.PixelsPerCell, rows * b.PixelsPerCell
}

// Clear fills the terminal with the color.
func (b *Backend) Clear(c rowan.Color) {
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	b.screen.Fill(' ', style)
}

// DrawTile paints the tile's footprint as shaded cells colored by its
// source rectangle.
func (b *Backend) DrawTile(ref rowan.ImageRef, src rowan.Rect, dest rowan.Vec2) {
	b.fillCells(ref, src, dest, '▒')
}

// DrawSpriteFrame paints a sprite's footprint as solid cells.
func (b *Backend) DrawSpriteFrame(ref rowan.ImageRef, src rowan.Rect, dest rowan.Vec2) {
	b.fillCells(ref, src, dest, '█')
}

func (b *Backend) fillCells(ref rowan.ImageRef, src rowan.Rect, dest rowan.Vec2, glyph rune) {
	style := tcell.StyleDefault.Foreground(cellColor(ref, src))
	startX := int(dest.X) / b.PixelsPerCell
	startY := int(dest.Y) / b.PixelsPerCell
	cellsW := max(int(src.Width)/b.PixelsPerCell, 1)
	cellsH := max(int(src.Height)/b.PixelsPerCell, 1)
	for y := startY; y < startY+cellsH; y++ {
		for x := startX; x < startX+cellsW; x++ {
			b.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

// DrawRectOutline marks the rectangle's corner cells (debug overlays are
// coarse at terminal resolution).
func (b *Backend) DrawRectOutline(c rowan.Color, rect rowan.Rect) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	x0 := int(rect.X) / b.PixelsPerCell
	y0 := int(rect.Y) / b.PixelsPerCell
	x1 := int(rect.X+rect.Width) / b.PixelsPerCell
	y1 := int(rect.Y+rect.Height) / b.PixelsPerCell
	for _, corner := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		b.screen.SetContent(corner[0], corner[1], '+', nil, style)
	}
}

// Present flushes the cell buffer to the terminal.
func (b *Backend) Present() { b.screen.Show() }

// cellColor derives a stable color from an image ref and source rectangle,
// so every tileset cell renders with its own hue.
func cellColor(ref rowan.ImageRef, src rowan.Rect) tcell.Color {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%d:%d", ref, int(src.X), int(src.Y))
	sum := h.Sum32()
	r := int32(80 + sum%160)
	g := int32(80 + (sum>>8)%160)
	bl := int32(80 + (sum>>16)%160)
	return tcell.NewRGBColor(r, g, bl)
}

// Clock is a frame-limiting TimeSource: Tick sleeps out the remainder of the
// frame budget and returns the real elapsed time, like a classic fixed-FPS
// game clock.
type Clock struct {
	// TargetFPS caps the frame rate. Zero means uncapped.
	TargetFPS int

	last time.Time
}

// Tick returns the seconds since the previous Tick, first sleeping to hold
// the target frame rate. The first call returns 0.
func (c *Clock) Tick() float64 {
	now := time.Now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	if c.TargetFPS > 0 {
		budget := time.Second / time.Duration(c.TargetFPS)
		if elapsed := now.Sub(c.last); elapsed < budget {
			time.Sleep(budget - elapsed)
			now = time.Now()
		}
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return dt
}
