package ebitenbackend

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// SetShowFPS toggles a frame-rate readout in the top-left corner, refreshed
// every half second.
func (g *Game) SetShowFPS(show bool) { g.showFPS = show }

// drawFPS renders the cached FPS/TPS line. Sampling is throttled so the text
// is readable instead of flickering per frame.
func (g *Game) drawFPS(screen *ebiten.Image) {
	g.fpsElapsed += 1.0 / float64(ebiten.TPS())
	if g.fpsText == "" || g.fpsElapsed >= 0.5 {
		g.fpsElapsed = 0
		g.fpsText = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	ebitenutil.DebugPrint(screen, g.fpsText)
}
