package rowan

import (
	"fmt"
	"math"
)

// emptyTile marks a grid cell that draws nothing. Parsed visual maps use it
// for 0-valued (absent) input cells.
const emptyTile = -1

// TilemapLayer is a renderable grid of tile ids over a tileset. The grid
// shape is fixed at construction; cells change only by replacing the whole
// layer. An optional per-cell pixel offset nudges individual tiles (used for
// props that sit off the grid).
type TilemapLayer struct {
	tileset TilesetDescriptor
	tiles   [][]int
	offsets [][]Vec2 // nil when no cell is offset

	rows, cols int
}

// NewTilemapLayer validates the grid and builds a layer. Every row must have
// the same length; offsets, when given, must mirror the tile grid's shape.
func NewTilemapLayer(tileset TilesetDescriptor, tiles [][]int, offsets [][]Vec2) (*TilemapLayer, error) {
	rows, cols, err := gridShape(tiles)
	if err != nil {
		return nil, err
	}
	if offsets != nil {
		orows, ocols, err := offsetShape(offsets)
		if err != nil {
			return nil, err
		}
		if orows != rows || ocols != cols {
			return nil, fmt.Errorf("rowan: tile offsets are %dx%d, grid is %dx%d", orows, ocols, rows, cols)
		}
	}
	return &TilemapLayer{
		tileset: tileset,
		tiles:   tiles,
		offsets: offsets,
		rows:    rows,
		cols:    cols,
	}, nil
}

// Tileset returns the layer's tileset descriptor.
func (l *TilemapLayer) Tileset() TilesetDescriptor { return l.tileset }

// TileSize returns the tile dimensions in pixels.
func (l *TilemapLayer) TileSize() (width, height int) {
	return l.tileset.TileWidth, l.tileset.TileHeight
}

// PixelSize returns the layer's total size in pixels.
func (l *TilemapLayer) PixelSize() (width, height int) {
	return l.cols * l.tileset.TileWidth, l.rows * l.tileset.TileHeight
}

// Rows returns the grid height in cells.
func (l *TilemapLayer) Rows() int { return l.rows }

// Columns returns the grid width in cells.
func (l *TilemapLayer) Columns() int { return l.cols }

// OffsetAt returns the pixel offset for a cell, zero when the layer has no
// offsets or the cell is outside the grid.
func (l *TilemapLayer) OffsetAt(row, col int) Vec2 {
	if l.offsets == nil || row < 0 || col < 0 || row >= l.rows || col >= l.cols {
		return Vec2{}
	}
	return l.offsets[row][col]
}

// TileAt returns the id at (row, col), or emptyTile outside the grid.
func (l *TilemapLayer) TileAt(row, col int) int {
	if row < 0 || col < 0 || row >= l.rows || col >= l.cols {
		return emptyTile
	}
	return l.tiles[row][col]
}

// Render draws every tile whose destination intersects the camera window.
// Negative ids and ids without a tileset cell are skipped.
func (l *TilemapLayer) Render(renderer Renderer, cameraOffset Vec2) {
	tw, th := l.tileset.TileWidth, l.tileset.TileHeight
	viewW, viewH := renderer.ViewportSize()

	startCol, endCol := visibleRange(cameraOffset.X, viewW, tw, l.cols)
	startRow, endRow := visibleRange(cameraOffset.Y, viewH, th, l.rows)

	for row := startRow; row < endRow; row++ {
		for col := startCol; col < endCol; col++ {
			id := l.tiles[row][col]
			if id < 0 {
				continue
			}
			src, ok := l.tileset.SourceRect(id)
			if !ok {
				continue
			}
			dest := Vec2{
				X: float64(col*tw) - cameraOffset.X,
				Y: float64(row*th) - cameraOffset.Y,
			}
			if l.offsets != nil {
				dest = dest.Add(l.offsets[row][col])
			}
			renderer.DrawTile(l.tileset.Image, src, dest)
		}
	}
}

// visibleRange returns the half-open [start, end) cell range whose pixels
// intersect a camera window starting at offset.
func visibleRange(offset float64, view, cell, total int) (start, end int) {
	start = int(math.Floor(offset / float64(cell)))
	if start < 0 {
		start = 0
	}
	end = int(math.Ceil((offset + float64(view)) / float64(cell)))
	if end > total {
		end = total
	}
	return start, end
}

// Tilemap is the collision-side grid: tile ids plus the set of ids that
// block movement. It shares tile dimensions with the visual tileset so the
// two grids line up in pixel space.
type Tilemap struct {
	tiles      [][]int
	tileWidth  int
	tileHeight int
	impassable map[int]bool
	rows, cols int
}

// NewTilemap validates the grid shape and tile size and builds a collision
// tilemap. impassableIDs lists the blocking tile ids (typically just 1 for
// parsed 0/1 collision maps).
func NewTilemap(tiles [][]int, tileWidth, tileHeight int, impassableIDs ...int) (*Tilemap, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("rowan: tilemap tile size %dx%d must be positive", tileWidth, tileHeight)
	}
	rows, cols, err := gridShape(tiles)
	if err != nil {
		return nil, err
	}
	impassable := make(map[int]bool, len(impassableIDs))
	for _, id := range impassableIDs {
		impassable[id] = true
	}
	return &Tilemap{
		tiles:      tiles,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		impassable: impassable,
		rows:       rows,
		cols:       cols,
	}, nil
}

// PixelSize returns the map's total size in pixels.
func (m *Tilemap) PixelSize() (width, height int) {
	return m.cols * m.tileWidth, m.rows * m.tileHeight
}

// TileSize returns the tile dimensions in pixels.
func (m *Tilemap) TileSize() (width, height int) { return m.tileWidth, m.tileHeight }

// IsImpassable reports whether the tile at (row, col) blocks movement.
// Cells outside the grid block.
func (m *Tilemap) IsImpassable(row, col int) bool {
	if row < 0 || col < 0 || row >= m.rows || col >= m.cols {
		return true
	}
	return m.impassable[m.tiles[row][col]]
}

// TileCollisionDetector maps hitboxes onto a Tilemap's impassable cells.
type TileCollisionDetector struct {
	tilemap *Tilemap
}

// NewTileCollisionDetector wraps a collision tilemap as a CollisionDetector.
func NewTileCollisionDetector(tilemap *Tilemap) *TileCollisionDetector {
	return &TileCollisionDetector{tilemap: tilemap}
}

// PixelSize returns the underlying map's size in pixels.
func (d *TileCollisionDetector) PixelSize() (width, height int) {
	return d.tilemap.PixelSize()
}

// TileSize returns the underlying map's tile dimensions in pixels.
func (d *TileCollisionDetector) TileSize() (width, height int) {
	return d.tilemap.TileSize()
}

// Collides reports whether the hitbox touches an impassable tile or extends
// outside the grid. Tiles occupy half-open intervals, so a hitbox whose
// trailing edge sits exactly on a boundary has left that tile, and one whose
// leading edge sits on a boundary has entered the next.
func (d *TileCollisionDetector) Collides(hitbox Rect) bool {
	if hitbox.Width <= 0 || hitbox.Height <= 0 {
		return false
	}
	tw := float64(d.tilemap.tileWidth)
	th := float64(d.tilemap.tileHeight)

	minCol := int(math.Floor(hitbox.X / tw))
	maxCol := lastTouchedCell(hitbox.X+hitbox.Width, tw)
	minRow := int(math.Floor(hitbox.Y / th))
	maxRow := lastTouchedCell(hitbox.Y+hitbox.Height, th)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if d.tilemap.IsImpassable(row, col) {
				return true
			}
		}
	}
	return false
}

// lastTouchedCell returns the index of the last cell a half-open span
// [_, edge) reaches. An edge exactly on a cell boundary does not touch the
// cell starting there.
func lastTouchedCell(edge, cell float64) int {
	return int(math.Ceil(edge/cell)) - 1
}

// gridShape validates that rows is a non-empty rectangular grid and returns
// its dimensions.
func gridShape(tiles [][]int) (rows, cols int, err error) {
	rows = len(tiles)
	if rows == 0 {
		return 0, 0, fmt.Errorf("rowan: tile grid has no rows")
	}
	cols = len(tiles[0])
	if cols == 0 {
		return 0, 0, fmt.Errorf("rowan: tile grid has empty rows")
	}
	for i, row := range tiles {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("rowan: tile grid row %d has %d columns, expected %d", i, len(row), cols)
		}
	}
	return rows, cols, nil
}

func offsetShape(offsets [][]Vec2) (rows, cols int, err error) {
	rows = len(offsets)
	if rows == 0 {
		return 0, 0, fmt.Errorf("rowan: tile offsets have no rows")
	}
	cols = len(offsets[0])
	for i, row := range offsets {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("rowan: tile offsets row %d has %d columns, expected %d", i, len(row), cols)
		}
	}
	return rows, cols, nil
}
