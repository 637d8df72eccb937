package rowan

import "fmt"

// TilesetDescriptor describes how to slice a tileset image into fixed-size
// cells. Tile ids index the grid in row-major order: id 0 is the top-left
// cell, increasing to the right before wrapping to the next row.
type TilesetDescriptor struct {
	Image      ImageRef
	TileWidth  int
	TileHeight int
	Columns    int
	// TileCount is the total number of cells in the sheet. Zero means
	// unknown; SourceRect then accepts any non-negative id.
	TileCount int
}

// NewTilesetDescriptor validates the tileset geometry. Non-positive tile
// dimensions or a column count below one fail fast; they would otherwise
// surface as division garbage deep inside rendering.
func NewTilesetDescriptor(image ImageRef, tileWidth, tileHeight, columns, tileCount int) (TilesetDescriptor, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return TilesetDescriptor{}, fmt.Errorf("rowan: tileset tile size %dx%d must be positive", tileWidth, tileHeight)
	}
	if columns < 1 {
		return TilesetDescriptor{}, fmt.Errorf("rowan: tileset needs at least 1 column, got %d", columns)
	}
	if tileCount < 0 {
		return TilesetDescriptor{}, fmt.Errorf("rowan: tileset tile count %d must not be negative", tileCount)
	}
	return TilesetDescriptor{
		Image:      image,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Columns:    columns,
		TileCount:  tileCount,
	}, nil
}

// SourceRect returns the image region for a tile id. It is a pure function
// of the descriptor: row = id / Columns, col = id % Columns. ok is false for
// negative ids and, when TileCount is set, ids past the last cell; callers
// skip drawing those (the same policy as an explicitly empty cell).
func (t TilesetDescriptor) SourceRect(id int) (rect Rect, ok bool) {
	if id < 0 || (t.TileCount > 0 && id >= t.TileCount) {
		return Rect{}, false
	}
	row := id / t.Columns
	col := id % t.Columns
	return Rect{
		X:      float64(col * t.TileWidth),
		Y:      float64(row * t.TileHeight),
		Width:  float64(t.TileWidth),
		Height: float64(t.TileHeight),
	}, true
}
