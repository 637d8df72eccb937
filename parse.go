package rowan

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTilemap turns a text grid of non-negative integers into a 2D tile id
// grid. Rows are lines; values are separated by whitespace or commas; blank
// lines are ignored. Every row must have the same length.
//
// Visual maps are authored 1-based (0 = no tile) and are shifted to 0-based
// ids, with absent cells becoming -1. Collision maps keep their literal
// values — pass collision=true so 0/1 passable/impassable grids survive
// unshifted.
func ParseTilemap(text string, collision bool) ([][]int, error) {
	var grid [][]int
	for lineNo, line := range strings.Split(text, "\n") {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\r' || r == ','
		})
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for i, field := range fields {
			value, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("rowan: tilemap line %d: bad tile value %q", lineNo+1, field)
			}
			row[i] = value
		}
		grid = append(grid, row)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("rowan: tilemap text has no rows")
	}

	cols := len(grid[0])
	for i, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("rowan: tilemap row %d has %d columns, expected %d", i, len(row), cols)
		}
	}

	if collision {
		return grid, nil
	}
	for _, row := range grid {
		for i, value := range row {
			if value > 0 {
				row[i] = value - 1
			} else {
				row[i] = emptyTile
			}
		}
	}
	return grid, nil
}
