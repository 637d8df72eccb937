package rowan

import "testing"

func TestParseVisualShiftsToZeroBased(t *testing.T) {
	grid, err := ParseTilemap("0 1 2\n3 0 1\n", false)
	if err != nil {
		t.Fatalf("ParseTilemap: %v", err)
	}
	want := [][]int{{-1, 0, 1}, {2, -1, 0}}
	for r := range want {
		for c := range want[r] {
			if grid[r][c] != want[r][c] {
				t.Errorf("grid[%d][%d] = %d, want %d", r, c, grid[r][c], want[r][c])
			}
		}
	}
}

func TestParseCollisionKeepsLiteralValues(t *testing.T) {
	grid, err := ParseTilemap("0 1\n1 0\n", true)
	if err != nil {
		t.Fatalf("ParseTilemap: %v", err)
	}
	if grid[0][0] != 0 || grid[0][1] != 1 || grid[1][0] != 1 || grid[1][1] != 0 {
		t.Errorf("collision grid = %v, want literal 0/1 values", grid)
	}
}

func TestParseSeparatorsAndBlankLines(t *testing.T) {
	grid, err := ParseTilemap("\n1,2, 3\n\n4\t5 6\r\n\n", true)
	if err != nil {
		t.Fatalf("ParseTilemap: %v", err)
	}
	if len(grid) != 2 || len(grid[0]) != 3 {
		t.Fatalf("grid shape = %dx%d, want 2x3", len(grid), len(grid[0]))
	}
	if grid[1][2] != 6 {
		t.Errorf("grid[1][2] = %d, want 6", grid[1][2])
	}
}

func TestParseRaggedRows(t *testing.T) {
	if _, err := ParseTilemap("1 2 3\n1 2\n", true); err == nil {
		t.Error("ragged rows accepted")
	}
}

func TestParseBadValue(t *testing.T) {
	if _, err := ParseTilemap("1 x 3\n", true); err == nil {
		t.Error("non-numeric value accepted")
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := ParseTilemap("\n\n", true); err == nil {
		t.Error("empty input accepted")
	}
}
