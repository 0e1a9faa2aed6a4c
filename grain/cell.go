package grain

import "fmt"

// Cell addresses a single grid slot. Row grows downward and Col grows rightward.
type Cell struct {
	Row, Col int
}

// Down returns the cell directly below c.
func (c Cell) Down() Cell {
	return Cell{Row: c.Row + 1, Col: c.Col}
}

// DownRight returns the cell diagonally below and to the right of c.
func (c Cell) DownRight() Cell {
	return Cell{Row: c.Row + 1, Col: c.Col + 1}
}

// Offset returns c shifted by dr rows and dc columns.
func (c Cell) Offset(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
