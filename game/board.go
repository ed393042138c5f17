package game

import (
	"fmt"
	"strings"
)

// Board is a Connect Four grid. Row 0 is the bottom row; tokens in a column
// always occupy rows 0..Height(column)-1.
type Board struct {
	rows    int
	columns int
	cells   []Cell // row-major, bottom row first
	heights []int  // tokens per column
}

// NewBoard returns an empty board.
func NewBoard(rows, columns int) (*Board, error) {
	if rows < ToWin || columns < ToWin {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBoardSize, rows, columns)
	}
	return &Board{
		rows:    rows,
		columns: columns,
		cells:   make([]Cell, rows*columns),
		heights: make([]int, columns),
	}, nil
}

// NewStandardBoard returns an empty 6x7 board.
func NewStandardBoard() *Board {
	b, _ := NewBoard(DefaultRows, DefaultColumns)
	return b
}

func (b *Board) Rows() int    { return b.rows }
func (b *Board) Columns() int { return b.columns }

// At returns the cell at row (0 = bottom) and column.
func (b *Board) At(row, column int) Cell {
	return b.cells[row*b.columns+column]
}

// Height returns the number of tokens in a column.
func (b *Board) Height(column int) int {
	return b.heights[column]
}

// InBounds reports whether the coordinates address a cell of the board.
func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

func (b *Board) IsColumnFull(column int) bool {
	return b.heights[column] >= b.rows
}

// LowestEmptyRow returns the row a token dropped into column would land on,
// or NoRow if the column is full.
func (b *Board) LowestEmptyRow(column int) int {
	if b.IsColumnFull(column) {
		return NoRow
	}
	return b.heights[column]
}

// IsFull reports whether every column is full.
func (b *Board) IsFull() bool {
	for c := 0; c < b.columns; c++ {
		if !b.IsColumnFull(c) {
			return false
		}
	}
	return true
}

// OpenColumns lists the non-full columns from left to right.
func (b *Board) OpenColumns() []int {
	open := make([]int, 0, b.columns)
	for c := 0; c < b.columns; c++ {
		if !b.IsColumnFull(c) {
			open = append(open, c)
		}
	}
	return open
}

// Place drops a token for player into column and returns the row it landed on.
func (b *Board) Place(column int, player Cell) (int, error) {
	if column < 0 || column >= b.columns {
		return NoRow, fmt.Errorf("%w: %d", ErrColumnOutOfRange, column)
	}
	if player != Red && player != Yellow {
		return NoRow, ErrInvalidPlayer
	}
	if b.IsColumnFull(column) {
		return NoRow, fmt.Errorf("%w: %d", ErrColumnFull, column)
	}
	row := b.heights[column]
	b.cells[row*b.columns+column] = player
	b.heights[column]++
	return row, nil
}

// Retract clears the most recent token of column, which must sit on row.
func (b *Board) Retract(column, row int) error {
	if column < 0 || column >= b.columns {
		return fmt.Errorf("%w: %d", ErrColumnOutOfRange, column)
	}
	if row != b.heights[column]-1 || row < 0 {
		return fmt.Errorf("%w: column %d row %d", ErrInvalidBacktrack, column, row)
	}
	b.cells[row*b.columns+column] = Empty
	b.heights[column]--
	return nil
}

// Outcome scans every line of four on the board.
func (b *Board) Outcome() Outcome {
	directions := [4][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal /
		{1, -1}, // diagonal \
	}
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.columns; col++ {
			cell := b.At(row, col)
			if cell == Empty {
				continue
			}
			for _, d := range directions {
				if b.lineOf(row, col, d[0], d[1], cell) {
					return winsFor(cell)
				}
			}
		}
	}
	if b.IsFull() {
		return Draw
	}
	return Ongoing
}

func (b *Board) lineOf(row, col, dRow, dCol int, cell Cell) bool {
	endRow, endCol := row+dRow*(ToWin-1), col+dCol*(ToWin-1)
	if !b.InBounds(endRow, endCol) {
		return false
	}
	for i := 1; i < ToWin; i++ {
		if b.At(row+dRow*i, col+dCol*i) != cell {
			return false
		}
	}
	return true
}

// Snapshot returns the grid as a matrix with the top row first.
func (b *Board) Snapshot() [][]Cell {
	matrix := make([][]Cell, b.rows)
	for i := range matrix {
		row := b.rows - 1 - i
		matrix[i] = make([]Cell, b.columns)
		copy(matrix[i], b.cells[row*b.columns:(row+1)*b.columns])
	}
	return matrix
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		rows:    b.rows,
		columns: b.columns,
		cells:   make([]Cell, len(b.cells)),
		heights: make([]int, len(b.heights)),
	}
	copy(c.cells, b.cells)
	copy(c.heights, b.heights)
	return c
}

// Equal reports whether both boards have the same shape and cells.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.rows != other.rows || b.columns != other.columns {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Reset empties the board.
func (b *Board) Reset() {
	clear(b.cells)
	clear(b.heights)
}

// Tokens returns the number of tokens on the board.
func (b *Board) Tokens() int {
	n := 0
	for _, h := range b.heights {
		n += h
	}
	return n
}

// String renders the board top row first, one line per row.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Snapshot() {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard builds a board from rows given top row first, using the
// symbols of Cell.String.
func ParseBoard(lines []string) (*Board, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBoardSize)
	}
	b, err := NewBoard(len(lines), len(lines[0]))
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		if len(line) != b.columns {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(line), b.columns)
		}
		row := b.rows - 1 - i
		for col, r := range line {
			cell, err := ParseCell(string(r))
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, col, err)
			}
			b.cells[row*b.columns+col] = cell
		}
	}
	for col := 0; col < b.columns; col++ {
		h := 0
		for h < b.rows && b.At(h, col) != Empty {
			h++
		}
		for row := h; row < b.rows; row++ {
			if b.At(row, col) != Empty {
				return nil, fmt.Errorf("floating token in column %d row %d", col, row)
			}
		}
		b.heights[col] = h
	}
	return b, nil
}
