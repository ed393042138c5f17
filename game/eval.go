package game

const (
	WinScore = 100000

	threeScore = 1000
	twoScore   = 500

	horizontalWeight = 1.75
)

// Evaluate scores b from perspective's point of view. Positive favours
// perspective. Decided boards score ±WinScore adjusted by depthRemaining so
// that nearer wins and later losses are preferred.
func Evaluate(b *Board, perspective Cell, depthRemaining int) int {
	switch b.Outcome().Winner() {
	case perspective:
		return WinScore + depthRemaining
	case perspective.Opponent():
		return -WinScore - depthRemaining
	}

	return verticalScore(b, perspective) +
		horizontalScore(b, perspective) +
		diagonalScore(b, perspective)
}

// verticalScore looks at the lowest empty cell of each column together with
// the three tokens beneath it.
func verticalScore(b *Board, self Cell) int {
	score := 0
	for col := 0; col < b.columns; col++ {
		h := b.heights[col]
		if h >= b.rows || h < ToWin-1 {
			continue
		}
		w := [4]Cell{b.At(h, col), b.At(h-1, col), b.At(h-2, col), b.At(h-3, col)}
		score += windowScore(w[:], self)
	}
	return score
}

func horizontalScore(b *Board, self Cell) int {
	score := 0
	for row := b.rows - 1; row >= 0; row-- {
		for col := 0; col+ToWin <= b.columns; col++ {
			w := [4]Cell{b.At(row, col), b.At(row, col+1), b.At(row, col+2), b.At(row, col+3)}
			score += int(float64(windowScore(w[:], self)) * horizontalWeight)
		}
	}
	return score
}

// diagonalScore sums length-3 diagonal windows. Rows are counted from the top
// here and the scan order is kept as tuned, overlaps included.
func diagonalScore(b *Board, self Cell) int {
	rows, cols := b.rows, b.columns
	score := 0
	for i := 1; i < cols; i++ {
		for j := rows - i; j >= 2; j-- {
			score += diagonal3(b, self, j, i, -1, 1)
		}
		for j := 0; j < rows-i-1; j++ {
			score += diagonal3(b, self, j, i, 1, 1)
		}
	}
	for i := 2; i < rows; i++ {
		for j := 0; j < i-1; j++ {
			score += diagonal3(b, self, i, j, -1, 1)
		}
		for j := rows - 1; j >= 2+rows-i; j-- {
			score += diagonal3(b, self, j, i, -1, -1)
		}
	}
	return score
}

// diagonal3 scores the window starting at (top, col), top counted from the top
// row, stepping dTop rows and dCol columns. Windows leaving the board score 0.
func diagonal3(b *Board, self Cell, top, col, dTop, dCol int) int {
	var w [3]Cell
	for k := range w {
		t, c := top+dTop*k, col+dCol*k
		row := b.rows - 1 - t
		if !b.InBounds(row, c) {
			return 0
		}
		w[k] = b.At(row, c)
	}
	return windowScore(w[:], self)
}

// windowScore classifies one window by its own, enemy and empty cells.
func windowScore(window []Cell, self Cell) int {
	var own, enemy, empty int
	for _, c := range window {
		switch c {
		case Empty:
			empty++
		case self:
			own++
		default:
			enemy++
		}
	}

	switch {
	case empty == len(window):
		return 0
	case own == 3 && empty == 1:
		return threeScore
	case enemy == 3 && empty == 1:
		return -threeScore
	case own == 2 && enemy == 0:
		return twoScore
	case enemy == 2 && own == 0:
		return -twoScore
	}
	return 0
}
