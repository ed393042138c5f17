package game

import "fmt"

// InvalidMoveError describes why a turn was rejected.
type InvalidMoveError struct {
	Player Cell
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move by %s: %s", e.Player, e.Reason)
}

// CheckMove compares the board before and after player's turn and returns the
// column played. Exactly one token of player's colour must have been added,
// on top of its column, with every other cell unchanged.
func CheckMove(before, after *Board, player Cell) (int, error) {
	invalid := func(format string, args ...any) (int, error) {
		return NoRow, &InvalidMoveError{Player: player, Reason: fmt.Sprintf(format, args...)}
	}
	if before.rows != after.rows || before.columns != after.columns {
		return invalid("board shape changed")
	}

	column := NoRow
	for row := 0; row < before.rows; row++ {
		for col := 0; col < before.columns; col++ {
			was, is := before.At(row, col), after.At(row, col)
			if was == is {
				continue
			}
			if was != Empty {
				return invalid("token at row %d column %d was removed or recoloured", row, col)
			}
			if is != player {
				return invalid("token of the wrong colour at row %d column %d", row, col)
			}
			if column != NoRow {
				return invalid("more than one token placed")
			}
			if row != before.Height(col) {
				return invalid("token at row %d column %d is not on top of its column", row, col)
			}
			column = col
		}
	}
	if column == NoRow {
		return invalid("no token placed")
	}
	return column, nil
}
