package searcher

import "connect4/game"

// Search parameters

const DefaultDepth = 8 // Plies searched ahead of the current position

// NoColumn is reported when a search never placed a token
const NoColumn = -1

// DefaultOrder tries the centre of a 7-column board first and moves outwards.
var DefaultOrder = []int{3, 2, 4, 1, 5, 0, 6}

// CenterOutOrder returns the centre-first ordering for any board width. Left
// of centre is tried before right.
func CenterOutOrder(columns int) []int {
	if columns == game.DefaultColumns {
		return append([]int(nil), DefaultOrder...)
	}
	order := make([]int, 0, columns)
	center := (columns - 1) / 2
	order = append(order, center)
	for offset := 1; len(order) < columns; offset++ {
		if left := center - offset; left >= 0 {
			order = append(order, left)
		}
		if right := center + offset; right < columns {
			order = append(order, right)
		}
	}
	return order
}
