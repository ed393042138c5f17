package game

// GameState is the live board of a match plus whose turn it is.
type GameState struct {
	Board         *Board
	CurrentPlayer Cell
	Moves         int // committed moves
	Invalid       Cell
}

// NewGameState returns an empty game with Red to move.
func NewGameState(rows, columns int) (*GameState, error) {
	b, err := NewBoard(rows, columns)
	if err != nil {
		return nil, err
	}
	return &GameState{Board: b, CurrentPlayer: Red}, nil
}

// Reset clears the board for a new match.
func (gs *GameState) Reset() {
	gs.Board.Reset()
	gs.CurrentPlayer = Red
	gs.Moves = 0
	gs.Invalid = Empty
}

// Outcome of the match. A player who made an invalid move loses.
func (gs *GameState) Outcome() Outcome {
	if gs.Invalid != Empty {
		return winsFor(gs.Invalid.Opponent())
	}
	return gs.Board.Outcome()
}

func (gs *GameState) IsOver() bool {
	return gs.Outcome() != Ongoing
}

// Play commits a move for the current player and hands the turn over.
func (gs *GameState) Play(column int) (int, error) {
	if gs.IsOver() {
		return NoRow, ErrGameOver
	}
	row, err := gs.Board.Place(column, gs.CurrentPlayer)
	if err != nil {
		return NoRow, err
	}
	gs.Advance()
	return row, nil
}

// Advance records a move that was already placed on the board.
func (gs *GameState) Advance() {
	gs.Moves++
	gs.CurrentPlayer = gs.CurrentPlayer.Opponent()
}

// Forfeit ends the match because the current player moved illegally.
func (gs *GameState) Forfeit() {
	gs.Invalid = gs.CurrentPlayer
}
