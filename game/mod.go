package game

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4

	// NoRow is returned by LowestEmptyRow for a full column
	NoRow = -1
)

// Cell is the content of one board slot.
type Cell int8

const (
	Empty Cell = iota
	Red        // Player A, moves first
	Yellow     // Player B
)

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Red:
		return Yellow
	case Yellow:
		return Red
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case Red:
		return "R"
	case Yellow:
		return "Y"
	default:
		return "."
	}
}

// ParseCell accepts the single-letter form produced by String.
func ParseCell(s string) (Cell, error) {
	switch s {
	case "R", "r":
		return Red, nil
	case "Y", "y":
		return Yellow, nil
	case ".", "":
		return Empty, nil
	}
	return Empty, ErrInvalidPlayer
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	parsed, err := ParseCell(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Outcome is the terminal status of a board.
type Outcome int

const (
	Ongoing Outcome = iota
	RedWins
	YellowWins
	Draw
)

// Winner returns the winning player, or Empty if nobody has won.
func (o Outcome) Winner() Cell {
	switch o {
	case RedWins:
		return Red
	case YellowWins:
		return Yellow
	default:
		return Empty
	}
}

func (o Outcome) String() string {
	switch o {
	case RedWins:
		return "red wins"
	case YellowWins:
		return "yellow wins"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

func winsFor(c Cell) Outcome {
	if c == Red {
		return RedWins
	}
	return YellowWins
}

// Error is a sentinel error raised by board operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrColumnFull       Error = "column is full"
	ErrColumnOutOfRange Error = "column out of range"
	ErrInvalidBacktrack Error = "retracted cell is not the latest placement in its column"
	ErrInvalidPlayer    Error = "invalid player"
	ErrBoardSize        Error = "board must be at least 4x4"
	ErrGameOver         Error = "game is over"
)
