package engine

import (
	"errors"
	"testing"

	"connect4/agent"
	"connect4/game"
	"connect4/searcher"

	"github.com/stretchr/testify/require"
)

// scripted plays its columns in order and then whatever move does.
type scripted struct {
	player  game.Cell
	columns []int
	move    func(b *game.Board) error
}

func (s *scripted) Name() string      { return "scripted" }
func (s *scripted) Player() game.Cell { return s.player }

func (s *scripted) Move(b *game.Board) error {
	if len(s.columns) > 0 {
		col := s.columns[0]
		s.columns = s.columns[1:]
		_, err := b.Place(col, s.player)
		return err
	}
	return s.move(b)
}

func newEngine(t *testing.T, red, yellow agent.Agent) *LocalEngine {
	t.Helper()
	e, err := NewLocalEngine(red, yellow, game.DefaultRows, game.DefaultColumns)
	require.NoError(t, err)
	return e
}

func TestNewLocalEngine(t *testing.T) {
	t.Run("agents must match their colours", func(t *testing.T) {
		_, err := NewLocalEngine(agent.NewRandom(game.Yellow, 1), agent.NewRandom(game.Yellow, 2), 6, 7)
		require.Error(t, err)
	})

	t.Run("board too small", func(t *testing.T) {
		_, err := NewLocalEngine(agent.NewRandom(game.Red, 1), agent.NewRandom(game.Yellow, 2), 3, 7)
		require.ErrorIs(t, err, game.ErrBoardSize)
	})

	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() {
			_, _ = NewLocalEngine(nil, agent.NewRandom(game.Yellow, 2), 6, 7)
		})
	})
}

func TestRunScriptedGame(t *testing.T) {
	red := &scripted{player: game.Red, columns: []int{0, 0, 0, 0}}
	yellow := &scripted{player: game.Yellow, columns: []int{1, 1, 1}}
	e := newEngine(t, red, yellow)

	result, moves := e.Run()

	require.Equal(t, game.RedWins, result.Outcome)
	require.Equal(t, game.Red, result.Winner())
	require.Equal(t, game.Empty, result.Invalid)
	require.Equal(t, 7, result.Moves)
	require.Len(t, moves, 7)
	require.False(t, result.EndTime.Before(result.StartTime))
	for i, m := range moves {
		require.Equal(t, i+1, m.Step)
	}
	require.Equal(t, game.Red, moves[0].Player)
	require.Equal(t, 0, moves[0].Column)
	require.Equal(t, game.Yellow, moves[1].Player)
	require.Equal(t, 1, moves[1].Column)
}

func TestRunDetectsInvalidMoves(t *testing.T) {
	tests := []struct {
		name   string
		move   func(b *game.Board) error
		reason string
	}{
		{
			name:   "no token",
			move:   func(b *game.Board) error { return nil },
			reason: "no token placed",
		},
		{
			name: "two tokens",
			move: func(b *game.Board) error {
				_, _ = b.Place(2, game.Yellow)
				_, err := b.Place(3, game.Yellow)
				return err
			},
			reason: "more than one token",
		},
		{
			name: "wrong colour",
			move: func(b *game.Board) error {
				_, err := b.Place(2, game.Red)
				return err
			},
			reason: "wrong colour",
		},
		{
			name: "removes a token",
			move: func(b *game.Board) error {
				return b.Retract(0, 0)
			},
			reason: "removed or recoloured",
		},
		{
			name: "agent error",
			move: func(b *game.Board) error {
				return errors.New("connection refused")
			},
			reason: "connection refused",
		},
		{
			name: "column out of range",
			move: func(b *game.Board) error {
				_, err := b.Place(9, game.Yellow)
				return err
			},
			reason: game.ErrColumnOutOfRange.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			red := &scripted{player: game.Red, columns: []int{0}}
			yellow := &scripted{player: game.Yellow, move: tt.move}
			e := newEngine(t, red, yellow)

			result, moves := e.Run()

			require.Equal(t, game.Yellow, result.Invalid)
			require.Equal(t, game.RedWins, result.Outcome)
			require.Contains(t, result.Reason, tt.reason)
			require.Equal(t, 1, result.Moves)
			require.Len(t, moves, 1)
		})
	}
}

func TestRunCollectsSearchMetrics(t *testing.T) {
	red := agent.NewMinimax(game.Red, searcher.WithDepth(3), searcher.WithMetrics())
	yellow := agent.NewRandom(game.Yellow, 4)
	e := newEngine(t, red, yellow)

	result, moves := e.Run()

	require.NotEqual(t, game.Ongoing, result.Outcome)
	require.Equal(t, game.Empty, result.Invalid)
	for _, m := range moves {
		if m.Player == game.Red {
			require.Equal(t, 3, m.Search.Depth)
			require.Greater(t, m.Search.Nodes, int64(0))
		} else {
			require.Zero(t, m.Search.Nodes)
		}
	}
}

func TestReset(t *testing.T) {
	red := agent.NewMinimax(game.Red, searcher.WithDepth(2))
	yellow := agent.NewBrilliant(game.Yellow)
	e := newEngine(t, red, yellow)

	first, firstMoves := e.Run()
	e.Reset()
	require.Zero(t, e.State.Board.Tokens())
	require.Equal(t, game.Red, e.State.CurrentPlayer)

	second, secondMoves := e.Run()

	require.Equal(t, first.Outcome, second.Outcome, "Both agents are deterministic")
	require.Equal(t, first.Moves, second.Moves)
	require.Len(t, secondMoves, len(firstMoves))
}

func TestRunSmallBoardDraw(t *testing.T) {
	// Fills a 4x4 board row by row without any line of four
	red := &scripted{player: game.Red, columns: []int{0, 1, 2, 3, 0, 1, 2, 3}}
	yellow := &scripted{player: game.Yellow, columns: []int{2, 3, 0, 1, 2, 3, 0, 1}}
	e, err := NewLocalEngine(red, yellow, 4, 4)
	require.NoError(t, err)

	result, _ := e.Run()

	require.Equal(t, game.Draw, result.Outcome)
	require.Equal(t, 16, result.Moves)
	require.Equal(t, game.Empty, result.Winner())
	require.True(t, e.State.Board.IsFull())
}
