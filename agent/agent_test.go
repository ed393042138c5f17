package agent

import (
	"testing"

	"connect4/game"
	"connect4/searcher"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, rows ...string) *game.Board {
	t.Helper()
	b, err := game.ParseBoard(rows)
	require.NoError(t, err)
	return b
}

// play runs a game between red and yellow and checks every move on the way.
func play(t *testing.T, red, yellow Agent) game.Outcome {
	t.Helper()
	b := game.NewStandardBoard()
	agents := map[game.Cell]Agent{game.Red: red, game.Yellow: yellow}
	player := game.Red
	for b.Outcome() == game.Ongoing && !b.IsFull() {
		before := b.Clone()
		require.NoError(t, agents[player].Move(b), "%s on\n%s", agents[player].Name(), before)
		_, err := game.CheckMove(before, b, player)
		require.NoError(t, err, "%s on\n%s", agents[player].Name(), before)
		player = player.Opponent()
	}
	if o := b.Outcome(); o != game.Ongoing {
		return o
	}
	return game.Draw
}

func TestParseKind(t *testing.T) {
	for _, kind := range []Kind{KindRandom, KindBeginner, KindIntermediate, KindAdvanced, KindBrilliant, KindMinimax, KindRemote} {
		parsed, err := ParseKind(string(kind))
		require.NoError(t, err)
		require.Equal(t, kind, parsed)
	}

	parsed, err := ParseKind(" Minimax ")
	require.NoError(t, err)
	require.Equal(t, KindMinimax, parsed)

	_, err = ParseKind("grandmaster")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Run("every local kind", func(t *testing.T) {
		for _, kind := range append(Opponents, KindMinimax) {
			a, err := New(kind, game.Yellow, Options{Depth: 2, Seed: 1})
			require.NoError(t, err)
			require.Equal(t, game.Yellow, a.Player())
			require.NotEmpty(t, a.Name())
		}
	})

	t.Run("minimax uses the default depth", func(t *testing.T) {
		a, err := New(KindMinimax, game.Red, Options{})
		require.NoError(t, err)
		require.Equal(t, "minimax(depth=8)", a.Name())
		require.Implements(t, (*SearchReporter)(nil), a)
	})

	t.Run("rejects an empty player", func(t *testing.T) {
		_, err := New(KindRandom, game.Empty, Options{})
		require.ErrorIs(t, err, game.ErrInvalidPlayer)
	})

	t.Run("remote needs a URL", func(t *testing.T) {
		_, err := New(KindRemote, game.Red, Options{})
		require.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := New(Kind("oracle"), game.Red, Options{})
		require.Error(t, err)
	})
}

func TestAgentsOnlyMakeValidMoves(t *testing.T) {
	kinds := append(Opponents, KindMinimax)
	for i, red := range kinds {
		for j, yellow := range kinds {
			r, err := New(red, game.Red, Options{Depth: 2, Seed: uint64(10*i + j + 1)})
			require.NoError(t, err)
			y, err := New(yellow, game.Yellow, Options{Depth: 2, Seed: uint64(100*i + j + 1)})
			require.NoError(t, err)

			play(t, r, y)
		}
	}
}

func TestAgentsOnFullBoard(t *testing.T) {
	b, err := game.NewBoard(4, 4)
	require.NoError(t, err)
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			player := game.Red
			if (col/2+row)%2 == 1 {
				player = game.Yellow
			}
			_, _ = b.Place(col, player)
		}
	}
	for _, kind := range append(Opponents, KindMinimax) {
		a, err := New(kind, game.Red, Options{Depth: 2, Seed: 1})
		require.NoError(t, err)
		before := b.Clone()

		require.Error(t, a.Move(b), "%s should refuse to move", kind)
		require.True(t, before.Equal(b))
	}
}

func TestMinimaxAgent(t *testing.T) {
	b := parse(t,
		".......",
		".......",
		".......",
		".......",
		"Y......",
		"RRR.YY.",
	)
	a := NewMinimax(game.Red, searcher.WithDepth(4), searcher.WithMetrics())

	require.NoError(t, a.Move(b))

	require.Equal(t, game.Red, b.At(0, 3))
	require.Equal(t, game.RedWins, b.Outcome())
	metrics := a.(SearchReporter).LastSearch()
	require.Equal(t, 4, metrics.Depth)
	require.Greater(t, metrics.Nodes, int64(0))
}

func TestMinimaxAgentOnTheEdges(t *testing.T) {
	t.Run("wins in column 0", func(t *testing.T) {
		b := parse(t,
			".......",
			".......",
			".......",
			".......",
			".YY....",
			".RRRY..",
		)
		a, err := New(KindMinimax, game.Red, Options{Depth: 3})
		require.NoError(t, err)

		require.NoError(t, a.Move(b))

		require.Equal(t, game.Red, b.At(0, 0))
		require.Equal(t, game.RedWins, b.Outcome())
	})

	t.Run("blocks in column 6", func(t *testing.T) {
		b := parse(t,
			".......",
			".......",
			".......",
			".......",
			"...RR..",
			"..RYYY.",
		)
		a, err := New(KindMinimax, game.Red, Options{Depth: 2})
		require.NoError(t, err)

		require.NoError(t, a.Move(b))

		require.Equal(t, game.Red, b.At(0, 6))
	})

	t.Run("blocks beyond the seventh column", func(t *testing.T) {
		b := parse(t,
			"........",
			"........",
			"........",
			"........",
			"R.......",
			"R..RYYY.",
		)
		a, err := New(KindMinimax, game.Red, Options{Depth: 2})
		require.NoError(t, err)

		require.NoError(t, a.Move(b))

		require.Equal(t, game.Red, b.At(0, 7))
		require.Equal(t, 7, b.Tokens())
	})
}

func TestMinimaxBeatsRandom(t *testing.T) {
	wins := 0
	for seed := uint64(1); seed <= 5; seed++ {
		red := NewMinimax(game.Red, searcher.WithDepth(4))
		yellow := NewRandom(game.Yellow, seed)

		if play(t, red, yellow) == game.RedWins {
			wins++
		}
	}
	require.GreaterOrEqual(t, wins, 4)
}
