package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"connect4/agent"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/stretchr/testify/require"
)

func TestGamesStatistics(t *testing.T) {
	s := NewGamesStatistics("red", "yellow")
	require.Zero(t, s.PercentTotal(0), "No games yet")

	s.Record(engine.Result{Outcome: game.RedWins})
	s.Record(engine.Result{Outcome: game.RedWins})
	s.Record(engine.Result{Outcome: game.YellowWins})
	s.Record(engine.Result{Outcome: game.Draw})
	s.Record(engine.Result{Outcome: game.RedWins, Invalid: game.Yellow})

	require.Equal(t, 5, s.Games)
	require.Equal(t, 2, s.RedWins, "Forfeits count for neither side")
	require.Equal(t, 1, s.YellowWins)
	require.Equal(t, 1, s.Ties)
	require.Equal(t, 1, s.Invalid)
	require.Equal(t, 2, s.Wins(game.Red))
	require.Equal(t, 1, s.Wins(game.Yellow))
	require.Zero(t, s.Wins(game.Empty))
	require.InDelta(t, 40.0, s.PercentTotal(s.RedWins), 1e-9)

	record := s.MatchupRecord(3)
	require.Equal(t, metrics.MatchupRecord{
		ID: 3, Red: "red", Yellow: "yellow", Games: 5, RedWins: 2, YellowWins: 1, Ties: 1, Invalid: 1,
	}, record)
}

func TestGrade(t *testing.T) {
	perfect := func(player game.Cell) []*GamesStatistics {
		var stats []*GamesStatistics
		for range Weights {
			s := &GamesStatistics{Games: 10}
			if player == game.Red {
				s.RedWins = 10
			} else {
				s.YellowWins = 10
			}
			stats = append(stats, s)
		}
		return stats
	}

	t.Run("perfect record", func(t *testing.T) {
		grade, invalid := Grade(perfect(game.Yellow), perfect(game.Red))
		require.False(t, invalid)
		require.InDelta(t, 116.0, grade, 1e-9)
	})

	t.Run("only the subject's wins count", func(t *testing.T) {
		grade, _ := Grade(perfect(game.Red), perfect(game.Yellow))
		require.InDelta(t, 0.0, grade, 1e-9)
	})

	t.Run("weights by opponent", func(t *testing.T) {
		asYellow := perfect(game.Yellow)
		for _, s := range asYellow {
			s.YellowWins = 5
		}
		asYellow[4].YellowWins = 10

		grade, _ := Grade(asYellow, nil)

		// 50% against four opponents and self-play, 100% against the fifth
		require.InDelta(t, 50*(.10*4+.06)+100*.12, grade, 1e-9)
	})

	t.Run("invalid move penalty", func(t *testing.T) {
		asRed := perfect(game.Red)
		asRed[2].Invalid = 1

		grade, invalid := Grade(perfect(game.Yellow), asRed)

		require.True(t, invalid)
		require.InDelta(t, 106.0, grade, 1e-9)
	})
}

func TestGraderRun(t *testing.T) {
	g := NewGrader(agent.KindMinimax, agent.Options{Depth: 2, Seed: 7})
	g.Games = 2
	g.SelfPlayGames = 1

	report, err := g.Run()

	require.NoError(t, err)
	require.Len(t, report.AsYellow, len(Weights))
	require.Len(t, report.AsRed, len(Weights))
	require.Len(t, report.Matchups, 2*len(Weights))
	require.Len(t, report.Games, 2*(5*2+1))
	require.False(t, report.InvalidMove)
	require.GreaterOrEqual(t, report.Grade, 0.0)
	require.LessOrEqual(t, report.Grade, 116.0)

	for _, s := range report.AsYellow {
		require.Equal(t, "minimax(depth=2)", s.Yellow)
	}
	for _, s := range report.AsRed {
		require.Equal(t, "minimax(depth=2)", s.Red)
	}
	require.Equal(t, "random", report.AsYellow[0].Red)
	require.Equal(t, "brilliant", report.AsRed[4].Yellow)
	require.Equal(t, 1, report.AsRed[5].Games)

	moves := 0
	for _, record := range report.Games {
		moves += record.Moves
	}
	require.Len(t, report.Moves, moves)
}

func TestGraderRejectsBadSubject(t *testing.T) {
	g := NewGrader(agent.KindRemote, agent.Options{})
	g.Games = 1

	_, err := g.Run()

	require.Error(t, err)
}

func TestReportWrite(t *testing.T) {
	report := &Report{}
	red := agent.NewBrilliant(game.Red)
	yellow := agent.NewRandom(game.Yellow, 3)

	stats, err := report.Play(red, yellow, 3, game.DefaultRows, game.DefaultColumns)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Games)

	w, err := metrics.NewWriter(t.TempDir(), "match")
	require.NoError(t, err)
	require.NoError(t, report.Write(w))

	readRows := func(name string) [][]string {
		f, err := os.Open(filepath.Join(w.Dir(), name))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		return rows
	}

	matchups := readRows("matchup_records.csv")
	require.Len(t, matchups, 2)
	require.Equal(t, []string{"1", "brilliant", "random", "3"}, matchups[1][:4])

	require.Len(t, readRows("game_records.csv"), 4)
	require.Len(t, readRows("move_records.csv"), len(report.Moves)+1)
}
