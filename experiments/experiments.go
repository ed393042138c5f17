package experiments

import (
	"fmt"

	"connect4/agent"
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
)

const (
	NumGames       = 1000 // Per matchup against each opponent
	SelfPlayGames  = 10
	InvalidPenalty = 10
)

// Weights of the subject's win percentage per opponent, self-play last.
var Weights = []float64{.10, .10, .10, .10, .12, .06}

// Grader plays a subject strategy against every opponent strategy and itself,
// first as Yellow and then as Red.
type Grader struct {
	Subject       agent.Kind
	Options       agent.Options
	Games         int
	SelfPlayGames int
	Rows          int
	Columns       int
}

func NewGrader(subject agent.Kind, options agent.Options) *Grader {
	return &Grader{
		Subject:       subject,
		Options:       options,
		Games:         NumGames,
		SelfPlayGames: SelfPlayGames,
		Rows:          game.DefaultRows,
		Columns:       game.DefaultColumns,
	}
}

type Report struct {
	AsYellow    []*GamesStatistics
	AsRed       []*GamesStatistics
	Grade       float64
	InvalidMove bool

	Matchups []metrics.MatchupRecord
	Games    []metrics.GameRecord
	Moves    []metrics.MoveRecord
}

func (g *Grader) Run() (*Report, error) {
	report := &Report{}
	opponents := append(append([]agent.Kind(nil), agent.Opponents...), g.Subject)

	log.Info().Msgf("grading %s as yellow...", g.Subject)
	for i, opponent := range opponents {
		red, err := g.agent(opponent, game.Red, len(report.Matchups))
		if err != nil {
			return nil, err
		}
		yellow, err := g.agent(g.Subject, game.Yellow, len(report.Matchups))
		if err != nil {
			return nil, err
		}
		stats, err := report.Play(red, yellow, g.games(i, len(opponents)), g.Rows, g.Columns)
		if err != nil {
			return nil, err
		}
		report.AsYellow = append(report.AsYellow, stats)
	}

	log.Info().Msgf("grading %s as red...", g.Subject)
	for i, opponent := range opponents {
		red, err := g.agent(g.Subject, game.Red, len(report.Matchups))
		if err != nil {
			return nil, err
		}
		yellow, err := g.agent(opponent, game.Yellow, len(report.Matchups))
		if err != nil {
			return nil, err
		}
		stats, err := report.Play(red, yellow, g.games(i, len(opponents)), g.Rows, g.Columns)
		if err != nil {
			return nil, err
		}
		report.AsRed = append(report.AsRed, stats)
	}

	report.Grade, report.InvalidMove = Grade(report.AsYellow, report.AsRed)
	log.Info().Msgf("grade for %s: %.2f", g.Subject, report.Grade)
	return report, nil
}

// games returns the number of games against the i-th of n opponents. The last
// opponent is the subject itself.
func (g *Grader) games(i, n int) int {
	if i == n-1 {
		return g.SelfPlayGames
	}
	return g.Games
}

// agent builds a fresh agent. Seeded runs give every matchup and colour its
// own stream.
func (g *Grader) agent(kind agent.Kind, player game.Cell, matchup int) (agent.Agent, error) {
	options := g.Options
	if options.Seed != 0 {
		options.Seed += uint64(2*matchup) + uint64(player)
	}
	return agent.New(kind, player, options)
}

// Grade sums the subject's weighted win percentages over both colours and
// applies the invalid move penalty.
func Grade(asYellow, asRed []*GamesStatistics) (float64, bool) {
	grade := 0.0
	invalid := false
	for i, stats := range asYellow {
		if stats.Invalid > 0 {
			invalid = true
		}
		if i < len(Weights) {
			grade += stats.PercentTotal(stats.YellowWins) * Weights[i]
		}
	}
	for i, stats := range asRed {
		if stats.Invalid > 0 {
			invalid = true
		}
		if i < len(Weights) {
			grade += stats.PercentTotal(stats.RedWins) * Weights[i]
		}
	}
	if invalid {
		grade -= InvalidPenalty
	}
	return grade, invalid
}

// Play runs games between red and yellow on one engine and records every game
// and move in the report.
func (r *Report) Play(red, yellow agent.Agent, games, rows, columns int) (*GamesStatistics, error) {
	e, err := engine.NewLocalEngine(red, yellow, rows, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	matchup := len(r.Matchups) + 1
	stats := NewGamesStatistics(red.Name(), yellow.Name())
	log.Info().Msgf("starting matchup %d between red=%s and yellow=%s...", matchup, red.Name(), yellow.Name())

	for i := 0; i < games; i++ {
		e.Reset()
		result, moves := e.Run()
		stats.Record(result)

		id := len(r.Games) + 1
		r.Games = append(r.Games, gameRecord(id, matchup, result))
		for _, m := range moves {
			r.Moves = append(r.Moves, metrics.MoveRecord{Game: id, MoveMetric: m})
		}
		log.Debug().Msgf("matchup %d game %d of %d: %s in %d moves", matchup, i+1, games, result.Outcome, result.Moves)
	}

	stats.Log()
	r.Matchups = append(r.Matchups, stats.MatchupRecord(matchup))
	return stats, nil
}

// Write stores the report's records as CSV files.
func (r *Report) Write(w *metrics.Writer) error {
	if err := w.WriteMatchupRecords(r.Matchups); err != nil {
		return err
	}
	log.Info().Msg("stored matchup records")
	if err := w.WriteGameRecords(r.Games); err != nil {
		return err
	}
	log.Info().Msg("stored game records")
	if err := w.WriteMoveRecords(r.Moves); err != nil {
		return err
	}
	log.Info().Msg("stored move records")
	return nil
}

func gameRecord(id, matchup int, result engine.Result) metrics.GameRecord {
	record := metrics.GameRecord{
		ID:        id,
		Matchup:   matchup,
		Outcome:   result.Outcome.String(),
		Moves:     result.Moves,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
	}
	if result.Invalid != game.Empty {
		record.Invalid = result.Invalid.String()
	}
	return record
}
