package experiments

import (
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
)

// GamesStatistics tallies the results of one matchup.
type GamesStatistics struct {
	Red        string
	Yellow     string
	Games      int
	RedWins    int
	YellowWins int
	Ties       int
	Invalid    int // forfeited games, counted for neither side
}

func NewGamesStatistics(red, yellow string) *GamesStatistics {
	return &GamesStatistics{Red: red, Yellow: yellow}
}

func (s *GamesStatistics) Record(r engine.Result) {
	s.Games++
	if r.Invalid != game.Empty {
		s.Invalid++
		return
	}
	switch r.Outcome {
	case game.RedWins:
		s.RedWins++
	case game.YellowWins:
		s.YellowWins++
	case game.Draw:
		s.Ties++
	}
}

// Wins returns the number of games won by player.
func (s *GamesStatistics) Wins(player game.Cell) int {
	switch player {
	case game.Red:
		return s.RedWins
	case game.Yellow:
		return s.YellowWins
	}
	return 0
}

// PercentTotal returns n as a percentage of the games played.
func (s *GamesStatistics) PercentTotal(n int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(n) * 100 / float64(s.Games)
}

func (s *GamesStatistics) Log() {
	log.Info().Msgf("%s (R) vs %s (Y): %d games, red wins %d (%.2f%%), yellow wins %d (%.2f%%), ties %d (%.2f%%), invalid %d",
		s.Red, s.Yellow, s.Games,
		s.RedWins, s.PercentTotal(s.RedWins),
		s.YellowWins, s.PercentTotal(s.YellowWins),
		s.Ties, s.PercentTotal(s.Ties),
		s.Invalid)
}

func (s *GamesStatistics) MatchupRecord(id int) metrics.MatchupRecord {
	return metrics.MatchupRecord{
		ID:         id,
		Red:        s.Red,
		Yellow:     s.Yellow,
		Games:      s.Games,
		RedWins:    s.RedWins,
		YellowWins: s.YellowWins,
		Ties:       s.Ties,
		Invalid:    s.Invalid,
	}
}
