// Package store persists grading results.
package store

import (
	"context"
	"time"

	"connect4/experiments/metrics"
)

// Run is one grading or match session.
type Run struct {
	Subject   string
	Grade     float64
	CreatedAt time.Time
	Matchups  []metrics.MatchupRecord
}

type Store interface {
	SaveRun(ctx context.Context, run Run) error
	Close() error
}

// Tally is an agent's record summed over matchups.
type Tally struct {
	Agent   string
	Games   int `redis:"games"`
	Wins    int `redis:"wins"`
	Losses  int `redis:"losses"`
	Ties    int `redis:"ties"`
	Invalid int `redis:"invalid"`
}

// Tallies sums the matchups per agent in order of first appearance. Self-play
// matchups count once for each side.
func Tallies(matchups []metrics.MatchupRecord) []Tally {
	index := map[string]int{}
	var tallies []Tally
	add := func(name string, games, wins, losses, ties, invalid int) {
		i, ok := index[name]
		if !ok {
			i = len(tallies)
			index[name] = i
			tallies = append(tallies, Tally{Agent: name})
		}
		t := &tallies[i]
		t.Games += games
		t.Wins += wins
		t.Losses += losses
		t.Ties += ties
		t.Invalid += invalid
	}
	for _, m := range matchups {
		add(m.Red, m.Games, m.RedWins, m.YellowWins, m.Ties, m.Invalid)
		add(m.Yellow, m.Games, m.YellowWins, m.RedWins, m.Ties, m.Invalid)
	}
	return tallies
}
