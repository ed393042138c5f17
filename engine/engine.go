package engine

import (
	"time"

	"connect4/experiments/metrics"
	"connect4/game"
)

type Engine interface {
	// Run plays a game from an empty board until it is decided, drawn or
	// forfeited by an invalid move
	Run() (Result, []metrics.MoveMetric)
	// Reset prepares the engine for another game between the same agents
	Reset()
}

type Result struct {
	Red       string // agent names
	Yellow    string
	Outcome   game.Outcome
	Invalid   game.Cell // player who forfeited, Empty if none
	Reason    string    // why the move was rejected
	Moves     int
	StartTime time.Time
	EndTime   time.Time
}

// Winner returns the winning player, Empty for a draw.
func (r Result) Winner() game.Cell {
	return r.Outcome.Winner()
}

func (r Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
