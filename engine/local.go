package engine

import (
	"fmt"
	"time"

	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	State     *game.GameState
	agents    map[game.Cell]agent.Agent
	collector *metrics.Collector
}

// NewLocalEngine sets up a rows x columns game between two agents, red moving first.
func NewLocalEngine(red, yellow agent.Agent, rows, columns int) (*LocalEngine, error) {
	if red == nil || yellow == nil {
		panic("need two agents")
	}
	if red.Player() != game.Red || yellow.Player() != game.Yellow {
		return nil, fmt.Errorf("agents play %s and %s, want R and Y", red.Player(), yellow.Player())
	}

	state, err := game.NewGameState(rows, columns)
	if err != nil {
		return nil, err
	}

	return &LocalEngine{
		State:     state,
		agents:    map[game.Cell]agent.Agent{game.Red: red, game.Yellow: yellow},
		collector: metrics.NewCollector(),
	}, nil
}

func (e *LocalEngine) Reset() {
	e.State.Reset()
	e.collector.Reset()
}

// Run executes the game loop until the game is over.
func (e *LocalEngine) Run() (Result, []metrics.MoveMetric) {
	result := Result{
		Red:       e.agents[game.Red].Name(),
		Yellow:    e.agents[game.Yellow].Name(),
		StartTime: time.Now(),
	}

	for !e.State.IsOver() {
		player := e.State.CurrentPlayer
		a := e.agents[player]
		before := e.State.Board.Clone()

		e.collector.Start()
		err := a.Move(e.State.Board)
		if err == nil {
			var column int
			column, err = game.CheckMove(before, e.State.Board, player)
			if err == nil {
				move := e.collector.Complete(player, column, lastSearch(a))
				log.Debug().Msgf("move %d: %s (%s) plays column %d\n%s", move.Step, player, a.Name(), column, e.State.Board)
				e.State.Advance()
				continue
			}
		}

		log.Warn().Err(err).Msgf("%s (%s) forfeits after move %d", player, a.Name(), e.State.Moves)
		result.Reason = err.Error()
		e.State.Forfeit()
	}

	result.Outcome = e.State.Outcome()
	result.Invalid = e.State.Invalid
	result.Moves = e.State.Moves
	result.EndTime = time.Now()
	return result, e.collector.Moves()
}

func lastSearch(a agent.Agent) searcher.SearchMetrics {
	if r, ok := a.(agent.SearchReporter); ok {
		return r.LastSearch()
	}
	return searcher.SearchMetrics{}
}
