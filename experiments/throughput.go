package experiments

import (
	"slices"
	"time"

	"connect4/agent"
	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
)

// Depths compared by default in the depth experiment.
var Depths = []int{2, 4, 6, 8}

// DepthThroughput sums the search effort of all moves searched to one depth.
type DepthThroughput struct {
	Depth    int
	Moves    int
	Nodes    int64
	Cutoffs  int64
	Duration time.Duration
}

func (d DepthThroughput) NodesPerSecond() float64 {
	if d.Duration <= 0 {
		return 0
	}
	return float64(d.Nodes) / d.Duration.Seconds()
}

func (d DepthThroughput) NodesPerMove() float64 {
	if d.Moves == 0 {
		return 0
	}
	return float64(d.Nodes) / float64(d.Moves)
}

// RunDepthExperiment plays minimax at every depth against opponent, once with
// each colour, and logs how the search effort grows with depth.
func RunDepthExperiment(opponent agent.Kind, depths []int, options agent.Options, games, rows, columns int) (*Report, error) {
	report := &Report{}
	log.Info().Msgf("starting depth experiment against %s...", opponent)

	for _, depth := range depths {
		opts := options
		opts.Depth = depth

		for _, subject := range []game.Cell{game.Red, game.Yellow} {
			if options.Seed != 0 {
				opts.Seed = options.Seed + uint64(len(report.Matchups))
			}
			minimax, err := agent.New(agent.KindMinimax, subject, opts)
			if err != nil {
				return nil, err
			}
			other, err := agent.New(opponent, subject.Opponent(), opts)
			if err != nil {
				return nil, err
			}

			red, yellow := minimax, other
			if subject == game.Yellow {
				red, yellow = other, minimax
			}
			if _, err := report.Play(red, yellow, games, rows, columns); err != nil {
				return nil, err
			}
		}
	}

	for _, t := range Throughput(report.Moves) {
		log.Info().Msgf("depth %d: %d moves, %.0f nodes per move, %.0f nodes per second",
			t.Depth, t.Moves, t.NodesPerMove(), t.NodesPerSecond())
	}
	log.Info().Msg("completed depth experiment")
	return report, nil
}

// Throughput groups the searched moves by depth, shallowest first.
func Throughput(moves []metrics.MoveRecord) []DepthThroughput {
	byDepth := map[int]*DepthThroughput{}
	for _, m := range moves {
		if m.Search.Nodes == 0 {
			continue
		}
		t, ok := byDepth[m.Search.Depth]
		if !ok {
			t = &DepthThroughput{Depth: m.Search.Depth}
			byDepth[m.Search.Depth] = t
		}
		t.Moves++
		t.Nodes += m.Search.Nodes
		t.Cutoffs += m.Search.Cutoffs
		t.Duration += m.Search.Duration
	}

	result := make([]DepthThroughput, 0, len(byDepth))
	for _, t := range byDepth {
		result = append(result, *t)
	}
	slices.SortFunc(result, func(a, b DepthThroughput) int { return a.Depth - b.Depth })
	return result
}
