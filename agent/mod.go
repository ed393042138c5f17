package agent

import (
	"fmt"
	"net/http"
	"strings"

	"connect4/game"
	"connect4/searcher"
)

type Agent interface {
	// Move drops exactly one token for the agent's player into an open column
	// of b. Nothing else on the board may change.
	Move(b *game.Board) error
	Name() string
	Player() game.Cell
}

// SearchReporter is implemented by agents that can report on their last search.
type SearchReporter interface {
	LastSearch() searcher.SearchMetrics
}

// Kind selects one of the available strategies.
type Kind string

const (
	KindRandom       Kind = "random"
	KindBeginner     Kind = "beginner"
	KindIntermediate Kind = "intermediate"
	KindAdvanced     Kind = "advanced"
	KindBrilliant    Kind = "brilliant"
	KindMinimax      Kind = "minimax"
	KindRemote       Kind = "remote"
)

// Opponents lists the local strategies in increasing strength.
var Opponents = []Kind{KindRandom, KindBeginner, KindIntermediate, KindAdvanced, KindBrilliant}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindRandom, KindBeginner, KindIntermediate, KindAdvanced, KindBrilliant, KindMinimax, KindRemote:
		return k, nil
	}
	return "", fmt.Errorf("unknown agent kind %q", s)
}

type Options struct {
	Depth   int    // minimax plies, searcher.DefaultDepth if 0
	Seed    uint64 // random source seed, time based if 0
	URL     string // remote agent server
	Client  *http.Client
	Rows    int // largest board an agent server accepts, the standard board if 0
	Columns int
}

// New builds the agent of the given kind playing player.
func New(kind Kind, player game.Cell, opts Options) (Agent, error) {
	if player != game.Red && player != game.Yellow {
		return nil, game.ErrInvalidPlayer
	}
	switch kind {
	case KindRandom:
		return NewRandom(player, opts.Seed), nil
	case KindBeginner:
		return NewBeginner(player, opts.Seed), nil
	case KindIntermediate:
		return NewIntermediate(player, opts.Seed), nil
	case KindAdvanced:
		return NewAdvanced(player, opts.Seed), nil
	case KindBrilliant:
		return NewBrilliant(player), nil
	case KindMinimax:
		depth := opts.Depth
		if depth <= 0 {
			depth = searcher.DefaultDepth
		}
		return NewMinimax(player, searcher.WithDepth(depth), searcher.WithMetrics()), nil
	case KindRemote:
		if opts.URL == "" {
			return nil, fmt.Errorf("remote agent needs a server URL")
		}
		return NewRemote(player, opts.URL, opts.Client), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", kind)
}

// commit places column for player on the live board.
func commit(b *game.Board, column int, player game.Cell) error {
	if _, err := b.Place(column, player); err != nil {
		return fmt.Errorf("%s cannot play column %d: %w", player, column, err)
	}
	return nil
}
