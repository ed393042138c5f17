package main

import (
	"context"
	"flag"
	"os"
	"time"

	"connect4/agent"
	"connect4/config"
	"connect4/experiments"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	mode := flag.String("mode", "grade", "grade, match, depth or serve")
	subject := flag.String("agent", string(agent.KindMinimax), "agent to grade or serve")
	red := flag.String("red", string(agent.KindMinimax), "red agent in match mode")
	yellow := flag.String("yellow", string(agent.KindBrilliant), "yellow agent in match mode")
	opponent := flag.String("opponent", string(agent.KindBrilliant), "opponent in depth mode")
	url := flag.String("url", "", "agent server URL for remote agents")
	depth := flag.Int("depth", cfg.SearchDepth, "minimax search depth")
	games := flag.Int("games", cfg.NumGames, "games per matchup")
	flag.Parse()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	options := agent.Options{
		Depth:   *depth,
		Seed:    cfg.RandomSeed,
		URL:     *url,
		Rows:    cfg.BoardRows,
		Columns: cfg.BoardColumns,
	}

	switch *mode {
	case "grade":
		runGrade(cfg, parseKind(*subject), options, *games)
	case "match":
		runMatch(cfg, parseKind(*red), parseKind(*yellow), options, *games)
	case "depth":
		runDepth(cfg, parseKind(*opponent), options, *games)
	case "serve":
		if err := agent.StartAgentServer(cfg.AgentAddr, parseKind(*subject), options); err != nil {
			log.Fatal().Err(err).Msg("agent server stopped")
		}
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func parseKind(s string) agent.Kind {
	kind, err := agent.ParseKind(s)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid agent")
	}
	return kind
}

func runGrade(cfg *config.Config, subject agent.Kind, options agent.Options, games int) {
	g := experiments.NewGrader(subject, options)
	g.Games = games
	g.SelfPlayGames = cfg.SelfPlayGames
	g.Rows = cfg.BoardRows
	g.Columns = cfg.BoardColumns

	report, err := g.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("grading failed")
	}

	if report.InvalidMove {
		log.Warn().Msgf("invalid moves were made, %d points deducted", experiments.InvalidPenalty)
	}
	log.Info().Msgf("project grade: %.2f", report.Grade)

	save(cfg, "grade", report, store.Run{Subject: string(subject), Grade: report.Grade})
}

func runMatch(cfg *config.Config, redKind, yellowKind agent.Kind, options agent.Options, games int) {
	redOptions, yellowOptions := options, options
	if options.Seed != 0 {
		yellowOptions.Seed++
	}
	red, err := agent.New(redKind, game.Red, redOptions)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create red agent")
	}
	yellow, err := agent.New(yellowKind, game.Yellow, yellowOptions)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create yellow agent")
	}

	report := &experiments.Report{}
	if _, err := report.Play(red, yellow, games, cfg.BoardRows, cfg.BoardColumns); err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}

	save(cfg, "match", report, store.Run{Subject: red.Name() + " vs " + yellow.Name()})
}

func runDepth(cfg *config.Config, opponent agent.Kind, options agent.Options, games int) {
	report, err := experiments.RunDepthExperiment(opponent, experiments.Depths, options, games, cfg.BoardRows, cfg.BoardColumns)
	if err != nil {
		log.Fatal().Err(err).Msg("depth experiment failed")
	}

	save(cfg, "depth", report, store.Run{Subject: "minimax depths vs " + string(opponent)})
}

// save writes the CSV records and, when configured, the stores.
func save(cfg *config.Config, name string, report *experiments.Report, run store.Run) {
	writer, err := metrics.NewWriter(cfg.OutputDir, name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create experiment writer")
	}
	if err := report.Write(writer); err != nil {
		log.Fatal().Err(err).Msg("failed to write records")
	}
	log.Info().Msgf("records written to %s", writer.Dir())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	run.CreatedAt = time.Now().UTC()
	run.Matchups = report.Matchups
	for _, s := range openStores(ctx, cfg) {
		if err := s.SaveRun(ctx, run); err != nil {
			log.Error().Err(err).Msg("failed to save run")
		} else if r, ok := s.(*store.Redis); ok {
			logLeaderboard(ctx, r)
		}
		s.Close()
	}
}

const leaderboardSize = 10

func logLeaderboard(ctx context.Context, r *store.Redis) {
	tallies, err := r.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to read leaderboard")
		return
	}
	log.Info().Msg("leaderboard by wins:")
	for i, t := range tallies {
		log.Info().Msgf("%2d. %s: %d wins, %d losses, %d ties, %d invalid in %d games",
			i+1, t.Agent, t.Wins, t.Losses, t.Ties, t.Invalid, t.Games)
	}
}

func openStores(ctx context.Context, cfg *config.Config) []store.Store {
	var stores []store.Store
	if cfg.DatabaseURL != "" {
		p, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("postgres unavailable, skipping")
		} else {
			stores = append(stores, p)
		}
	}
	if cfg.RedisURL != "" {
		r, err := store.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, skipping")
		} else {
			stores = append(stores, r)
		}
	}
	return stores
}
