package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	leaderboardKey = "connect4:leaderboard"
	agentKeyPrefix = "connect4:agent:"
)

// Redis keeps running per-agent tallies and a leaderboard by wins.
type Redis struct {
	client *redis.Client
}

// OpenRedis connects to url, either a redis:// URL or a host:port address.
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opts := &redis.Options{Addr: url}
	if strings.Contains(url, "://") {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	log.Info().Msg("connected to redis")
	return &Redis{client: client}, nil
}

func agentKey(agent string) string {
	return agentKeyPrefix + agent
}

func (r *Redis) SaveRun(ctx context.Context, run Run) error {
	tallies := Tallies(run.Matchups)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, t := range tallies {
			key := agentKey(t.Agent)
			pipe.HIncrBy(ctx, key, "games", int64(t.Games))
			pipe.HIncrBy(ctx, key, "wins", int64(t.Wins))
			pipe.HIncrBy(ctx, key, "losses", int64(t.Losses))
			pipe.HIncrBy(ctx, key, "ties", int64(t.Ties))
			pipe.HIncrBy(ctx, key, "invalid", int64(t.Invalid))
			pipe.ZIncrBy(ctx, leaderboardKey, float64(t.Wins), t.Agent)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update redis tallies: %w", err)
	}
	log.Info().Msgf("updated redis tallies for %d agents", len(tallies))
	return nil
}

// Leaderboard returns up to n agents ordered by total wins.
func (r *Redis) Leaderboard(ctx context.Context, n int) ([]Tally, error) {
	if n <= 0 {
		return nil, nil
	}
	entries, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	tallies := make([]Tally, 0, len(entries))
	for _, e := range entries {
		name, _ := e.Member.(string)
		t, err := r.Tally(ctx, name)
		if err != nil {
			return nil, err
		}
		tallies = append(tallies, t)
	}
	return tallies, nil
}

func (r *Redis) Tally(ctx context.Context, agent string) (Tally, error) {
	t := Tally{Agent: agent}
	err := r.client.HGetAll(ctx, agentKey(agent)).Scan(&t)
	return t, err
}

func (r *Redis) Close() error {
	return r.client.Close()
}
