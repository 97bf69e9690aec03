package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prompt-arena/arena-api/internal/models"
)

func newLeaderboardFixture(t *testing.T) (*stubTeamRepo, *redis.Client, LeaderboardService) {
	t.Helper()

	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	teamRepo := &stubTeamRepo{listTeams: []models.Team{
		{ID: 3, Name: "Gamma", TotalScore: 250.5},
		{ID: 1, Name: "Alpha", TotalScore: 180},
		{ID: 2, Name: "Beta", TotalScore: 75.25},
	}}

	return teamRepo, cache, NewLeaderboardService(teamRepo, cache, time.Minute, zerolog.Nop())
}

func TestLeaderboardStandingsAreRanked(t *testing.T) {
	_, _, svc := newLeaderboardFixture(t)

	resp, err := svc.Standings(context.Background())
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Len(t, resp.Entries, 3)

	// The repository already orders by total score; ranks follow list order.
	require.Equal(t, 1, resp.Entries[0].Rank)
	require.Equal(t, "Gamma", resp.Entries[0].Name)
	require.Equal(t, 250.5, resp.Entries[0].TotalScore)
	require.Equal(t, 3, resp.Entries[2].Rank)
	require.Equal(t, "Beta", resp.Entries[2].Name)
}

func TestLeaderboardSecondCallServedFromCache(t *testing.T) {
	teamRepo, _, svc := newLeaderboardFixture(t)

	first, err := svc.Standings(context.Background())
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	// A score change between calls is invisible until the cache expires.
	teamRepo.listTeams[0].TotalScore = 999

	second, err := svc.Standings(context.Background())
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, 250.5, second.Entries[0].TotalScore)
}

func TestLeaderboardCacheExpiryRefreshesStandings(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	teamRepo := &stubTeamRepo{listTeams: []models.Team{{ID: 1, Name: "Alpha", TotalScore: 100}}}
	svc := NewLeaderboardService(teamRepo, cache, time.Second, zerolog.Nop())

	_, err := svc.Standings(context.Background())
	require.NoError(t, err)

	teamRepo.listTeams[0].TotalScore = 150
	server.FastForward(2 * time.Second)

	resp, err := svc.Standings(context.Background())
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Equal(t, 150.0, resp.Entries[0].TotalScore)
}

func TestLeaderboardWorksWithoutCache(t *testing.T) {
	teamRepo := &stubTeamRepo{listTeams: []models.Team{{ID: 1, Name: "Alpha", TotalScore: 100}}}
	svc := NewLeaderboardService(teamRepo, nil, time.Minute, zerolog.Nop())

	resp, err := svc.Standings(context.Background())
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Len(t, resp.Entries, 1)
}

func TestLeaderboardIgnoresCorruptCache(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })
	require.NoError(t, server.Set(leaderboardCacheKey, "{not json"))

	teamRepo := &stubTeamRepo{listTeams: []models.Team{{ID: 1, Name: "Alpha", TotalScore: 100}}}
	svc := NewLeaderboardService(teamRepo, cache, time.Minute, zerolog.Nop())

	resp, err := svc.Standings(context.Background())
	require.NoError(t, err)
	require.False(t, resp.CacheHit)
	require.Equal(t, "Alpha", resp.Entries[0].Name)
}
