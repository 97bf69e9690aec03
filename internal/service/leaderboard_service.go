package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prompt-arena/arena-api/internal/dto"
	"github.com/prompt-arena/arena-api/internal/observability"
	"github.com/prompt-arena/arena-api/internal/repository"
)

// LeaderboardService serves the ranked team standings.
type LeaderboardService interface {
	Standings(ctx context.Context) (dto.LeaderboardResponse, error)
}

const leaderboardCacheKey = "arena:leaderboard"

type leaderboardService struct {
	teams  repository.TeamRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewLeaderboardService constructs the leaderboard service. The cache client
// is optional; without it every call hits the database.
func NewLeaderboardService(teamRepo repository.TeamRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) LeaderboardService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &leaderboardService{
		teams:  teamRepo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "leaderboard_service").Logger(),
	}
}

func (s *leaderboardService) Standings(ctx context.Context) (dto.LeaderboardResponse, error) {
	if cached, ok := s.fetchCache(ctx); ok {
		cached.CacheHit = true
		observability.LeaderboardRequests().WithLabelValues("hit").Inc()
		return cached, nil
	}

	teams, err := s.teams.List(ctx)
	if err != nil {
		observability.LeaderboardRequests().WithLabelValues("error").Inc()
		return dto.LeaderboardResponse{}, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(teams))
	for i, team := range teams {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:       i + 1,
			TeamID:     team.ID,
			Name:       team.Name,
			TotalScore: team.TotalScore,
		})
	}

	result := dto.LeaderboardResponse{Entries: entries}
	s.writeCache(ctx, result)
	observability.LeaderboardRequests().WithLabelValues("miss").Inc()

	return result, nil
}

func (s *leaderboardService) fetchCache(ctx context.Context) (dto.LeaderboardResponse, bool) {
	if s.cache == nil {
		return dto.LeaderboardResponse{}, false
	}

	payload, err := s.cache.Get(ctx, leaderboardCacheKey).Result()
	if err != nil {
		return dto.LeaderboardResponse{}, false
	}

	var result dto.LeaderboardResponse
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode leaderboard cache")
		return dto.LeaderboardResponse{}, false
	}
	return result, true
}

func (s *leaderboardService) writeCache(ctx context.Context, result dto.LeaderboardResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode leaderboard cache")
		return
	}

	if err := s.cache.Set(ctx, leaderboardCacheKey, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store leaderboard cache")
	}
}
