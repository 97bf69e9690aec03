package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prompt-arena/arena-api/internal/models"
)

func newProgressFixture() (*stubSubmissionRepo, *stubTeamRepo, ProgressService) {
	submissionRepo := &stubSubmissionRepo{}
	teamRepo := &stubTeamRepo{team: models.Team{ID: 1, Name: "Alpha", TotalScore: 140}}
	return submissionRepo, teamRepo, NewProgressService(submissionRepo, teamRepo, zerolog.Nop())
}

func TestProgressFreshTeamStartsAtRoundOne(t *testing.T) {
	_, _, svc := newProgressFixture()

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, uint(1), resp.TeamID)
	require.Equal(t, 140.0, resp.TotalScore)
	require.Len(t, resp.Rounds, 3)

	require.True(t, resp.Rounds[0].Accessible)
	require.False(t, resp.Rounds[1].Unlocked)
	require.False(t, resp.Rounds[1].Accessible)
	require.False(t, resp.Rounds[2].Accessible)
}

func TestProgressCompletedRoundUnlocksTheNext(t *testing.T) {
	submissionRepo, _, svc := newProgressFixture()
	submissionRepo.stored = []models.Submission{
		{ID: 1, TeamID: 1, Round: 1, Score: 55},
		{ID: 2, TeamID: 1, Round: 1, Score: 72.5},
	}

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	first := resp.Rounds[0]
	require.True(t, first.Completed)
	require.NotNil(t, first.BestScore)
	require.Equal(t, 72.5, *first.BestScore)
	require.Equal(t, 2, first.Attempts)
	require.True(t, first.Locked, "a completed round is closed to further attempts")

	second := resp.Rounds[1]
	require.True(t, second.Accessible)
	require.False(t, second.Completed)
}

func TestProgressUnknownTeam(t *testing.T) {
	_, _, svc := newProgressFixture()

	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrTeamNotFound)
}
