package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/roundonehq/r1-interview-api/internal/models"
	"github.com/roundonehq/r1-interview-api/internal/repository"
)

func newDashboardFixture(t *testing.T) (*stubCandidateRepo, *redis.Client, AdminDashboardService) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	score := 7
	repo := &stubCandidateRepo{
		candidate: models.Candidate{
			CandidateID: "CAND-1",
			Name:        "Ada",
			Email:       "ada@example.com",
			Status:      models.CandidateStatusPass,
			S1Score:     &score,
		},
	}

	svc := NewAdminDashboardService(repo, cache, time.Minute, zerolog.Nop())
	return repo, cache, svc
}

func TestGetDashboardAggregatesStatuses(t *testing.T) {
	_, _, svc := newDashboardFixture(t)

	response, err := svc.GetDashboard(context.Background(), repository.CandidateFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, response.Total)
	require.Equal(t, 1, response.ByStatus[models.CandidateStatusPass])
	require.Len(t, response.Candidates, 1)
	require.Equal(t, "CAND-1", response.Candidates[0].CandidateID)
	require.NotNil(t, response.Candidates[0].S1Score)
	require.Equal(t, 7, *response.Candidates[0].S1Score)
}

func TestGetDashboardServesUnfilteredViewFromCache(t *testing.T) {
	repo, cache, svc := newDashboardFixture(t)

	first, err := svc.GetDashboard(context.Background(), repository.CandidateFilter{})
	require.NoError(t, err)

	exists, err := cache.Exists(context.Background(), dashboardCacheKey).Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), exists)

	// Database changes are invisible until the cache entry expires.
	repo.candidate.Name = "Renamed"
	second, err := svc.GetDashboard(context.Background(), repository.CandidateFilter{})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGetDashboardFilteredViewBypassesCache(t *testing.T) {
	repo, cache, svc := newDashboardFixture(t)

	_, err := svc.GetDashboard(context.Background(), repository.CandidateFilter{})
	require.NoError(t, err)

	repo.candidate.Name = "Renamed"
	status := models.CandidateStatusPass
	filtered, err := svc.GetDashboard(context.Background(), repository.CandidateFilter{Status: &status})
	require.NoError(t, err)
	require.Equal(t, "Renamed", filtered.Candidates[0].Name)

	// The filtered run must not overwrite the unfiltered cache entry.
	cached, err := cache.Get(context.Background(), dashboardCacheKey).Result()
	require.NoError(t, err)
	require.Contains(t, cached, "Ada")
}

func TestGetDashboardWithoutCacheClient(t *testing.T) {
	score := 7
	repo := &stubCandidateRepo{
		candidate: models.Candidate{
			CandidateID: "CAND-1",
			Status:      models.CandidateStatusPass,
			S1Score:     &score,
		},
	}
	svc := NewAdminDashboardService(repo, nil, time.Minute, zerolog.Nop())

	response, err := svc.GetDashboard(context.Background(), repository.CandidateFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, response.Total)
}

func TestExportCSV(t *testing.T) {
	_, _, svc := newDashboardFixture(t)

	payload, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "candidate_id,name,email,status,s1_score,s2_score,updated_at", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "CAND-1,Ada,ada@example.com,pass,7,,"))
}
