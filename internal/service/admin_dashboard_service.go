package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/repository"
)

const dashboardCacheKey = "dashboard:candidates"

// AdminDashboardService produces the reviewer-facing results views.
type AdminDashboardService interface {
	GetDashboard(ctx context.Context, filter repository.CandidateFilter) (dto.DashboardResponse, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

type adminDashboardService struct {
	candidates repository.CandidateRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewAdminDashboardService builds the dashboard aggregator. The cache client
// may be nil; listings then always hit the database.
func NewAdminDashboardService(candidates repository.CandidateRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AdminDashboardService {
	return &adminDashboardService{
		candidates: candidates,
		cache:      cache,
		cacheTTL:   ttl,
		logger:     logger.With().Str("component", "admin_dashboard_service").Logger(),
	}
}

// GetDashboard lists candidates with per-status counts. The unfiltered view
// is cached; filtered views bypass the cache.
func (s *adminDashboardService) GetDashboard(ctx context.Context, filter repository.CandidateFilter) (dto.DashboardResponse, error) {
	cacheable := filter.Status == nil

	if cacheable && s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	candidates, err := s.candidates.List(ctx, filter)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		Total:      len(candidates),
		ByStatus:   map[string]int{},
		Candidates: make([]dto.CandidateSummary, 0, len(candidates)),
	}
	for _, candidate := range candidates {
		response.ByStatus[candidate.Status]++
		response.Candidates = append(response.Candidates, dto.NewCandidateSummary(candidate))
	}

	if cacheable && s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

// ExportCSV renders all candidate results as a CSV document.
func (s *adminDashboardService) ExportCSV(ctx context.Context) ([]byte, error) {
	candidates, err := s.candidates.List(ctx, repository.CandidateFilter{})
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"candidate_id", "name", "email", "status", "s1_score", "s2_score", "updated_at"}); err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		s1 := ""
		if candidate.S1Score != nil {
			s1 = strconv.Itoa(*candidate.S1Score)
		}
		s2 := ""
		if candidate.S2Score != nil {
			s2 = strconv.FormatFloat(*candidate.S2Score, 'f', 1, 64)
		}

		row := []string{
			candidate.CandidateID,
			candidate.Name,
			candidate.Email,
			candidate.Status,
			s1,
			s2,
			candidate.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}
	return buf.Bytes(), nil
}
