package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/repository"
	"github.com/roundonehq/r1-interview-api/pkg/ai"
)

// EvaluationService scores one spoken answer and persists the result.
type EvaluationService interface {
	EvaluateSection1(ctx context.Context, request dto.EvaluateSection1Request) (dto.FinalResult, error)
}

type evaluationService struct {
	candidates repository.CandidateRepository
	evaluator  ai.Evaluator
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewEvaluationService constructs the evaluation orchestrator.
func NewEvaluationService(candidates repository.CandidateRepository, evaluator ai.Evaluator, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		candidates: candidates,
		evaluator:  evaluator,
		validator:  validate,
		logger:     logger.With().Str("component", "evaluation_service").Logger(),
	}
}

// EvaluateSection1 runs the full pipeline: model scoring, aggregation and
// persistence. There are no retries; every failure is fatal for this request
// and surfaces to the caller unchanged. Calling it twice persists twice.
func (s *evaluationService) EvaluateSection1(ctx context.Context, request dto.EvaluateSection1Request) (dto.FinalResult, error) {
	if err := s.validator.Struct(request); err != nil {
		return dto.FinalResult{}, err
	}

	record, err := s.evaluator.Evaluate(ctx, ai.EvaluationInput{
		CandidateID:    request.CandidateID,
		Question:       request.Question,
		Transcript:     request.Transcript,
		ExpectedAnswer: request.ExpectedAnswer,
		NonNegotiables: request.NonNegotiables,
	})
	if err != nil {
		return dto.FinalResult{}, err
	}

	finalScore := record.FinalScore()
	status := record.Status()

	evaluation, err := json.Marshal(record)
	if err != nil {
		return dto.FinalResult{}, fmt.Errorf("marshal evaluation: %w", err)
	}

	if err := s.candidates.SaveSection1(ctx, request.CandidateID, request.Transcript, evaluation, finalScore, status); err != nil {
		return dto.FinalResult{}, err
	}

	s.logger.Info().
		Str("candidate_id", request.CandidateID).
		Int("final_score", finalScore).
		Str("status", status).
		Msg("section 1 answer evaluated")

	return dto.FinalResult{
		EvaluationRecord: record,
		FinalScore:       finalScore,
		Status:           status,
	}, nil
}
