package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/models"
	"github.com/roundonehq/r1-interview-api/internal/repository"
)

// questionBankSchema guards the Section 1 bank file: a malformed bank is a
// deployment mistake and should fail startup, not a candidate request.
const questionBankSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["id", "question", "expected_answer"],
		"properties": {
			"id": {"type": "integer", "minimum": 1},
			"question": {"type": "string", "minLength": 1},
			"expected_answer": {"type": "string", "minLength": 1},
			"non_negotiables": {"type": "string"},
			"what_we_are_testing": {
				"type": "array",
				"items": {"type": "string"}
			}
		}
	}
}`

type questionBankEntry struct {
	ID             int      `json:"id"`
	Question       string   `json:"question"`
	ExpectedAnswer string   `json:"expected_answer"`
	NonNegotiables string   `json:"non_negotiables"`
	SkillsTested   []string `json:"what_we_are_testing"`
}

// QuestionService loads the question bank and serves candidate-facing views.
type QuestionService interface {
	SeedFromFile(ctx context.Context, path string) error
	ListForCandidate(ctx context.Context) ([]dto.QuestionResponse, error)
}

type questionService struct {
	questions repository.QuestionRepository
	schema    *jsonschema.Schema
	logger    zerolog.Logger
}

// NewQuestionService constructs the question bank service.
func NewQuestionService(questions repository.QuestionRepository, logger zerolog.Logger) (QuestionService, error) {
	schema, err := jsonschema.CompileString("section1_questions.json", questionBankSchema)
	if err != nil {
		return nil, fmt.Errorf("compile question bank schema: %w", err)
	}

	return &questionService{
		questions: questions,
		schema:    schema,
		logger:    logger.With().Str("component", "question_service").Logger(),
	}, nil
}

// SeedFromFile validates the bank file against the schema and replaces the
// stored questions with its content.
func (s *questionService) SeedFromFile(ctx context.Context, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read question bank: %w", err)
	}

	var document any
	if err := json.Unmarshal(payload, &document); err != nil {
		return fmt.Errorf("parse question bank: %w", err)
	}
	if err := s.schema.Validate(document); err != nil {
		return fmt.Errorf("invalid question bank: %w", err)
	}

	var entries []questionBankEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return fmt.Errorf("decode question bank: %w", err)
	}

	questions := make([]models.Question, 0, len(entries))
	for _, entry := range entries {
		questions = append(questions, models.Question{
			Prompt:         entry.Question,
			ExpectedAnswer: entry.ExpectedAnswer,
			NonNegotiables: entry.NonNegotiables,
			SkillsTested:   strings.Join(entry.SkillsTested, ", "),
			Position:       entry.ID,
		})
	}

	if err := s.questions.ReplaceAll(ctx, questions); err != nil {
		return err
	}

	s.logger.Info().Int("count", len(questions)).Msg("question bank seeded")
	return nil
}

// ListForCandidate returns the bank without expected answers.
func (s *questionService) ListForCandidate(ctx context.Context) ([]dto.QuestionResponse, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, dto.QuestionResponse{
			ID:           question.ID,
			Prompt:       question.Prompt,
			SkillsTested: question.SkillsTested,
			Position:     question.Position,
		})
	}
	return responses, nil
}
