package service

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/models"
	"github.com/roundonehq/r1-interview-api/internal/repository"
	"github.com/roundonehq/r1-interview-api/pkg/cloudinary"
	"github.com/roundonehq/r1-interview-api/pkg/speech"
)

// ErrCandidateNotFound indicates the candidate identifier has no row.
var ErrCandidateNotFound = errors.New("candidate not found")

// ErrQuestionNotFound indicates the requested question does not exist.
var ErrQuestionNotFound = errors.New("question not found")

// ErrUnsupportedAudio indicates the uploaded clip is not a recognized audio format.
var ErrUnsupportedAudio = errors.New("unsupported audio format")

// ErrSectionOrder indicates the candidate tried to skip ahead in the flow.
var ErrSectionOrder = errors.New("previous section not completed")

// InterviewService drives the candidate-facing interview flow.
type InterviewService interface {
	AnswerSection1(ctx context.Context, candidateID string, questionID uint, audio []byte) (dto.Section1AnswerResponse, error)
	SaveSection2(ctx context.Context, candidateID string, payload dto.Section2Request) error
	Submit(ctx context.Context, candidateID string) error
}

type interviewService struct {
	candidates  repository.CandidateRepository
	questions   repository.QuestionRepository
	transcriber speech.Transcriber
	recordings  cloudinary.RecordingStore
	evaluations EvaluationService
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewInterviewService constructs the interview flow service. The recording
// store may be nil, in which case clips are evaluated but not retained.
func NewInterviewService(candidates repository.CandidateRepository, questions repository.QuestionRepository, transcriber speech.Transcriber, recordings cloudinary.RecordingStore, evaluations EvaluationService, validate *validator.Validate, logger zerolog.Logger) InterviewService {
	return &interviewService{
		candidates:  candidates,
		questions:   questions,
		transcriber: transcriber,
		recordings:  recordings,
		evaluations: evaluations,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "interview_service").Logger(),
	}
}

// AnswerSection1 accepts one recorded answer: the clip is transcribed,
// optionally archived for admin playback, then scored and persisted. A failed
// transcription is not distinguishable from a literal transcript here; the
// evaluator scores whatever text came back.
func (s *interviewService) AnswerSection1(ctx context.Context, candidateID string, questionID uint, audio []byte) (dto.Section1AnswerResponse, error) {
	candidate, err := s.candidates.GetByCandidateID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.Section1AnswerResponse{}, ErrCandidateNotFound
		}
		return dto.Section1AnswerResponse{}, err
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.Section1AnswerResponse{}, ErrQuestionNotFound
		}
		return dto.Section1AnswerResponse{}, err
	}

	if detected := mimetype.Detect(audio); !strings.HasPrefix(detected.String(), "audio/") && !strings.HasPrefix(detected.String(), "video/") {
		return dto.Section1AnswerResponse{}, ErrUnsupportedAudio
	}

	recordingURL := ""
	if s.recordings != nil {
		url, uploadErr := s.recordings.UploadRecording(ctx, candidateID, questionID, bytes.NewReader(audio))
		if uploadErr != nil {
			// Archival is best effort; evaluation proceeds without it.
			s.logger.Warn().Err(uploadErr).Str("candidate_id", candidateID).Msg("recording upload failed")
		} else {
			recordingURL = url
			if err := s.candidates.SetSection1Recording(ctx, candidateID, url); err != nil {
				s.logger.Warn().Err(err).Str("candidate_id", candidateID).Msg("failed to store recording url")
			}
		}
	}

	transcript := s.transcriber.Transcribe(ctx, audio)

	result, err := s.evaluations.EvaluateSection1(ctx, dto.EvaluateSection1Request{
		CandidateID:    candidate.CandidateID,
		Transcript:     transcript,
		Question:       question.Prompt,
		ExpectedAnswer: question.ExpectedAnswer,
		NonNegotiables: question.NonNegotiables,
	})
	if err != nil {
		return dto.Section1AnswerResponse{}, err
	}

	return dto.Section1AnswerResponse{
		Transcript:   transcript,
		RecordingURL: recordingURL,
		Result:       result,
	}, nil
}

// SaveSection2 stores the sanitized written answer and advances the status.
func (s *interviewService) SaveSection2(ctx context.Context, candidateID string, payload dto.Section2Request) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if _, err := s.candidates.GetByCandidateID(ctx, candidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCandidateNotFound
		}
		return err
	}

	answer := strings.TrimSpace(s.sanitizer.Sanitize(payload.Answer))
	return s.candidates.SaveSection2(ctx, candidateID, payload.QuestionID, answer, nil)
}

// Submit finalizes the interview once both sections are complete.
func (s *interviewService) Submit(ctx context.Context, candidateID string) error {
	candidate, err := s.candidates.GetByCandidateID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCandidateNotFound
		}
		return err
	}

	if candidate.Status != models.CandidateStatusS2Done {
		return ErrSectionOrder
	}

	return s.candidates.UpdateStatus(ctx, candidateID, models.CandidateStatusSubmitted)
}
