package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/service"
	"github.com/roundonehq/r1-interview-api/internal/utils"
)

// InterviewHandler handles the candidate-facing interview flow.
type InterviewHandler struct {
	interviews service.InterviewService
	questions  service.QuestionService
	logger     zerolog.Logger
}

// NewInterviewHandler constructs an interview handler.
func NewInterviewHandler(interviews service.InterviewService, questions service.QuestionService, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		interviews: interviews,
		questions:  questions,
		logger:     logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register wires interview routes.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Get("/questions", h.listQuestions)
	router.Post("/section1/answer", h.answerSection1)
	router.Post("/section2", h.saveSection2)
	router.Post("/submit", h.submit)
}

func (h *InterviewHandler) listQuestions(c *fiber.Ctx) error {
	questions, err := h.questions.ListForCandidate(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list questions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list questions")
	}

	return utils.SendSuccess(c, "questions retrieved", questions)
}

func (h *InterviewHandler) answerSection1(c *fiber.Ctx) error {
	candidateID := candidateIDFromContext(c)
	if candidateID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	questionID, err := strconv.ParseUint(c.FormValue("question_id"), 10, 32)
	if err != nil || questionID == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "question_id is required")
	}

	file, err := c.FormFile("audio")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "audio file is required")
	}

	opened, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read audio file")
	}
	defer opened.Close()

	audio, err := io.ReadAll(opened)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read audio file")
	}

	response, err := h.interviews.AnswerSection1(c.Context(), candidateID, uint(questionID), audio)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "candidate not found")
		case errors.Is(err, service.ErrQuestionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "question not found")
		case errors.Is(err, service.ErrUnsupportedAudio):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "unsupported audio format")
		default:
			requestLogger(h.logger, c).Error().Err(err).Str("candidate_id", candidateID).Msg("section 1 evaluation failed")
			return utils.SendError(c, fiber.StatusBadGateway, "evaluation failed")
		}
	}

	return utils.SendSuccess(c, "answer evaluated", response)
}

func (h *InterviewHandler) saveSection2(c *fiber.Ctx) error {
	candidateID := candidateIDFromContext(c)
	if candidateID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.Section2Request
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.interviews.SaveSection2(c.Context(), candidateID, payload); err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "candidate not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Str("candidate_id", candidateID).Msg("failed to save section 2")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save answer")
		}
	}

	return utils.SendSuccess(c, "answer saved", nil)
}

func (h *InterviewHandler) submit(c *fiber.Ctx) error {
	candidateID := candidateIDFromContext(c)
	if candidateID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.interviews.Submit(c.Context(), candidateID); err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "candidate not found")
		case errors.Is(err, service.ErrSectionOrder):
			return utils.SendError(c, fiber.StatusConflict, "previous section not completed")
		default:
			requestLogger(h.logger, c).Error().Err(err).Str("candidate_id", candidateID).Msg("failed to submit interview")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit interview")
		}
	}

	return utils.SendSuccess(c, "interview submitted", nil)
}
