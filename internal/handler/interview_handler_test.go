package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/roundonehq/r1-interview-api/internal/dto"
	"github.com/roundonehq/r1-interview-api/internal/handler"
	"github.com/roundonehq/r1-interview-api/internal/service"
	"github.com/roundonehq/r1-interview-api/pkg/ai"
)

type mockInterviewService struct {
	answer    dto.Section1AnswerResponse
	answerErr error
	saveErr   error
	submitErr error

	lastCandidateID string
	lastQuestionID  uint
	lastAudio       []byte
	lastSection2    dto.Section2Request
}

func (m *mockInterviewService) AnswerSection1(_ context.Context, candidateID string, questionID uint, audio []byte) (dto.Section1AnswerResponse, error) {
	m.lastCandidateID = candidateID
	m.lastQuestionID = questionID
	m.lastAudio = audio
	if m.answerErr != nil {
		return dto.Section1AnswerResponse{}, m.answerErr
	}
	return m.answer, nil
}

func (m *mockInterviewService) SaveSection2(_ context.Context, candidateID string, payload dto.Section2Request) error {
	m.lastCandidateID = candidateID
	m.lastSection2 = payload
	return m.saveErr
}

func (m *mockInterviewService) Submit(_ context.Context, candidateID string) error {
	m.lastCandidateID = candidateID
	return m.submitErr
}

type mockQuestionService struct {
	questions []dto.QuestionResponse
	err       error
}

func (m *mockQuestionService) SeedFromFile(context.Context, string) error {
	return m.err
}

func (m *mockQuestionService) ListForCandidate(context.Context) ([]dto.QuestionResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.questions, nil
}

func newInterviewApp(interviews service.InterviewService, questions service.QuestionService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/interview", func(c *fiber.Ctx) error {
		c.Locals("user_id", "CAND-1")
		c.Locals("user_role", "candidate")
		return c.Next()
	})
	handler.NewInterviewHandler(interviews, questions, zerolog.New(io.Discard)).Register(group)
	return app
}

func audioUploadRequest(t *testing.T, questionID string, audio []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("question_id", questionID))

	part, err := writer.CreateFormFile("audio", "answer.wav")
	require.NoError(t, err)
	_, err = part.Write(audio)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/interview/section1/answer", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestInterviewHandler_ListQuestions(t *testing.T) {
	questions := &mockQuestionService{questions: []dto.QuestionResponse{{ID: 1, Prompt: "Q1", Position: 1}}}
	app := newInterviewApp(&mockInterviewService{}, questions)

	req := httptest.NewRequest(http.MethodGet, "/api/interview/questions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                   `json:"success"`
		Data    []dto.QuestionResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Len(t, response.Data, 1)
	require.Equal(t, "Q1", response.Data[0].Prompt)
}

func TestInterviewHandler_AnswerSection1Success(t *testing.T) {
	svc := &mockInterviewService{
		answer: dto.Section1AnswerResponse{
			Transcript: "hello",
			Result: dto.FinalResult{
				EvaluationRecord: ai.EvaluationRecord{Fluency: 8, OverallPass: true},
				FinalScore:       7,
				Status:           "pass",
			},
		},
	}
	app := newInterviewApp(svc, &mockQuestionService{})

	resp, err := app.Test(audioUploadRequest(t, "1", []byte("RIFFxxxxWAVE")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, "CAND-1", svc.lastCandidateID)
	require.Equal(t, uint(1), svc.lastQuestionID)
	require.Equal(t, []byte("RIFFxxxxWAVE"), svc.lastAudio)

	var response struct {
		Success bool                       `json:"success"`
		Data    dto.Section1AnswerResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, 7, response.Data.Result.FinalScore)
	require.Equal(t, "pass", response.Data.Result.Status)
}

func TestInterviewHandler_AnswerSection1MissingAudio(t *testing.T) {
	app := newInterviewApp(&mockInterviewService{}, &mockQuestionService{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("question_id", "1"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/interview/section1/answer", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInterviewHandler_AnswerSection1InvalidQuestionID(t *testing.T) {
	app := newInterviewApp(&mockInterviewService{}, &mockQuestionService{})

	resp, err := app.Test(audioUploadRequest(t, "zero", []byte("RIFF")), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInterviewHandler_AnswerSection1ServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "candidate missing", err: service.ErrCandidateNotFound, statusCode: fiber.StatusNotFound},
		{name: "question missing", err: service.ErrQuestionNotFound, statusCode: fiber.StatusNotFound},
		{name: "bad audio", err: service.ErrUnsupportedAudio, statusCode: fiber.StatusUnsupportedMediaType},
		{name: "model failure", err: ai.ErrMalformedOutput, statusCode: fiber.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newInterviewApp(&mockInterviewService{answerErr: tc.err}, &mockQuestionService{})

			resp, err := app.Test(audioUploadRequest(t, "1", []byte("RIFF")), -1)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestInterviewHandler_SaveSection2(t *testing.T) {
	svc := &mockInterviewService{}
	app := newInterviewApp(svc, &mockQuestionService{})

	resp := postJSON(t, app, "/api/interview/section2", dto.Section2Request{QuestionID: "q2", Answer: "my answer"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "CAND-1", svc.lastCandidateID)
	require.Equal(t, "my answer", svc.lastSection2.Answer)
}

func TestInterviewHandler_SubmitSectionOrder(t *testing.T) {
	svc := &mockInterviewService{submitErr: service.ErrSectionOrder}
	app := newInterviewApp(svc, &mockQuestionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/interview/submit", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestInterviewHandler_RequiresIdentity(t *testing.T) {
	app := fiber.New()
	handler.NewInterviewHandler(&mockInterviewService{}, &mockQuestionService{}, zerolog.New(io.Discard)).
		Register(app.Group("/api/interview"))

	req := httptest.NewRequest(http.MethodPost, "/api/interview/submit", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
