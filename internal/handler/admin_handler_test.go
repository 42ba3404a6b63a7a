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
	"github.com/roundonehq/r1-interview-api/internal/repository"
	"github.com/roundonehq/r1-interview-api/internal/service"
)

type mockInviteService struct {
	invite     dto.InviteResponse
	inviteErr  error
	bulk       dto.BulkInviteResponse
	bulkErr    error
	lastInvite dto.InviteRequest
	bulkBody   []byte
}

func (m *mockInviteService) Invite(_ context.Context, payload dto.InviteRequest) (dto.InviteResponse, error) {
	m.lastInvite = payload
	if m.inviteErr != nil {
		return dto.InviteResponse{}, m.inviteErr
	}
	return m.invite, nil
}

func (m *mockInviteService) BulkInvite(_ context.Context, reader io.Reader) (dto.BulkInviteResponse, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return dto.BulkInviteResponse{}, err
	}
	m.bulkBody = body
	if m.bulkErr != nil {
		return dto.BulkInviteResponse{}, m.bulkErr
	}
	return m.bulk, nil
}

type mockDashboardService struct {
	dashboard  dto.DashboardResponse
	export     []byte
	err        error
	lastFilter repository.CandidateFilter
}

func (m *mockDashboardService) GetDashboard(_ context.Context, filter repository.CandidateFilter) (dto.DashboardResponse, error) {
	m.lastFilter = filter
	if m.err != nil {
		return dto.DashboardResponse{}, m.err
	}
	return m.dashboard, nil
}

func (m *mockDashboardService) ExportCSV(context.Context) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.export, nil
}

func newAdminApp(invites service.InviteService, dashboard service.AdminDashboardService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/admin", func(c *fiber.Ctx) error {
		c.Locals("user_id", "reviewer")
		c.Locals("user_role", "admin")
		return c.Next()
	})
	handler.NewAdminHandler(invites, dashboard, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestAdminHandler_InviteSuccess(t *testing.T) {
	svc := &mockInviteService{invite: dto.InviteResponse{CandidateID: "CAND-1", Email: "ada@example.com", EmailSent: true}}
	app := newAdminApp(svc, &mockDashboardService{})

	resp := postJSON(t, app, "/api/admin/invites", dto.InviteRequest{CandidateID: "CAND-1", Name: "Ada", Email: "ada@example.com"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "CAND-1", svc.lastInvite.CandidateID)

	var response struct {
		Success bool               `json:"success"`
		Data    dto.InviteResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Data.EmailSent)
}

func TestAdminHandler_BulkInvite(t *testing.T) {
	svc := &mockInviteService{bulk: dto.BulkInviteResponse{Invited: 2, Failed: 1}}
	app := newAdminApp(svc, &mockDashboardService{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "candidates.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("candidate_id,name,email\nCAND-1,Ada,ada@example.com\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/invites/bulk", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, string(svc.bulkBody), "CAND-1")

	var response struct {
		Success bool                   `json:"success"`
		Data    dto.BulkInviteResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, 2, response.Data.Invited)
	require.Equal(t, 1, response.Data.Failed)
}

func TestAdminHandler_BulkInviteMissingFile(t *testing.T) {
	app := newAdminApp(&mockInviteService{}, &mockDashboardService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/invites/bulk", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminHandler_DashboardWithStatusFilter(t *testing.T) {
	svc := &mockDashboardService{dashboard: dto.DashboardResponse{Total: 3, ByStatus: map[string]int{"submitted": 3}}}
	app := newAdminApp(&mockInviteService{}, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard?status=submitted", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, svc.lastFilter.Status)
	require.Equal(t, "submitted", *svc.lastFilter.Status)

	var response struct {
		Success bool                  `json:"success"`
		Data    dto.DashboardResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, 3, response.Data.Total)
}

func TestAdminHandler_DashboardUnfiltered(t *testing.T) {
	svc := &mockDashboardService{}
	app := newAdminApp(&mockInviteService{}, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, svc.lastFilter.Status)
}

func TestAdminHandler_ExportCSV(t *testing.T) {
	svc := &mockDashboardService{export: []byte("candidate_id,name\nCAND-1,Ada\n")}
	app := newAdminApp(&mockInviteService{}, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/export", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "candidates.csv")

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "CAND-1")
}
