package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prompt-arena/arena-api/internal/dto"
	"github.com/prompt-arena/arena-api/internal/handler"
	"github.com/prompt-arena/arena-api/internal/service"
)

type mockTeamService struct {
	registered dto.TeamResponse
	session    dto.TeamLoginResponse
	err        error
}

func (m *mockTeamService) Register(_ context.Context, payload dto.TeamRegisterRequest) (dto.TeamResponse, error) {
	if m.err != nil {
		return dto.TeamResponse{}, m.err
	}
	return m.registered, nil
}

func (m *mockTeamService) Login(_ context.Context, payload dto.TeamLoginRequest) (dto.TeamLoginResponse, error) {
	if m.err != nil {
		return dto.TeamLoginResponse{}, m.err
	}
	return m.session, nil
}

func (m *mockTeamService) Get(_ context.Context, id uint) (dto.TeamResponse, error) {
	if m.err != nil {
		return dto.TeamResponse{}, m.err
	}
	return m.registered, nil
}

func newTeamApp(svc service.TeamService) *fiber.App {
	app := fiber.New()
	handler.NewTeamHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/teams"))
	return app
}

func TestTeamHandler_RegisterReturnsAccessCode(t *testing.T) {
	svc := &mockTeamService{registered: dto.TeamResponse{ID: 1, Name: "Alpha", AccessCode: "code-123"}}
	app := newTeamApp(svc)

	body, err := json.Marshal(dto.TeamRegisterRequest{Name: "Alpha"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool             `json:"success"`
		Data    dto.TeamResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, "code-123", response.Data.AccessCode)
}

func TestTeamHandler_RegisterDuplicateName(t *testing.T) {
	app := newTeamApp(&mockTeamService{err: service.ErrTeamNameTaken})

	body, err := json.Marshal(dto.TeamRegisterRequest{Name: "Alpha"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestTeamHandler_LoginInvalidCode(t *testing.T) {
	app := newTeamApp(&mockTeamService{err: service.ErrInvalidAccessCode})

	body, err := json.Marshal(dto.TeamLoginRequest{AccessCode: "wrong"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTeamHandler_LoginSuccess(t *testing.T) {
	svc := &mockTeamService{session: dto.TeamLoginResponse{
		Token: "signed-token",
		Team:  dto.TeamResponse{ID: 1, Name: "Alpha"},
	}}
	app := newTeamApp(svc)

	body, err := json.Marshal(dto.TeamLoginRequest{AccessCode: "code-123"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                  `json:"success"`
		Data    dto.TeamLoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "signed-token", response.Data.Token)
	require.Empty(t, response.Data.Team.AccessCode)
}
