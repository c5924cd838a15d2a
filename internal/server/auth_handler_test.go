package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/types"
)

func registerPayload(role string) string {
	return `{"name":"Test User","email":"test@example.com","password":"password123","role":"` + role + `"}`
}

func TestRegister_Success(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerPayload("recruiter")))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "test@example.com", resp.User.Email)
	assert.Equal(t, types.RoleRecruiter, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	first := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerPayload("recruiter")))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, first)
	require.Equal(t, http.StatusCreated, rec.Code)

	second := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerPayload("recruiter")))
	rec = httptest.NewRecorder()
	s.routes().ServeHTTP(rec, second)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidRole(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerPayload("admin")))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	body := `{"name":"Test","email":"short@example.com","password":"short","role":"candidate"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	reg := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerPayload("candidate")))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, reg)
	require.Equal(t, http.StatusCreated, rec.Code)

	login := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"test@example.com","password":"password123"}`))
	rec = httptest.NewRecorder()
	s.routes().ServeHTTP(rec, login)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	claims, err := s.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, types.RoleCandidate, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	reg := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerPayload("candidate")))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, reg)
	require.Equal(t, http.StatusCreated, rec.Code)

	login := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"test@example.com","password":"wrong-password"}`))
	rec = httptest.NewRecorder()
	s.routes().ServeHTTP(rec, login)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	login := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"nobody@example.com","password":"password123"}`))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, login)

	// Same generic error as a wrong password
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWT_RoundTrip(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	token := authToken(t, s)
	claims, err := s.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, types.RoleRecruiter, claims.Role)
}

func TestJWT_InvalidToken(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	_, err := s.jwtService.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = s.jwtService.ValidateToken("")
	assert.Error(t, err)
}
