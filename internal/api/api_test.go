package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/engine"
	"github.com/ericogr/giera/internal/game"
	"github.com/ericogr/giera/internal/gateway"
	"github.com/ericogr/giera/internal/service"
	"github.com/ericogr/giera/internal/storage"
	"github.com/ericogr/giera/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	d      *gateway.Dispatcher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv(constants.EnvSessionSecret, "test-secret")

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := storage.OpenDB("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	d := gateway.NewDispatcher(1, 64)
	d.Start(context.Background())
	t.Cleanup(func() { _ = d.Close() })

	svc := service.New(storage.NewSQLiteRepository(db), d, service.Options{
		Characters:  game.DefaultCharacters,
		Map:         world.DefaultSettings(),
		UpgradeCost: 5,
	})
	return &testServer{router: NewRouter(NewGameHandler(svc), NewAuthHandler(time.Hour)), d: d}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func sessionCookie(t *testing.T, email string, ttl time.Duration) *http.Cookie {
	t.Helper()
	tok, err := createSessionToken(email, "Ana", ttl)
	require.NoError(t, err)
	return &http.Cookie{Name: constants.CookieSessionName, Value: tok}
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	s, _ := body[constants.JSONKeyError].(string)
	return s
}

func TestVersion(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "commit")
}

func TestListCharacters(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/characters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Characters []string `json:"characters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, game.DefaultCharacters, body.Characters)
}

func TestGuestRun_KeepsIdentityThroughCookie(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/run", map[string]string{"character": game.CharacterWhiteKnight})
	require.Equal(t, http.StatusCreated, w.Code)
	guest := cookieNamed(w, constants.CookieGuestName)
	require.NotNil(t, guest)
	assert.Regexp(t, "^[a-f0-9]{32}$", guest.Value)

	var run service.RunView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, game.CharacterWhiteKnight, run.Stats.Character)
	assert.Equal(t, 10, run.MapSize)

	w = s.do(t, http.MethodGet, "/api/run", nil, guest)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, cookieNamed(w, constants.CookieGuestName))

	// a new visitor has no run
	w = s.do(t, http.MethodGet, "/api/run", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, constants.ErrNoRun, errorOf(t, w))
}

func TestStartRun_UnknownCharacter(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/run", map[string]string{"character": "Wizard"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.ErrUnknownCharacter, errorOf(t, w))
}

func TestRunEndpoints_Errors(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/run", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	guest := cookieNamed(w, constants.CookieGuestName)

	w = s.do(t, http.MethodPost, "/api/run/move", map[string]string{"direction": "north"}, guest)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.ErrInvalidDirection, errorOf(t, w))

	w = s.do(t, http.MethodPost, "/api/run/encounter/action", map[string]string{"action": "melee"}, guest)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, constants.ErrNoEncounter, errorOf(t, w))

	w = s.do(t, http.MethodGet, "/api/run/encounter", nil, guest)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/run/shop/upgrade", map[string]string{"stat": "strength"}, guest)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, constants.ErrInsufficientGold, errorOf(t, w))

	w = s.do(t, http.MethodPost, "/api/run/shop/upgrade", map[string]string{"stat": "luck"}, guest)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/run/defeat/ack", nil, guest)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, constants.ErrRunNotDefeated, errorOf(t, w))

	w = s.do(t, http.MethodGet, "/api/run/shop", nil, guest)
	require.Equal(t, http.StatusOK, w.Code)
	var shop service.ShopView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shop))
	assert.Equal(t, 5, shop.Cost)
	assert.False(t, shop.CanAfford)
}

func TestHistory_RequiresSignIn(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/history", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, constants.ErrAuthRequired, errorOf(t, w))
}

func TestSignedInSaveAndExit_ShowsInHistoryAndLeaderboard(t *testing.T) {
	s := newTestServer(t)
	sess := sessionCookie(t, "ana@example.com", time.Hour)

	w := s.do(t, http.MethodPost, "/api/run", nil, sess)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, cookieNamed(w, constants.CookieGuestName))

	w = s.do(t, http.MethodPost, "/api/run/save-exit", nil, sess)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, s.d.Close())

	w = s.do(t, http.MethodGet, "/api/history", nil, sess)
	require.Equal(t, http.StatusOK, w.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "ana@example.com", history[0]["email"])
	assert.Contains(t, history[0], "created_at")

	w = s.do(t, http.MethodGet, "/api/leaderboard?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	require.Len(t, board, 1)
	assert.NotContains(t, board[0], "email")

	w = s.do(t, http.MethodGet, "/api/leaderboard", nil, sess)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	require.Len(t, board, 1)
	assert.Equal(t, "ana@example.com", board[0]["email"])
}

func TestIdentity_BadSessionFallsBackToGuest(t *testing.T) {
	s := newTestServer(t)
	bad := &http.Cookie{Name: constants.CookieSessionName, Value: "not-a-token"}
	w := s.do(t, http.MethodPost, "/api/run", nil, bad)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, cookieNamed(w, constants.CookieGuestName))
	cleared := cookieNamed(w, constants.CookieSessionName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestSessionToken(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "one")
	tok, err := createSessionToken("ana@example.com", "Ana", time.Hour)
	require.NoError(t, err)

	claims, err := parseAndValidateSession(tok)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, "Ana", claims.Name)

	expired, err := createSessionToken("ana@example.com", "Ana", -time.Minute)
	require.NoError(t, err)
	_, err = parseAndValidateSession(expired)
	assert.Error(t, err)

	t.Setenv(constants.EnvSessionSecret, "two")
	_, err = parseAndValidateSession(tok)
	assert.Error(t, err)
}

func TestGoogleCallback_Validation(t *testing.T) {
	s := newTestServer(t)
	t.Setenv(constants.EnvGoogleClientID, "")
	t.Setenv(constants.EnvGoogleClientSecret, "")

	w := s.do(t, http.MethodPost, "/auth/google/oauth2callback", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.ErrInvalidRequest, errorOf(t, w))

	w = s.do(t, http.MethodPost, "/auth/google/oauth2callback", map[string]string{"code": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, constants.ErrMissingGoogleEnv, errorOf(t, w))
}

func TestLogout_ClearsSession(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/auth/logout", nil, sessionCookie(t, "ana@example.com", time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	c := cookieNamed(w, constants.CookieSessionName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
}

func TestWriteServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{service.ErrNoRun, http.StatusNotFound, constants.ErrNoRun},
		{service.ErrRunDefeated, http.StatusConflict, constants.ErrRunDefeated},
		{service.ErrEncounterActive, http.StatusConflict, constants.ErrEncounterActive},
		{engine.ErrUnknownAction, http.StatusBadRequest, constants.ErrInvalidAction},
		{fmt.Errorf("load gold: %w", errors.New("db locked")), http.StatusInternalServerError, constants.ErrInternal},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		writeServiceError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Equal(t, tc.msg, errorOf(t, w))
	}
}
