package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnkhanh/challenge-server/middleware"
	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/routes"
	"github.com/vnkhanh/challenge-server/testutil"
)

type harness struct {
	t  *testing.T
	db *gorm.DB
	r  *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.UseDB(t)
	r := gin.New()
	routes.SetupRoutes(r, middleware.NewKeyedRateLimiter(600, 100, time.Minute))
	return &harness{t: t, db: db, r: r}
}

func (h *harness) do(method, path string, as *models.User, body interface{}) *httptest.ResponseRecorder {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+testutil.Token(h.t, *as))
	}

	w := httptest.NewRecorder()
	h.r.ServeHTTP(w, req)
	return w
}

func (h *harness) user(name string) models.User {
	return testutil.CreateUser(h.t, h.db, name)
}

func (h *harness) challenge(owner models.User, name string) models.Challenge {
	return testutil.CreateChallenge(h.t, h.db, owner, name)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decode[errorBody](t, w)
	require.Equal(t, code, body.Code)
	require.NotEmpty(t, body.Message)
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
