package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/challenge-server/middleware"
	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/testutil"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/claims", middleware.VerifyAccessToken(), func(c *gin.Context) {
		claims, _ := middleware.ClaimsFrom(c)
		c.String(http.StatusOK, claims.Subject)
	})
	r.GET("/me", append(middleware.Authenticated(), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.CurrentUser(c).ID)
	})...)
	r.PUT("/challenges/:id", append(middleware.Authenticated(), middleware.CheckChallengeOwner(), func(c *gin.Context) {
		ch := c.MustGet(middleware.CtxChallenge).(models.Challenge)
		c.String(http.StatusOK, ch.ID)
	})...)
	return r
}

func get(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyAccessToken(t *testing.T) {
	testutil.UseDB(t)
	r := newRouter()

	w := get(r, http.MethodGet, "/claims", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, http.MethodGet, "/claims", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// user chưa có trong DB vẫn qua được bước xác minh token
	ghost := models.User{AuthID: "auth0|ghost"}
	w = get(r, http.MethodGet, "/claims", testutil.Token(t, ghost))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "auth0|ghost", w.Body.String())
}

func TestAttachUser(t *testing.T) {
	db := testutil.UseDB(t)
	r := newRouter()
	alice := testutil.CreateUser(t, db, "Alice")

	w := get(r, http.MethodGet, "/me", testutil.Token(t, alice))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, alice.ID, w.Body.String())

	w = get(r, http.MethodGet, "/me", testutil.Token(t, models.User{AuthID: "auth0|ghost"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckChallengeOwner(t *testing.T) {
	db := testutil.UseDB(t)
	r := newRouter()
	owner := testutil.CreateUser(t, db, "Owner")
	other := testutil.CreateUser(t, db, "Other")
	ch := testutil.CreateChallenge(t, db, owner, "Plank month")

	w := get(r, http.MethodPut, "/challenges/"+ch.ID, testutil.Token(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ch.ID, w.Body.String())

	w = get(r, http.MethodPut, "/challenges/"+ch.ID, testutil.Token(t, other))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, http.MethodPut, "/challenges/missing", testutil.Token(t, owner))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
