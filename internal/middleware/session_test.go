package middleware

import (
	"careerquest_portal/internal/config"
	"careerquest_portal/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(cfg *config.Config, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(util.ContextConfigKey, cfg)
		c.Next()
	})
	r.GET("/", mw, func(c *gin.Context) {
		key := ""
		if claims := util.GetSessionFromContext(c); claims != nil {
			key = claims.SessionKey
		}
		c.String(http.StatusOK, key)
	})
	return r
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Session.CookieName = "careerquest_session"
	return cfg
}

func TestSessionMiddleware(t *testing.T) {
	cfg := testConfig()
	token, err := util.GenerateSessionToken("careerQuestUser:1", cfg.JWT.Secret, time.Hour)
	require.NoError(t, err)
	r := newRouter(cfg, SessionMiddleware())

	t.Run("bearer header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "careerQuestUser:1", w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: token})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "careerQuestUser:1", w.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("forged", func(t *testing.T) {
		forged, err := util.GenerateSessionToken("careerQuestUser:1", "another-secret", time.Hour)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalSessionMiddleware(t *testing.T) {
	r := newRouter(testConfig(), OptionalSessionMiddleware())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
