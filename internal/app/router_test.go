package app

import (
	"bytes"
	"careerquest_portal/internal/config"
	"careerquest_portal/internal/model"
	"careerquest_portal/internal/oracle"
	"careerquest_portal/internal/repository"
	"careerquest_portal/internal/session"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testPortal struct {
	t      *testing.T
	app    *App
	token  string
	cookie *http.Cookie
}

func healthyOracle() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(oracle.EndpointHealth, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc(oracle.EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u-1","name":"Ava","grade":7}`))
	})
	mux.HandleFunc(oracle.EndpointTasks, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"t1","title":"Build a bridge","description":"..."},{"id":"t2","title":"Plan a trip","description":"..."}]`))
	})
	mux.HandleFunc(oracle.EndpointSave, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc(oracle.EndpointAnalyze, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"career_cluster":"Engineering","skill_superpower":"Builder"}`))
	})
	mux.HandleFunc(oracle.EndpointDashboard, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quests_completed":5,"skill_timeline":["Engineering",null]}`))
	})
	return mux
}

func brokenOracle() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
}

func newTestPortal(t *testing.T, handler http.Handler) *testPortal {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Oracle: config.OracleConfig{
			BaseURL:        server.URL,
			RequestTimeout: time.Second,
			HealthTimeout:  time.Second,
		},
		Session: config.SessionConfig{
			Store:      config.StoreMemory,
			CookieName: "careerquest_session",
			KeyPrefix:  "careerQuestUser",
			TTL:        time.Hour,
		},
		JWT: config.JWTConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			ExpireTime: time.Hour,
		},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a := &App{cfg: cfg, ctx: ctx, cancel: cancel}

	client, err := oracle.NewClient(oracle.Config{
		BaseURL:        cfg.Oracle.BaseURL,
		RequestTimeout: cfg.Oracle.RequestTimeout,
		HealthTimeout:  cfg.Oracle.HealthTimeout,
	})
	require.NoError(t, err)
	a.Oracle = client

	a.services = a.initServices(cfg, repository.NewMemorySessionRepository())
	router := gin.New()
	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, a.initControllers(a.services, cfg))
	a.registerCallbacks(a.services)
	a.Router = router

	return &testPortal{t: t, app: a}
}

func (p *testPortal) do(method, path string, body any) (int, envelope) {
	p.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(p.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	w := httptest.NewRecorder()
	p.app.Router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "careerquest_session" {
			p.cookie = c
		}
	}

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(p.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (p *testPortal) view(env envelope) session.Snapshot {
	p.t.Helper()
	var snap session.Snapshot
	require.NoError(p.t, json.Unmarshal(env.Data, &snap))
	return snap
}

func (p *testPortal) login(name string, grade int) session.Snapshot {
	p.t.Helper()
	code, env := p.do(http.MethodPost, "/api/session/login", gin.H{"name": name, "grade": grade})
	require.Equal(p.t, http.StatusOK, code, env.Message)

	var res struct {
		Token string           `json:"token"`
		View  session.Snapshot `json:"view"`
	}
	require.NoError(p.t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(p.t, res.Token)
	p.token = res.Token
	return res.View
}

func TestPortal_PageWithoutSessionIsLogin(t *testing.T) {
	p := newTestPortal(t, healthyOracle())

	code, env := p.do(http.MethodGet, "/api/page", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.PageLogin, p.view(env).Page)
}

func TestPortal_LoginValidation(t *testing.T) {
	p := newTestPortal(t, healthyOracle())

	code, env := p.do(http.MethodPost, "/api/session/login", gin.H{"name": "  ", "grade": 7})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please enter your name", env.Message)
	assert.JSONEq(t, `{"field":"name"}`, string(env.Data))

	code, env = p.do(http.MethodPost, "/api/session/login", gin.H{"name": "Ava", "grade": 15})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Grade must be between 1 and 12", env.Message)
}

func TestPortal_LoginGradeFromSelect(t *testing.T) {
	p := newTestPortal(t, brokenOracle())

	// 未选择年级时下拉框提交空字符串
	code, env := p.do(http.MethodPost, "/api/session/login", gin.H{"name": "Ava", "grade": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please select your grade", env.Message)
	assert.JSONEq(t, `{"field":"grade"}`, string(env.Data))

	code, env = p.do(http.MethodPost, "/api/session/login", gin.H{"name": "Ava", "grade": "13"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Grade must be between 1 and 12", env.Message)

	code, env = p.do(http.MethodPost, "/api/session/login", gin.H{"name": "Ava", "grade": "7"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var res struct {
		View session.Snapshot `json:"view"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, model.PageDashboard, res.View.Page)
	require.NotNil(t, res.View.Session)
	assert.Equal(t, 7, res.View.Session.Grade)
	assert.True(t, res.View.Session.Mock)
}

func TestPortal_FullQuestAgainstOracle(t *testing.T) {
	p := newTestPortal(t, healthyOracle())

	view := p.login("Ava", 7)
	assert.Equal(t, model.PageDashboard, view.Page)
	assert.Equal(t, "u-1", view.Session.ID)
	require.Len(t, view.Tasks, 2)
	require.NotNil(t, p.cookie)
	assert.True(t, p.cookie.HttpOnly)

	code, env := p.do(http.MethodPost, "/api/quest/start", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.PageTasks, p.view(env).Page)

	code, _ = p.do(http.MethodPut, "/api/quest/answers/t1", gin.H{"answer": "Steel and rope"})
	require.Equal(t, http.StatusOK, code)

	code, env = p.do(http.MethodPost, "/api/quest/tasks/t2/open", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "t2", p.view(env).CurrentTaskID)

	code, env = p.do(http.MethodPost, "/api/quest/complete", nil)
	require.Equal(t, http.StatusOK, code)
	snap := p.view(env)
	assert.Equal(t, model.PageResults, snap.Page)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "Engineering", snap.Result.CareerCluster)
	assert.Equal(t, model.SourceOracle, snap.Result.Source)
	assert.Equal(t, model.DefaultPotentialRoles, snap.Result.PotentialRoles)

	code, env = p.do(http.MethodPost, "/api/results/return", nil)
	require.Equal(t, http.StatusOK, code)
	snap = p.view(env)
	assert.Equal(t, model.PageDashboard, snap.Page)
	assert.NotNil(t, snap.Result)

	code, env = p.do(http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, code)
	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 5, stats.QuestsCompleted)
	assert.Equal(t, []string{"Engineering"}, stats.SkillTimeline)
}

func TestPortal_BackendDownStillCompletes(t *testing.T) {
	p := newTestPortal(t, brokenOracle())

	view := p.login("Ava", 7)
	assert.Equal(t, model.PageDashboard, view.Page)
	assert.True(t, view.Session.Mock)
	assert.Len(t, view.Tasks, 4)
	assert.Equal(t, model.ConnectionServerError, view.Connection.Message)

	code, _ := p.do(http.MethodPost, "/api/quest/start", nil)
	require.Equal(t, http.StatusOK, code)

	code, env := p.do(http.MethodPost, "/api/quest/complete", nil)
	require.Equal(t, http.StatusOK, code)
	snap := p.view(env)
	assert.Equal(t, model.PageResults, snap.Page)
	assert.Equal(t, "Technology & Innovation", snap.Result.CareerCluster)
	assert.Equal(t, model.SourceFallback, snap.Result.Source)

	code, env = p.do(http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, code)
	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.QuestsCompleted)
	assert.Equal(t, model.SourceFallback, stats.Source)
}

func TestPortal_ErrorMapping(t *testing.T) {
	p := newTestPortal(t, healthyOracle())

	code, _ := p.do(http.MethodPost, "/api/quest/start", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	p.login("Ava", 7)

	code, _ = p.do(http.MethodPost, "/api/quest/complete", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = p.do(http.MethodPost, "/api/quest/start", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = p.do(http.MethodPost, "/api/quest/start", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, env := p.do(http.MethodPut, "/api/quest/answers/nope", gin.H{"answer": "x"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Task not found", env.Message)

	code, env = p.do(http.MethodPost, "/api/quest/cancel", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.PageDashboard, p.view(env).Page)
}

func TestPortal_Logout(t *testing.T) {
	p := newTestPortal(t, healthyOracle())
	p.login("Ava", 7)

	code, env := p.do(http.MethodPost, "/api/session/logout", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.PageLogin, p.view(env).Page)
	require.NotNil(t, p.cookie)
	assert.Less(t, p.cookie.MaxAge, 0)

	// 旧令牌仍能通过签名校验，但会话已结束
	code, _ = p.do(http.MethodPost, "/api/quest/start", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = p.do(http.MethodGet, "/api/page", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.PageLogin, p.view(env).Page)
}

func TestPortal_ConnectionAndHealth(t *testing.T) {
	p := newTestPortal(t, healthyOracle())

	code, env := p.do(http.MethodGet, "/api/connection", nil)
	require.Equal(t, http.StatusOK, code)
	var status model.ConnectionStatus
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.True(t, status.Available)
	assert.Equal(t, model.ConnectionOK, status.Message)

	code, env = p.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"session_store":"up"`)
}

func TestPortal_ConfigReloadUpdatesTimeouts(t *testing.T) {
	p := newTestPortal(t, healthyOracle())

	next := *p.app.Config()
	next.Oracle.RequestTimeout = 1500 * time.Millisecond
	next.Oracle.MockLoginDelay = 0
	p.app.reload(&next)

	assert.Equal(t, 1500*time.Millisecond, p.app.Config().Oracle.RequestTimeout)
}

func TestPortal_ConfigReloadUpdatesAllowedOrigins(t *testing.T) {
	p := newTestPortal(t, healthyOracle())

	allowOrigin := func(origin string) string {
		req := httptest.NewRequest(http.MethodGet, "/api/page", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		p.app.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Header().Get("Access-Control-Allow-Origin")
	}

	assert.Empty(t, allowOrigin("https://quest.example.org"))

	next := *p.app.Config()
	next.CORS.AllowedOrigins = []string{"https://quest.example.org"}
	p.app.reload(&next)

	assert.Equal(t, "https://quest.example.org", allowOrigin("https://quest.example.org"))
}
