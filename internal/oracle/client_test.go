package oracle

import (
	"careerquest_portal/internal/model"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:        server.URL + "/",
		RequestTimeout: time.Second,
		HealthTimeout:  time.Second,
	})
	require.NoError(t, err)
	client.httpClient = server.Client()
	return client
}

func TestNewClient_RejectsBadBaseURL(t *testing.T) {
	for _, base := range []string{"", "localhost:5001", "://nope"} {
		_, err := NewClient(Config{BaseURL: base})
		assert.True(t, errors.Is(err, ErrInvalidBaseURL), base)
	}
}

func TestClient_LoginSendsNameAndGrade(t *testing.T) {
	var got struct {
		Name  string `json:"name"`
		Grade int    `json:"grade"`
	}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, EndpointLogin, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"name":"Ava","grade":7,"answers":[],"report_history":[]}`))
	}))

	s, err := client.Login(context.Background(), "Ava", 7)
	require.NoError(t, err)

	assert.Equal(t, "Ava", got.Name)
	assert.Equal(t, 7, got.Grade)
	assert.Equal(t, "Ava", s.Name)
	assert.Equal(t, 7, s.Grade)
	assert.NotEmpty(t, s.ID)
}

func TestClient_GetTasksPassesGrade(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, EndpointTasks, r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("grade"))
		_, _ = w.Write([]byte(`[{"id":"task1","title":"Logical Reasoning","description":"Portrait"}]`))
	}))

	tasks, err := client.GetTasks(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task1", tasks[0].ID)
}

func TestClient_SaveAnswersAndAnalyze(t *testing.T) {
	var saved model.SaveAnswersRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case EndpointSave:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
			_, _ = w.Write([]byte(`{"message":"Answers saved successfully."}`))
		case EndpointAnalyze:
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Ava", req["name"])
			_, _ = w.Write([]byte(`{"career_path":"Healthcare"}`))
		default:
			http.NotFound(w, r)
		}
	}))

	answers := []model.AnswerRecord{{TaskID: "1", TaskTitle: "Problem Solving Challenge", Answer: "I asked for help", ElapsedSeconds: 12}}
	require.NoError(t, client.SaveAnswers(context.Background(), "Ava", answers))
	assert.Equal(t, "Ava", saved.Name)
	assert.Equal(t, answers, saved.Answers)

	res, err := client.Analyze(context.Background(), "Ava")
	require.NoError(t, err)
	assert.Equal(t, "Healthcare", res.CareerCluster)
	assert.Equal(t, model.SourceOracle, res.Source)
}

func TestClient_DashboardData(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Ava Lee", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"quests_completed":2,"skill_timeline":["Tech","Arts"]}`))
	}))

	stats, err := client.DashboardData(context.Background(), "Ava Lee")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.QuestsCompleted)
	assert.Equal(t, []string{"Tech", "Arts"}, stats.SkillTimeline)
}

func TestClient_StatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"The Oracle is currently busy. Please try again later."}`))
	}))

	_, err := client.Analyze(context.Background(), "Ava")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, EndpointAnalyze, statusErr.Endpoint)
	assert.Equal(t, "http_error", outcomeOf(err))
}

func TestClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))

	_, err := client.GetTasks(context.Background(), 7)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.True(t, errors.Is(err, model.ErrMalformedPayload))
	assert.Equal(t, "malformed", outcomeOf(err))
}

func TestClient_HealthTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)
	client.UpdateTimeouts(time.Second, 50*time.Millisecond)

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Equal(t, "timeout", outcomeOf(err))
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: base})
	require.NoError(t, err)

	err = client.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, "network", outcomeOf(err))
}

func TestClient_UpdateTimeoutsDefaults(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://oracle.local"})
	require.NoError(t, err)

	request, health := client.timeouts()
	assert.Equal(t, defaultTimeout, request)
	assert.Equal(t, defaultTimeout, health)

	client.UpdateTimeouts(2*time.Second, 0)
	request, health = client.timeouts()
	assert.Equal(t, 2*time.Second, request)
	assert.Equal(t, defaultTimeout, health)
}
