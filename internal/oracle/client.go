// Package oracle 封装对外部 CareerQuest Oracle 后端的 REST 调用
package oracle

import (
	"bytes"
	"careerquest_portal/internal/model"
	"careerquest_portal/pkg/logger"
	"careerquest_portal/pkg/monitoring"
	"careerquest_portal/pkg/tracing"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	EndpointHealth    = "/health"
	EndpointLogin     = "/login"
	EndpointTasks     = "/get-tasks"
	EndpointSave      = "/save-answers"
	EndpointAnalyze   = "/analyze"
	EndpointDashboard = "/get-dashboard-data"

	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	HealthTimeout  time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time

	mu             sync.RWMutex
	requestTimeout time.Duration
	healthTimeout  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{},
		now:        time.Now,
	}
	c.UpdateTimeouts(cfg.RequestTimeout, cfg.HealthTimeout)
	return c, nil
}

// UpdateTimeouts 配置热加载时调整超时，非正值回落到默认 5 秒
func (c *Client) UpdateTimeouts(request, health time.Duration) {
	if request <= 0 {
		request = defaultTimeout
	}
	if health <= 0 {
		health = defaultTimeout
	}
	c.mu.Lock()
	c.requestTimeout = request
	c.healthTimeout = health
	c.mu.Unlock()
}

func (c *Client) timeouts() (request, health time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requestTimeout, c.healthTimeout
}

func (c *Client) Health(ctx context.Context) error {
	_, health := c.timeouts()
	return c.do(ctx, http.MethodGet, EndpointHealth, nil, nil, health, nil)
}

func (c *Client) Login(ctx context.Context, name string, grade int) (*model.Session, error) {
	req := map[string]any{"name": name, "grade": grade}
	var s *model.Session
	err := c.call(ctx, http.MethodPost, EndpointLogin, nil, req, func(body []byte) (err error) {
		s, err = model.DecodeSession(body, name, grade, c.now())
		return err
	})
	return s, err
}

func (c *Client) GetTasks(ctx context.Context, grade int) ([]model.Task, error) {
	q := url.Values{"grade": []string{strconv.Itoa(grade)}}
	var tasks []model.Task
	err := c.call(ctx, http.MethodGet, EndpointTasks, q, nil, func(body []byte) (err error) {
		tasks, err = model.DecodeTasks(body)
		return err
	})
	return tasks, err
}

// SaveAnswers 响应体只作确认，不解析
func (c *Client) SaveAnswers(ctx context.Context, name string, answers []model.AnswerRecord) error {
	return c.call(ctx, http.MethodPost, EndpointSave, nil, model.SaveAnswersRequest{Name: name, Answers: answers}, nil)
}

func (c *Client) Analyze(ctx context.Context, name string) (*model.AnalysisResult, error) {
	var res *model.AnalysisResult
	err := c.call(ctx, http.MethodPost, EndpointAnalyze, nil, map[string]string{"name": name}, func(body []byte) (err error) {
		res, err = model.DecodeAnalysis(body, c.now())
		return err
	})
	return res, err
}

func (c *Client) DashboardData(ctx context.Context, name string) (*model.DashboardStats, error) {
	q := url.Values{"name": []string{name}}
	var stats *model.DashboardStats
	err := c.call(ctx, http.MethodGet, EndpointDashboard, q, nil, func(body []byte) (err error) {
		stats, err = model.DecodeDashboardStats(body)
		return err
	})
	return stats, err
}

// decodeFunc 解析 2xx 响应体，出错时整次调用记为 malformed
type decodeFunc func(body []byte) error

func (c *Client) call(ctx context.Context, method, endpoint string, query url.Values, payload any, decode decodeFunc) error {
	request, _ := c.timeouts()
	return c.do(ctx, method, endpoint, query, payload, request, decode)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, payload any, timeout time.Duration, decode decodeFunc) (err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := tracing.StartClientSpan(ctx, endpoint)
	start := time.Now()
	status := 0
	defer func() {
		elapsed := time.Since(start)
		tracing.EndClientSpan(span, status, err)
		monitoring.ObserveOracle(endpoint, outcomeOf(err), elapsed)
		if err != nil {
			logger.Log.Warn("Oracle request failed",
				zap.String("endpoint", endpoint),
				zap.Int("status", status),
				zap.Duration("elapsed", elapsed),
				zap.Error(err))
			return
		}
		logger.Log.Debug("Oracle request completed",
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed))
	}()

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		data, mErr := json.Marshal(payload)
		if mErr != nil {
			return mErr
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tracing.InjectHeaders(ctx, req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("oracle %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("oracle %s: read body: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	if decode != nil {
		if dErr := decode(body); dErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, endpoint, dErr)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
