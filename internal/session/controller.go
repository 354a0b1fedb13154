// Package session 实现单个浏览器会话的页面状态机：登录、仪表盘、答题、结果。
// 所有对外部后端的调用失败时都降级为本地模拟数据，用户流程不会被阻断。
package session

import (
	"careerquest_portal/internal/fallback"
	"careerquest_portal/internal/model"
	"careerquest_portal/internal/oracle"
	"careerquest_portal/pkg/logger"
	"careerquest_portal/pkg/monitoring"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Backend 外部分析后端，由 oracle.Client 实现
type Backend interface {
	Health(ctx context.Context) error
	Login(ctx context.Context, name string, grade int) (*model.Session, error)
	GetTasks(ctx context.Context, grade int) ([]model.Task, error)
	SaveAnswers(ctx context.Context, name string, answers []model.AnswerRecord) error
	Analyze(ctx context.Context, name string) (*model.AnalysisResult, error)
	DashboardData(ctx context.Context, name string) (*model.DashboardStats, error)
}

// Settings 降级时的模拟延迟，所有控制器共享，支持热更新
type Settings struct {
	mu            sync.RWMutex
	loginDelay    time.Duration
	analysisDelay time.Duration
}

func NewSettings(loginDelay, analysisDelay time.Duration) *Settings {
	s := &Settings{}
	s.Update(loginDelay, analysisDelay)
	return s
}

func (s *Settings) Update(loginDelay, analysisDelay time.Duration) {
	s.mu.Lock()
	s.loginDelay = max(loginDelay, 0)
	s.analysisDelay = max(analysisDelay, 0)
	s.mu.Unlock()
}

func (s *Settings) delays() (login, analysis time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loginDelay, s.analysisDelay
}

// Snapshot 渲染页面所需的只读视图
type Snapshot struct {
	Page          model.Page             `json:"page"`
	Session       *model.Session         `json:"session,omitempty"`
	Tasks         []model.Task           `json:"tasks"`
	Answers       []model.AnswerRecord   `json:"answers"`
	CurrentTaskID string                 `json:"current_task_id,omitempty"`
	Submitting    bool                   `json:"submitting"`
	Busy          bool                   `json:"busy"`
	Result        *model.AnalysisResult  `json:"result,omitempty"`
	Connection    model.ConnectionStatus `json:"connection"`
}

type Controller struct {
	backend  Backend
	catalog  *fallback.Catalog
	settings *Settings
	now      func() time.Time

	mu         sync.Mutex
	page       model.Page
	session    *model.Session
	tasks      []model.Task
	answers    map[string]string
	timer      *Timer
	result     *model.AnalysisResult
	history    []*model.AnalysisResult
	busy       bool
	submitting bool
	connection model.ConnectionStatus
	// generation 每次退出登录递增，用于丢弃退出前发起的请求结果
	generation uint64
	lastActive time.Time
}

type Option func(*Controller)

// WithClock 测试中替换时钟
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func NewController(backend Backend, catalog *fallback.Catalog, settings *Settings, opts ...Option) *Controller {
	if settings == nil {
		settings = NewSettings(0, 0)
	}
	c := &Controller{
		backend:  backend,
		catalog:  catalog,
		settings: settings,
		now:      time.Now,
		page:     model.PageLogin,
		answers:  make(map[string]string),
		connection: model.ConnectionStatus{
			Message: model.ConnectionChecking,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.timer = NewTimer(c.now)
	c.lastActive = c.now()
	return c
}

// ValidateLogin 登录前的同步校验，发生在任何网络请求之前
func ValidateLogin(name string, grade int) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if grade == 0 {
		return ErrGradeRequired
	}
	if grade < model.MinGrade || grade > model.MaxGrade {
		return ErrGradeInvalid
	}
	return nil
}

// Login 校验后尝试通过后端登录并拉取对应年级的任务；任一步失败都降级为模拟会话和固定任务集
func (c *Controller) Login(ctx context.Context, name string, grade int) (Snapshot, error) {
	name = strings.TrimSpace(name)
	if err := ValidateLogin(name, grade); err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	if c.page != model.PageLogin {
		err := transitionError(c.page, model.PageDashboard)
		c.mu.Unlock()
		return Snapshot{}, err
	}
	if c.busy {
		c.mu.Unlock()
		return Snapshot{}, ErrBusy
	}
	c.busy = true
	gen := c.generation
	c.touchLocked()
	c.mu.Unlock()

	sess, tasks := c.authenticate(ctx, name, grade)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return Snapshot{}, ErrInterrupted
	}
	c.busy = false
	c.session = sess
	c.tasks = tasks
	c.answers = make(map[string]string)
	c.timer.Reset()
	c.result = nil
	c.history = nil
	c.page = model.PageDashboard

	logger.Log.Info("User logged in",
		zap.String("name", sess.Name),
		zap.Int("grade", sess.Grade),
		zap.Bool("mock", sess.Mock),
		zap.Int("tasks", len(tasks)))

	return c.snapshotLocked(), nil
}

func (c *Controller) authenticate(ctx context.Context, name string, grade int) (*model.Session, []model.Task) {
	status := c.ConnectionCheck(ctx)
	if status.Available {
		sess, err := c.backend.Login(ctx, name, grade)
		if err == nil {
			tasks, tErr := c.backend.GetTasks(ctx, grade)
			if tErr == nil {
				return sess, tasks
			}
			err = tErr
		}
		logger.Log.Warn("Login against oracle failed, using mock data", zap.String("name", name), zap.Error(err))
	}

	monitoring.RecordFallback("login")
	loginDelay, _ := c.settings.delays()
	wait(ctx, loginDelay)
	return c.catalog.Session(name, grade, c.now()), c.catalog.Tasks()
}

// Restore 用缓存的会话记录恢复状态，直接进入仪表盘
func (c *Controller) Restore(ctx context.Context, sess *model.Session) (Snapshot, error) {
	if sess == nil {
		return Snapshot{}, ErrNoSession
	}
	if err := ValidateLogin(sess.Name, sess.Grade); err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	if c.page != model.PageLogin {
		err := transitionError(c.page, model.PageDashboard)
		c.mu.Unlock()
		return Snapshot{}, err
	}
	if c.busy {
		c.mu.Unlock()
		return Snapshot{}, ErrBusy
	}
	c.busy = true
	gen := c.generation
	c.mu.Unlock()

	var tasks []model.Task
	if !sess.Mock {
		var err error
		tasks, err = c.backend.GetTasks(ctx, sess.Grade)
		if err != nil {
			logger.Log.Warn("Reloading tasks for restored session failed, using fixed tasks", zap.Error(err))
			tasks = nil
		}
	}
	if len(tasks) == 0 {
		monitoring.RecordFallback("restore")
		tasks = c.catalog.Tasks()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return Snapshot{}, ErrInterrupted
	}
	restored := *sess
	c.busy = false
	c.session = &restored
	c.tasks = tasks
	c.answers = make(map[string]string)
	c.timer.Reset()
	c.page = model.PageDashboard
	c.touchLocked()
	return c.snapshotLocked(), nil
}

// StartAssessment dashboard -> tasks，不发起网络请求
func (c *Controller) StartAssessment() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.moveLocked(model.PageTasks); err != nil {
		return Snapshot{}, err
	}
	c.answers = make(map[string]string)
	c.timer.Reset()
	if len(c.tasks) > 0 {
		c.timer.Start(c.tasks[0].ID)
	}
	return c.snapshotLocked(), nil
}

// OpenTask 在答题页内切换当前任务
func (c *Controller) OpenTask(taskID string) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(taskID); err != nil {
		return Snapshot{}, err
	}
	if c.timer.Current() != taskID {
		c.timer.Start(taskID)
	}
	c.touchLocked()
	return c.snapshotLocked(), nil
}

// RecordAnswer 按任务 id 覆盖写入答案
func (c *Controller) RecordAnswer(taskID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(taskID); err != nil {
		return err
	}
	c.answers[taskID] = text
	c.touchLocked()
	return nil
}

func (c *Controller) editableLocked(taskID string) error {
	if c.page != model.PageTasks {
		return ErrInvalidTransition
	}
	if c.submitting {
		return ErrSubmitting
	}
	if c.findTaskLocked(taskID) < 0 {
		return ErrUnknownTask
	}
	return nil
}

// CompleteAssessment 提交答案并请求分析。保存或分析任一步失败都在模拟延迟后使用本地报告，最终一定进入结果页
func (c *Controller) CompleteAssessment(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.page != model.PageTasks {
		err := transitionError(c.page, model.PageResults)
		c.mu.Unlock()
		return Snapshot{}, err
	}
	if c.submitting {
		c.mu.Unlock()
		return Snapshot{}, ErrSubmitting
	}
	c.submitting = true
	c.timer.Stop()
	batch := c.answerBatchLocked()
	name := c.session.Name
	gen := c.generation
	c.touchLocked()
	c.mu.Unlock()

	result := c.analyze(ctx, name, batch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return Snapshot{}, ErrInterrupted
	}
	c.submitting = false
	c.result = result
	c.history = append(c.history, result)
	c.page = model.PageResults

	logger.Log.Info("Assessment completed",
		zap.String("name", name),
		zap.String("career_cluster", result.CareerCluster),
		zap.String("source", string(result.Source)),
		zap.Bool("feedback_only", result.IsFeedbackOnly()))

	return c.snapshotLocked(), nil
}

func (c *Controller) analyze(ctx context.Context, name string, batch []model.AnswerRecord) *model.AnalysisResult {
	err := c.backend.SaveAnswers(ctx, name, batch)
	if err == nil {
		var res *model.AnalysisResult
		res, err = c.backend.Analyze(ctx, name)
		if err == nil && res != nil {
			return res
		}
		if err == nil {
			err = errors.New("oracle returned an empty analysis")
		}
	}
	logger.Log.Warn("Analysis against oracle failed, using mock analysis", zap.String("name", name), zap.Error(err))

	monitoring.RecordFallback("analysis")
	_, analysisDelay := c.settings.delays()
	wait(ctx, analysisDelay)
	return c.catalog.Analysis(c.now())
}

// ReturnToDashboard results -> dashboard，保留最近一次报告
func (c *Controller) ReturnToDashboard() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.page != model.PageResults {
		return Snapshot{}, transitionError(c.page, model.PageDashboard)
	}
	if err := c.moveLocked(model.PageDashboard); err != nil {
		return Snapshot{}, err
	}
	return c.snapshotLocked(), nil
}

// CancelAssessment tasks -> dashboard，放弃本次作答
func (c *Controller) CancelAssessment() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.page != model.PageTasks {
		return Snapshot{}, transitionError(c.page, model.PageDashboard)
	}
	if c.submitting {
		return Snapshot{}, ErrSubmitting
	}
	if err := c.moveLocked(model.PageDashboard); err != nil {
		return Snapshot{}, err
	}
	c.answers = make(map[string]string)
	c.timer.Reset()
	return c.snapshotLocked(), nil
}

// Logout 任意页面回到登录页并清空全部状态
func (c *Controller) Logout() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.page = model.PageLogin
	c.session = nil
	c.tasks = nil
	c.answers = make(map[string]string)
	c.timer.Reset()
	c.result = nil
	c.history = nil
	c.busy = false
	c.submitting = false
	c.touchLocked()
	return c.snapshotLocked()
}

// ConnectionCheck 探测后端健康接口，只更新连通性指示，不影响其他操作
func (c *Controller) ConnectionCheck(ctx context.Context) model.ConnectionStatus {
	status := Probe(ctx, c.backend, c.now)

	c.mu.Lock()
	c.connection = status
	c.mu.Unlock()
	return status
}

// Probe 执行一次健康检查并转换为展示文案
func Probe(ctx context.Context, backend Backend, now func() time.Time) model.ConnectionStatus {
	err := backend.Health(ctx)
	status := model.ConnectionStatus{CheckedAt: now()}

	var statusErr *oracle.StatusError
	switch {
	case err == nil:
		status.Available = true
		status.Message = model.ConnectionOK
	case errors.As(err, &statusErr):
		status.Message = model.ConnectionServerError
	case oracle.IsTimeout(err):
		status.Message = model.ConnectionTimeout
	default:
		status.Message = model.ConnectionUnreachable
	}
	return status
}

// DashboardStats 拉取聚合统计，失败时由本次会话内的报告推算
func (c *Controller) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return nil, ErrNoSession
	}
	name := c.session.Name
	history := append([]*model.AnalysisResult(nil), c.history...)
	c.mu.Unlock()

	stats, err := c.backend.DashboardData(ctx, name)
	if err == nil {
		return stats, nil
	}
	logger.Log.Warn("Dashboard data unavailable, deriving locally", zap.String("name", name), zap.Error(err))
	monitoring.RecordFallback("dashboard")
	return fallback.DashboardStats(history), nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Session 返回当前会话副本，未登录时为 nil
func (c *Controller) Session() *model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// LastActive 最近一次用户操作的时间，用于回收空闲会话
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Controller) moveLocked(to model.Page) error {
	if !canTransition(c.page, to) {
		return transitionError(c.page, to)
	}
	c.page = to
	c.touchLocked()
	return nil
}

func (c *Controller) touchLocked() {
	c.lastActive = c.now()
}

func (c *Controller) findTaskLocked(taskID string) int {
	for i, t := range c.tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// answerBatchLocked 按任务顺序组装提交内容，未作答的任务填入占位文本
func (c *Controller) answerBatchLocked() []model.AnswerRecord {
	batch := make([]model.AnswerRecord, 0, len(c.tasks))
	for _, t := range c.tasks {
		answer, ok := c.answers[t.ID]
		if !ok || strings.TrimSpace(answer) == "" {
			answer = model.NoAnswerProvided
		}
		batch = append(batch, model.AnswerRecord{
			TaskID:         t.ID,
			TaskTitle:      t.Title,
			Answer:         answer,
			ElapsedSeconds: c.timer.Seconds(t.ID),
		})
	}
	return batch
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Page:          c.page,
		Tasks:         append([]model.Task{}, c.tasks...),
		Answers:       []model.AnswerRecord{},
		CurrentTaskID: c.timer.Current(),
		Submitting:    c.submitting,
		Busy:          c.busy,
		Result:        c.result,
		Connection:    c.connection,
	}
	if c.session != nil {
		s := *c.session
		snap.Session = &s
	}
	for _, t := range c.tasks {
		if answer, ok := c.answers[t.ID]; ok {
			snap.Answers = append(snap.Answers, model.AnswerRecord{
				TaskID:         t.ID,
				TaskTitle:      t.Title,
				Answer:         answer,
				ElapsedSeconds: c.timer.Seconds(t.ID),
			})
		}
	}
	return snap
}

// wait 模拟后端处理延迟；请求被取消时提前返回，降级结果照常生成
func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
