package service

import (
	"careerquest_portal/internal/config"
	"careerquest_portal/internal/fallback"
	"careerquest_portal/internal/model"
	"careerquest_portal/internal/repository"
	"careerquest_portal/internal/session"
	"careerquest_portal/internal/util"
	"careerquest_portal/pkg/logger"
	"careerquest_portal/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// QuestService 管理每个浏览器对应的会话控制器，并负责会话令牌与会话缓存
type QuestService struct {
	Backend  session.Backend
	Store    repository.SessionStore
	catalog  *fallback.Catalog
	settings *session.Settings
	now      func() time.Time

	cfgMu sync.RWMutex
	cfg   *config.Config

	mu          sync.Mutex
	controllers map[string]*session.Controller
}

// LoginResult 登录成功后返回给浏览器的令牌与页面
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	View      session.Snapshot `json:"view"`
}

func NewQuestService(backend session.Backend, store repository.SessionStore, catalog *fallback.Catalog, cfg *config.Config) *QuestService {
	return &QuestService{
		Backend:     backend,
		Store:       store,
		catalog:     catalog,
		settings:    session.NewSettings(cfg.Oracle.MockLoginDelay, cfg.Oracle.MockAnalysisDelay),
		now:         time.Now,
		cfg:         cfg,
		controllers: make(map[string]*session.Controller),
	}
}

// ApplyConfig 配置热加载：更新模拟延迟、会话 TTL 与令牌参数
func (s *QuestService) ApplyConfig(cfg *config.Config) {
	s.settings.Update(cfg.Oracle.MockLoginDelay, cfg.Oracle.MockAnalysisDelay)
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

func (s *QuestService) config() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

func (s *QuestService) newController() *session.Controller {
	return session.NewController(s.Backend, s.catalog, s.settings, session.WithClock(s.now))
}

// ConnectionCheck 登录页的后端连通性检查，不需要会话
func (s *QuestService) ConnectionCheck(ctx context.Context) model.ConnectionStatus {
	return session.Probe(ctx, s.Backend, s.now)
}

// LoginView 未登录时展示的页面
func (s *QuestService) LoginView() session.Snapshot {
	return s.newController().Snapshot()
}

// Login 为浏览器创建新会话。previousKey 非空时先结束旧会话
func (s *QuestService) Login(ctx context.Context, name string, grade int, previousKey string) (*LoginResult, error) {
	if err := session.ValidateLogin(name, grade); err != nil {
		return nil, err
	}
	if previousKey != "" {
		s.Logout(ctx, previousKey)
	}

	cfg := s.config()
	ctrl := s.newController()
	view, err := ctrl.Login(ctx, name, grade)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%s", cfg.Session.KeyPrefix, model.GenerateUUID())
	s.persist(ctx, key, ctrl.Session(), cfg.Session.TTL)

	token, err := util.GenerateSessionToken(key, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.controllers[key] = ctrl
	s.updateGaugeLocked()
	s.mu.Unlock()

	return &LoginResult{
		Token:     token,
		ExpiresAt: s.now().Add(cfg.JWT.ExpireTime),
		View:      view,
	}, nil
}

// Controller 返回 key 对应的控制器；进程内没有时从会话缓存恢复
func (s *QuestService) Controller(ctx context.Context, key string) (*session.Controller, error) {
	s.mu.Lock()
	ctrl, ok := s.controllers[key]
	s.mu.Unlock()
	if ok {
		return ctrl, nil
	}

	blob, err := s.Store.Load(ctx, key)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, util.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStoreDisabled, err)
	}

	record, err := model.ParseSessionRecord(blob)
	if err != nil {
		logger.Log.Warn("Discarding corrupt session record", zap.String("key", key), zap.Error(err))
		if delErr := s.Store.Delete(ctx, key); delErr != nil {
			logger.Log.Warn("Failed to delete corrupt session record", zap.String("key", key), zap.Error(delErr))
		}
		return nil, util.ErrSessionExpired
	}

	restored := s.newController()
	if _, err := restored.Restore(ctx, record); err != nil {
		logger.Log.Warn("Failed to restore session", zap.String("key", key), zap.Error(err))
		return nil, util.ErrSessionExpired
	}

	cfg := s.config()
	s.persist(ctx, key, restored.Session(), cfg.Session.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	// 并发请求可能已经恢复过同一个会话
	if existing, ok := s.controllers[key]; ok {
		return existing, nil
	}
	s.controllers[key] = restored
	s.updateGaugeLocked()
	logger.Log.Info("Session restored from cache", zap.String("key", key), zap.String("name", record.Name))
	return restored, nil
}

// View 当前页面；会话失效时回到登录页
func (s *QuestService) View(ctx context.Context, key string) session.Snapshot {
	if key == "" {
		return s.LoginView()
	}
	ctrl, err := s.Controller(ctx, key)
	if err != nil {
		return s.LoginView()
	}
	return ctrl.Snapshot()
}

// Logout 结束会话并删除缓存记录
func (s *QuestService) Logout(ctx context.Context, key string) session.Snapshot {
	s.mu.Lock()
	ctrl, ok := s.controllers[key]
	delete(s.controllers, key)
	s.updateGaugeLocked()
	s.mu.Unlock()

	view := s.LoginView()
	if ok {
		view = ctrl.Logout()
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		logger.Log.Warn("Failed to delete session record", zap.String("key", key), zap.Error(err))
	}
	return view
}

// EvictIdle 移出超过 TTL 未操作的控制器，缓存记录保留，下次访问时恢复
func (s *QuestService) EvictIdle() int {
	ttl := s.config().Session.TTL
	if ttl <= 0 {
		return 0
	}
	deadline := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for key, ctrl := range s.controllers {
		if ctrl.LastActive().Before(deadline) {
			delete(s.controllers, key)
			evicted++
		}
	}
	if evicted > 0 {
		s.updateGaugeLocked()
		logger.Log.Info("Evicted idle sessions", zap.Int("count", evicted))
	}
	return evicted
}

// PurgeExpired 删除存储中已过期的会话记录；存储自带过期（redis、内存）时不做任何事
func (s *QuestService) PurgeExpired(ctx context.Context) int64 {
	purger, ok := s.Store.(repository.ExpiredPurger)
	if !ok {
		return 0
	}
	n, err := purger.PurgeExpired(ctx)
	if err != nil {
		logger.Log.Warn("Failed to purge expired session records", zap.Error(err))
		return 0
	}
	if n > 0 {
		logger.Log.Info("Purged expired session records", zap.Int64("count", n))
	}
	return n
}

// RunJanitor 定期回收空闲会话并清理过期记录，直到 ctx 结束
func (s *QuestService) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdle()
			s.PurgeExpired(ctx)
		}
	}
}

func (s *QuestService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.controllers)
}

// Ping 检查会话缓存是否可用
func (s *QuestService) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}

// persist 写入失败只记录日志，会话仍在进程内可用
func (s *QuestService) persist(ctx context.Context, key string, sess *model.Session, ttl time.Duration) {
	if sess == nil {
		return
	}
	blob, err := json.Marshal(sess)
	if err != nil {
		logger.Log.Error("Failed to encode session record", zap.Error(err))
		return
	}
	if err := s.Store.Save(ctx, key, blob, ttl); err != nil {
		logger.Log.Warn("Failed to persist session record", zap.String("key", key), zap.Error(err))
	}
}

func (s *QuestService) updateGaugeLocked() {
	monitoring.ActiveSessions.Set(float64(len(s.controllers)))
}
