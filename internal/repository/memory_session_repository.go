package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	blob      []byte
	expiresAt time.Time
}

// MemorySessionRepository 进程内会话缓存，重启后丢失
type MemorySessionRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *MemorySessionRepository) Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error {
	entry := memoryEntry{blob: append([]byte(nil), blob...)}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.mu.Lock()
	r.entries[key] = entry
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepository) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return append([]byte(nil), entry.blob...), nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepository) Ping(ctx context.Context) error {
	return nil
}
