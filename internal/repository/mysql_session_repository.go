package repository

import (
	"careerquest_portal/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MySQLSessionRepository struct {
	DB *gorm.DB
}

func NewMySQLSessionRepository(db *gorm.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{DB: db}
}

// Save 按 key upsert，ttl<=0 时记录不过期
func (r *MySQLSessionRepository) Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error {
	record := &model.SessionRecord{Key: key, Payload: string(blob)}
	if ttl > 0 {
		expiresAt := time.Now().Add(ttl)
		record.ExpiresAt = &expiresAt
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at", "deleted_at"}),
	}).Create(record).Error
}

func (r *MySQLSessionRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var record model.SessionRecord
	err := r.DB.WithContext(ctx).Where("`key` = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if record.ExpiresAt != nil && time.Now().After(*record.ExpiresAt) {
		r.DB.WithContext(ctx).Unscoped().Delete(&record)
		return nil, ErrSessionNotFound
	}
	return []byte(record.Payload), nil
}

func (r *MySQLSessionRepository) Delete(ctx context.Context, key string) error {
	return r.DB.WithContext(ctx).Unscoped().Where("`key` = ?", key).Delete(&model.SessionRecord{}).Error
}

// PurgeExpired 清理过期记录，返回删除的行数
func (r *MySQLSessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Unscoped().
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&model.SessionRecord{})
	return res.RowsAffected, res.Error
}

func (r *MySQLSessionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
