package model

import "time"

// SessionRecord mysql 会话缓存表，一行存一份会话 JSON
type SessionRecord struct {
	BaseModel
	Key       string    `gorm:"size:191;uniqueIndex;not null" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	ExpiresAt *time.Time `gorm:"index" json:"expiresAt"` // nil 表示不过期
}

func (SessionRecord) TableName() string {
	return "session_records"
}
