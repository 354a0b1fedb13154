package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	MinGrade = 1
	MaxGrade = 12
)

// Session 当前登录的用户
type Session struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Grade      int       `json:"grade"`
	LoggedInAt time.Time `json:"timestamp"`
	Mock       bool      `json:"mock"`
}

type rawSession struct {
	ID        FlexString `json:"id"`
	Name      string     `json:"name"`
	Grade     FlexInt    `json:"grade"`
	Timestamp string     `json:"timestamp"`
	Mock      bool       `json:"mock"`
}

// DecodeSession 解析 /login 的响应。后端可能省略 id 与时间戳，缺失时用登录参数补齐
func DecodeSession(body []byte, name string, grade int, now time.Time) (*Session, error) {
	var raw rawSession
	if err := decodeObject(body, &raw); err != nil {
		return nil, err
	}

	s := &Session{
		ID:         string(raw.ID),
		Name:       strings.TrimSpace(raw.Name),
		Grade:      int(raw.Grade),
		LoggedInAt: now,
	}
	if s.ID == "" {
		s.ID = GenerateUUID()
	}
	if s.Name == "" {
		s.Name = name
	}
	if s.Grade < MinGrade || s.Grade > MaxGrade {
		s.Grade = grade
	}
	if t, err := time.Parse(time.RFC3339, raw.Timestamp); err == nil {
		s.LoggedInAt = t
	}
	return s, nil
}

// ParseSessionRecord 解析本地缓存的会话记录，字段不完整视为损坏
func ParseSessionRecord(blob []byte) (*Session, error) {
	var s Session
	if err := decodeObject(blob, &s); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Name) == "" || s.Grade < MinGrade || s.Grade > MaxGrade || s.ID == "" {
		return nil, fmt.Errorf("%w: incomplete session record", ErrMalformedPayload)
	}
	return &s, nil
}

func decodeObject(body []byte, v any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return fmt.Errorf("%w: expected JSON object", ErrMalformedPayload)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}
