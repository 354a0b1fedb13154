package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Task 一道开放式题目
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

type rawTask struct {
	ID          FlexString `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"image_url"`
}

func (r rawTask) toTask(fallbackID string) Task {
	t := Task{
		ID:          string(r.ID),
		Title:       r.Title,
		Description: r.Description,
	}
	if t.ID == "" {
		t.ID = fallbackID
	}
	if r.ImageURL != nil {
		t.ImageURL = *r.ImageURL
	}
	return t
}

// DecodeTasks 解析 /get-tasks 的响应。
// 支持两种形态：任务数组，或以任务 id 为键的对象（旧版后端），后者按键排序
func DecodeTasks(body []byte) ([]Task, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	var tasks []Task
	switch body[0] {
	case '[':
		var raws []rawTask
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		for i, r := range raws {
			tasks = append(tasks, r.toTask(fmt.Sprintf("task%d", i+1)))
		}
	case '{':
		var keyed map[string]rawTask
		if err := json.Unmarshal(body, &keyed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tasks = append(tasks, keyed[k].toTask(k))
		}
	default:
		return nil, fmt.Errorf("%w: unexpected task payload", ErrMalformedPayload)
	}

	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: duplicate task id %q", ErrMalformedPayload, t.ID)
		}
		seen[t.ID] = true
	}
	return tasks, nil
}
