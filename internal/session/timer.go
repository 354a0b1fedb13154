package session

import (
	"math"
	"time"
)

// Timer 按任务累计作答用时。同一时刻只有一个任务在计时，重新打开任务时继续累加
type Timer struct {
	now       func() time.Time
	elapsed   map[string]time.Duration
	current   string
	startedAt time.Time
}

func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now, elapsed: make(map[string]time.Duration)}
}

// Start 停止当前计时并开始为 taskID 计时
func (t *Timer) Start(taskID string) {
	t.Stop()
	t.current = taskID
	t.startedAt = t.now()
}

func (t *Timer) Stop() {
	if t.current == "" {
		return
	}
	if d := t.now().Sub(t.startedAt); d > 0 {
		t.elapsed[t.current] += d
	}
	t.current = ""
}

func (t *Timer) Current() string {
	return t.current
}

func (t *Timer) Elapsed(taskID string) time.Duration {
	d := t.elapsed[taskID]
	if taskID != "" && taskID == t.current {
		if running := t.now().Sub(t.startedAt); running > 0 {
			d += running
		}
	}
	return d
}

// Seconds 四舍五入到整秒
func (t *Timer) Seconds(taskID string) int {
	return int(math.Round(t.Elapsed(taskID).Seconds()))
}

func (t *Timer) Reset() {
	t.elapsed = make(map[string]time.Duration)
	t.current = ""
	t.startedAt = time.Time{}
}
