package model

import "encoding/json"

// DashboardStats /get-dashboard-data 的聚合统计
type DashboardStats struct {
	QuestsCompleted int      `json:"quests_completed"`
	SkillTimeline   []string `json:"skill_timeline"`
	Source          Source   `json:"source"`
}

func DecodeDashboardStats(body []byte) (*DashboardStats, error) {
	var raw struct {
		QuestsCompleted FlexInt           `json:"quests_completed"`
		SkillTimeline   []json.RawMessage `json:"skill_timeline"`
	}
	if err := decodeObject(body, &raw); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		QuestsCompleted: int(raw.QuestsCompleted),
		SkillTimeline:   []string{},
		Source:          SourceOracle,
	}
	// 时间线元素偶尔为 null，直接跳过
	for _, item := range raw.SkillTimeline {
		var s string
		if err := json.Unmarshal(item, &s); err == nil && s != "" {
			stats.SkillTimeline = append(stats.SkillTimeline, s)
		}
	}
	return stats, nil
}
