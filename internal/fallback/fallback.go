// Package fallback 提供后端不可用时的降级数据：固定任务集、模拟会话与模拟报告
package fallback

import (
	"careerquest_portal/internal/model"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var defaultData []byte

type yamlTask struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
}

type document struct {
	Tasks    []yamlTask           `yaml:"tasks"`
	Analysis model.AnalysisResult `yaml:"analysis"`
}

// Catalog 降级数据集合，只读
type Catalog struct {
	tasks    []model.Task
	analysis model.AnalysisResult
}

// Default 内置数据集，解析失败说明打包的 yaml 有误
func Default() *Catalog {
	c, err := Parse(defaultData)
	if err != nil {
		panic(fmt.Sprintf("fallback: embedded data: %v", err))
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Tasks) == 0 {
		return nil, fmt.Errorf("no fallback tasks defined")
	}
	if doc.Analysis.CareerCluster == "" {
		return nil, fmt.Errorf("fallback analysis needs a career_cluster")
	}

	c := &Catalog{analysis: doc.Analysis}
	seen := make(map[string]bool, len(doc.Tasks))
	for _, t := range doc.Tasks {
		if t.ID == "" || seen[t.ID] {
			return nil, fmt.Errorf("fallback task id %q is empty or duplicated", t.ID)
		}
		seen[t.ID] = true
		c.tasks = append(c.tasks, model.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			ImageURL:    t.ImageURL,
		})
	}
	return c, nil
}

// Tasks 返回任务集的副本
func (c *Catalog) Tasks() []model.Task {
	out := make([]model.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *Catalog) Session(name string, grade int, now time.Time) *model.Session {
	return &model.Session{
		ID:         model.GenerateUUID(),
		Name:       name,
		Grade:      grade,
		LoggedInAt: now,
		Mock:       true,
	}
}

// Analysis 生成一份新的模拟报告，完成日期取 now
func (c *Catalog) Analysis(now time.Time) *model.AnalysisResult {
	res := c.analysis
	res.SkillAnalysis.Strengths = append([]string(nil), c.analysis.SkillAnalysis.Strengths...)
	res.SkillAnalysis.AreasForDevelopment = append([]string(nil), c.analysis.SkillAnalysis.AreasForDevelopment...)
	res.PotentialRoles = append([]string(nil), c.analysis.PotentialRoles...)
	res.DateCompleted = ""
	res.ApplyDefaults(now)
	res.Source = model.SourceFallback
	return &res
}

// DashboardStats 由本次会话内完成的报告推算统计
func DashboardStats(history []*model.AnalysisResult) *model.DashboardStats {
	stats := &model.DashboardStats{
		QuestsCompleted: len(history),
		SkillTimeline:   []string{},
		Source:          model.SourceFallback,
	}
	for _, r := range history {
		label := r.CareerCluster
		if label == "" {
			label = r.SkillSuperpower
		}
		if label != "" {
			stats.SkillTimeline = append(stats.SkillTimeline, label)
		}
	}
	return stats
}
