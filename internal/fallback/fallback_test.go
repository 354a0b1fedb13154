package fallback

import (
	"careerquest_portal/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_FourFixedTasks(t *testing.T) {
	tasks := Default().Tasks()
	require.Len(t, tasks, 4)

	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "Problem Solving Challenge", tasks[0].Title)
	assert.Equal(t, "Future Goals", tasks[3].Title)
}

func TestCatalog_TasksReturnsCopy(t *testing.T) {
	c := Default()
	tasks := c.Tasks()
	tasks[0].Title = "mutated"

	assert.Equal(t, "Problem Solving Challenge", c.Tasks()[0].Title)
}

func TestCatalog_Session(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	s := Default().Session("Ava", 7, now)

	assert.Equal(t, "Ava", s.Name)
	assert.Equal(t, 7, s.Grade)
	assert.Equal(t, now, s.LoggedInAt)
	assert.True(t, s.Mock)
	assert.NotEmpty(t, s.ID)
}

func TestCatalog_Analysis(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	c := Default()
	res := c.Analysis(now)

	assert.Equal(t, "Technology & Innovation", res.CareerCluster)
	assert.Equal(t, "Creative Problem Solving", res.SkillSuperpower)
	assert.Equal(t, []string{"Analytical thinking", "Creativity", "Adaptability"}, res.SkillAnalysis.Strengths)
	assert.Len(t, res.PotentialRoles, 4)
	assert.Equal(t, "2025-05-01", res.DateCompleted)
	assert.Equal(t, model.SourceFallback, res.Source)

	res.PotentialRoles[0] = "mutated"
	assert.Equal(t, "Software Developer", c.Analysis(now).PotentialRoles[0])
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte("tasks: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("tasks:\n  - id: \"1\"\n    title: A\n  - id: \"1\"\n    title: B\nanalysis:\n  career_cluster: X\n"))
	assert.Error(t, err)
}

func TestDashboardStats(t *testing.T) {
	stats := DashboardStats([]*model.AnalysisResult{
		{CareerCluster: "Technology & Innovation"},
		{SkillSuperpower: "Empathy"},
		{},
	})

	assert.Equal(t, 3, stats.QuestsCompleted)
	assert.Equal(t, []string{"Technology & Innovation", "Empathy"}, stats.SkillTimeline)
	assert.Equal(t, model.SourceFallback, stats.Source)
}
