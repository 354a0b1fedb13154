package model

import (
	"fmt"
	"strings"
	"time"
)

// Source 数据来源：外部后端或本地降级
type Source string

const (
	SourceOracle   Source = "oracle"
	SourceFallback Source = "fallback"
)

const dateLayout = "2006-01-02"

// 报告字段缺省值，与各版本结果页保持一致
const (
	DefaultCareerCluster    = "Career Path"
	DefaultSkillSuperpower  = "Your Unique Skills"
	DefaultReasoning        = "Your responses show great potential across multiple areas."
	DefaultFirstProjectIdea = "Start with a small project that combines your interests and skills."
	DefaultLearningSummary  = "Continue exploring different career paths and building your skills through hands-on projects."
	DefaultConsistency      = "High"
	DefaultFeedbackSummary  = "Responses showed good depth and thoughtfulness"
)

var (
	DefaultStrengths           = []string{"Creative thinking", "Problem solving", "Adaptability"}
	DefaultAreasForDevelopment = []string{"Communication skills", "Time management", "Technical expertise"}
	DefaultPotentialRoles      = []string{"Software Developer", "Data Analyst", "Project Manager", "UX Designer"}
)

type SkillAnalysis struct {
	Strengths           []string `json:"strengths" yaml:"strengths"`
	AreasForDevelopment []string `json:"areas_for_development" yaml:"areas_for_development"`
}

type ConfidenceScore struct {
	ConsistencyRating   string `json:"consistency_rating" yaml:"consistency_rating"`
	UserFeedbackSummary string `json:"user_feedback_summary" yaml:"user_feedback_summary"`
}

// AnalysisResult 职业分析报告。所有字段在边界处一次性补齐缺省值
type AnalysisResult struct {
	CareerCluster     string          `json:"career_cluster" yaml:"career_cluster"`
	SkillSuperpower   string          `json:"skill_superpower" yaml:"skill_superpower"`
	Reasoning         string          `json:"reasoning" yaml:"reasoning"`
	SkillAnalysis     SkillAnalysis   `json:"skill_analysis" yaml:"skill_analysis"`
	PotentialRoles    []string        `json:"potential_roles" yaml:"potential_roles"`
	FirstProjectIdea  string          `json:"first_project_idea" yaml:"first_project_idea"`
	LearningSummary   string          `json:"learning_summary" yaml:"learning_summary"`
	LookupKeyword     string          `json:"lookup_keyword,omitempty" yaml:"lookup_keyword"`
	Confidence        ConfidenceScore `json:"confidence_score" yaml:"confidence_score"`
	DateCompleted     string          `json:"date_completed" yaml:"date_completed"`
	AssessmentVersion string          `json:"assessment_version,omitempty" yaml:"assessment_version"`
	// Feedback 非空时后端未生成完整报告，只返回了作答反馈
	Feedback string `json:"feedback,omitempty" yaml:"feedback"`
	Source   Source `json:"source" yaml:"-"`
}

// rawAnalysis 覆盖各版本后端出现过的字段名
type rawAnalysis struct {
	CareerCluster    string   `json:"career_cluster"`
	CareerPath       string   `json:"career_path"`
	SkillSuperpower  string   `json:"skill_superpower"`
	Reasoning        string   `json:"reasoning"`
	Strengths        []string `json:"strengths"`
	SuggestedCareers []string `json:"suggested_careers"`
	PotentialRoles   []string `json:"potential_roles"`
	FirstProjectIdea string   `json:"first_project_idea"`
	LearningTip      string   `json:"learning_tip"`
	LookupKeyword    string   `json:"lookup_keyword"`
	SkillAnalysis    *struct {
		Strengths           []string `json:"strengths"`
		AreasForDevelopment []string `json:"areas_for_development"`
	} `json:"skill_analysis"`
	LearningTools *struct {
		WikipediaSummary string `json:"wikipedia_summary"`
	} `json:"learning_tools"`
	ConfidenceScore *struct {
		ConsistencyRating   FlexString `json:"consistency_rating"`
		UserFeedbackSummary string     `json:"user_feedback_summary"`
	} `json:"confidence_score"`
	DateCompleted     string `json:"date_completed"`
	AssessmentVersion string `json:"assessment_version"`
	Feedback          string `json:"feedback"`
	Error             string `json:"error"`
}

func (r *rawAnalysis) empty() bool {
	return r.CareerCluster == "" && r.CareerPath == "" && r.SkillSuperpower == "" &&
		r.Reasoning == "" && r.Feedback == "" && len(r.PotentialRoles) == 0 &&
		len(r.SuggestedCareers) == 0 && r.SkillAnalysis == nil
}

// DecodeAnalysis 解析 /analyze 的响应
func DecodeAnalysis(body []byte, now time.Time) (*AnalysisResult, error) {
	var raw rawAnalysis
	if err := decodeObject(body, &raw); err != nil {
		return nil, err
	}
	if raw.Error != "" && raw.empty() {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, raw.Error)
	}

	res := &AnalysisResult{
		CareerCluster:     firstNonEmpty(raw.CareerCluster, raw.CareerPath),
		SkillSuperpower:   raw.SkillSuperpower,
		Reasoning:         raw.Reasoning,
		PotentialRoles:    firstNonEmptyList(raw.PotentialRoles, raw.SuggestedCareers),
		FirstProjectIdea:  firstNonEmpty(raw.FirstProjectIdea, raw.LearningTip),
		LookupKeyword:     raw.LookupKeyword,
		DateCompleted:     raw.DateCompleted,
		AssessmentVersion: raw.AssessmentVersion,
		Feedback:          raw.Feedback,
		Source:            SourceOracle,
	}
	if raw.SkillAnalysis != nil {
		res.SkillAnalysis.Strengths = raw.SkillAnalysis.Strengths
		res.SkillAnalysis.AreasForDevelopment = raw.SkillAnalysis.AreasForDevelopment
	}
	res.SkillAnalysis.Strengths = firstNonEmptyList(res.SkillAnalysis.Strengths, raw.Strengths)
	if raw.LearningTools != nil {
		res.LearningSummary = raw.LearningTools.WikipediaSummary
	}
	if raw.ConfidenceScore != nil {
		res.Confidence.ConsistencyRating = string(raw.ConfidenceScore.ConsistencyRating)
		res.Confidence.UserFeedbackSummary = raw.ConfidenceScore.UserFeedbackSummary
	}

	res.ApplyDefaults(now)
	return res, nil
}

// ApplyDefaults 为空字段填入缺省值
func (r *AnalysisResult) ApplyDefaults(now time.Time) {
	r.CareerCluster = firstNonEmpty(r.CareerCluster, DefaultCareerCluster)
	r.SkillSuperpower = firstNonEmpty(r.SkillSuperpower, DefaultSkillSuperpower)
	r.Reasoning = firstNonEmpty(r.Reasoning, DefaultReasoning)
	r.SkillAnalysis.Strengths = firstNonEmptyList(r.SkillAnalysis.Strengths, DefaultStrengths)
	r.SkillAnalysis.AreasForDevelopment = firstNonEmptyList(r.SkillAnalysis.AreasForDevelopment, DefaultAreasForDevelopment)
	r.PotentialRoles = firstNonEmptyList(r.PotentialRoles, DefaultPotentialRoles)
	r.FirstProjectIdea = firstNonEmpty(r.FirstProjectIdea, DefaultFirstProjectIdea)
	r.LearningSummary = firstNonEmpty(r.LearningSummary, DefaultLearningSummary)
	r.Confidence.ConsistencyRating = firstNonEmpty(r.Confidence.ConsistencyRating, DefaultConsistency)
	r.Confidence.UserFeedbackSummary = firstNonEmpty(r.Confidence.UserFeedbackSummary, DefaultFeedbackSummary)
	r.DateCompleted = firstNonEmpty(r.DateCompleted, now.Format(dateLayout))
}

// IsFeedbackOnly 后端只给出反馈而非完整报告
func (r *AnalysisResult) IsFeedbackOnly() bool {
	return r.Feedback != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptyList(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			out := make([]string, len(l))
			copy(out, l)
			return out
		}
	}
	return nil
}
