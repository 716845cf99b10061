package usecase

import (
	"strings"

	"dataitjobs/internal/analytics"
	"dataitjobs/internal/domain/skill"
)

const (
	PageOverview  = "overview"
	PageSkills    = "skills"
	PageTrends    = "trends"
	PageGeography = "geography"
	PageFilters   = "filters"

	DefaultTopK = 10
	MaxTopK     = 50
	DefaultBins = 20
	MaxBins     = 100
)

var Pages = []string{PageOverview, PageSkills, PageTrends, PageGeography}

func IsPage(name string) bool {
	for _, p := range Pages {
		if p == name {
			return true
		}
	}
	return false
}

type DashboardParams struct {
	Month        int    `json:"month"`
	JobTitle     string `json:"job_title,omitempty"`
	SkillType    string `json:"skill_type,omitempty"`
	Country      string `json:"country,omitempty"`
	ScheduleType string `json:"schedule_type,omitempty"`
	TopK         int    `json:"top_k"`
	Bins         int    `json:"bins,omitempty"`

	// All disables top-K truncation.
	All bool `json:"all,omitempty"`
}

// normalize validates p and fills defaults. Job titles are resolved against
// the dataset; unknown titles are kept and simply match nothing.
func (p DashboardParams) normalize(data *analytics.Dataset) (DashboardParams, error) {
	if p.Month < 0 || p.Month > 12 {
		return DashboardParams{}, ErrInvalidInput
	}

	switch {
	case p.All:
		p.TopK = 0
	case p.TopK == 0:
		p.TopK = DefaultTopK
	case p.TopK < 0 || p.TopK > MaxTopK:
		return DashboardParams{}, ErrInvalidInput
	}

	if p.Bins == 0 {
		p.Bins = DefaultBins
	}
	if p.Bins < 0 || p.Bins > MaxBins {
		return DashboardParams{}, ErrInvalidInput
	}

	p.SkillType = strings.TrimSpace(p.SkillType)
	if p.SkillType != "" {
		t := skill.NormalizeType(p.SkillType)
		if t == skill.TypeOther && !strings.EqualFold(p.SkillType, skill.TypeOther) {
			return DashboardParams{}, ErrInvalidInput
		}
		p.SkillType = t
	}

	p.JobTitle = strings.TrimSpace(p.JobTitle)
	if p.JobTitle != "" {
		if t, ok := data.CanonicalTitle(p.JobTitle); ok {
			p.JobTitle = t
		}
	}
	p.Country = strings.TrimSpace(p.Country)
	p.ScheduleType = strings.TrimSpace(p.ScheduleType)
	return p, nil
}

func (p DashboardParams) filter() analytics.Filter {
	return analytics.Filter{
		Month:        p.Month,
		JobTitle:     p.JobTitle,
		SkillType:    p.SkillType,
		Country:      p.Country,
		ScheduleType: p.ScheduleType,
		TopK:         p.TopK,
	}
}
