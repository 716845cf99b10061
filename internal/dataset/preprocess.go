package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
)

var postedDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// Preprocess cleans raw tables: duplicates are dropped by key (first row
// wins), then rows missing required fields are dropped, identifiers are
// normalised to strings, text is trimmed, and links to unknown jobs or skills
// are dropped. A key whose first row is incomplete is dropped entirely.
func Preprocess(raw RawTables) Tables {
	jobs := make([]job.Posting, 0, len(raw.Jobs))
	seenJobs := make(map[string]struct{}, len(raw.Jobs))
	jobIDs := make(map[string]struct{}, len(raw.Jobs))
	for _, r := range raw.Jobs {
		id := NormalizeID(r.ID)
		if id == "" {
			continue
		}
		if _, dup := seenJobs[id]; dup {
			continue
		}
		seenJobs[id] = struct{}{}

		title := cleanText(r.TitleShort)
		if title == "" {
			continue
		}
		jobIDs[id] = struct{}{}

		jobs = append(jobs, job.Posting{
			ID:            id,
			TitleShort:    title,
			Title:         cleanText(r.Title),
			PostedAt:      parsePostedDate(r.PostedDate),
			SalaryYearAvg: parseSalary(r.SalaryYearAvg),
			Country:       cleanText(r.Country),
			ScheduleType:  cleanText(r.ScheduleType),
		})
	}

	skills := make([]skill.Skill, 0, len(raw.Skills))
	seenSkills := make(map[string]struct{}, len(raw.Skills))
	skillIDs := make(map[string]struct{}, len(raw.Skills))
	for _, r := range raw.Skills {
		id := NormalizeID(r.ID)
		if id == "" {
			continue
		}
		if _, dup := seenSkills[id]; dup {
			continue
		}
		seenSkills[id] = struct{}{}

		name := cleanText(r.Name)
		if name == "" {
			continue
		}
		skillIDs[id] = struct{}{}

		skills = append(skills, skill.Skill{
			ID:   id,
			Name: name,
			Type: skill.NormalizeType(r.Type),
		})
	}

	links := make([]skill.JobSkill, 0, len(raw.Links))
	seen := make(map[skill.JobSkill]struct{}, len(raw.Links))
	for _, r := range raw.Links {
		l := skill.JobSkill{JobID: NormalizeID(r.JobID), SkillID: NormalizeID(r.SkillID)}
		if l.JobID == "" || l.SkillID == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}

		if _, ok := jobIDs[l.JobID]; !ok {
			continue
		}
		if _, ok := skillIDs[l.SkillID]; !ok {
			continue
		}
		links = append(links, l)
	}

	return Tables{Jobs: jobs, Skills: skills, Links: links}
}

// maxExactID is the largest magnitude a float64 holds without losing integer
// precision.
const maxExactID = 1 << 53

// NormalizeID trims an identifier and renders integral floats ("12.0") as
// integers so ids read as numbers and as text compare equal. Values too large
// to convert exactly keep their text.
func NormalizeID(raw string) string {
	s := cleanText(raw)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil && math.Abs(f) < maxExactID && f == math.Trunc(f) {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return s
}

func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if isNullToken(s) {
		return ""
	}
	return s
}

func isNullToken(s string) bool {
	switch strings.ToLower(s) {
	case "nan", "null", "none", "nat", "<na>":
		return true
	}
	return false
}

func parsePostedDate(raw string) time.Time {
	s := cleanText(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range postedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func parseSalary(raw string) *float64 {
	s := cleanText(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}
