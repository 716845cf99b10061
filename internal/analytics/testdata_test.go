package analytics

import (
	"time"

	"dataitjobs/internal/dataset"
	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
)

func salary(v float64) *float64 { return &v }

func day(month time.Month, d int) time.Time {
	return time.Date(2023, month, d, 9, 0, 0, 0, time.UTC)
}

// fixture: three analysts, two engineers, one scientist with no links.
func fixture() *Dataset {
	return New(dataset.Tables{
		Jobs: []job.Posting{
			{ID: "1", TitleShort: "Data Analyst", PostedAt: day(time.January, 3), SalaryYearAvg: salary(80000), Country: "Indonesia", ScheduleType: "Full-time"},
			{ID: "2", TitleShort: "Data Analyst", PostedAt: day(time.January, 20), SalaryYearAvg: salary(100000), Country: "Indonesia", ScheduleType: "Full-time"},
			{ID: "3", TitleShort: "Data Analyst", PostedAt: day(time.March, 5), Country: "Germany", ScheduleType: "Contractor"},
			{ID: "4", TitleShort: "Data Engineer", PostedAt: day(time.January, 7), SalaryYearAvg: salary(140000), Country: "Germany", ScheduleType: "Full-time"},
			{ID: "5", TitleShort: "Data Engineer", PostedAt: day(time.February, 11), SalaryYearAvg: salary(120000), Country: "United States", ScheduleType: "Full-time"},
			{ID: "6", TitleShort: "Data Scientist", SalaryYearAvg: salary(150000), Country: "United States", ScheduleType: "Part-time"},
		},
		Skills: []skill.Skill{
			{ID: "10", Name: "sql", Type: skill.TypeLanguage},
			{ID: "11", Name: "python", Type: skill.TypeLanguage},
			{ID: "12", Name: "excel", Type: skill.TypeTool},
			{ID: "13", Name: "aws", Type: skill.TypeCloud},
		},
		Links: []skill.JobSkill{
			{JobID: "1", SkillID: "10"},
			{JobID: "1", SkillID: "12"},
			{JobID: "2", SkillID: "10"},
			{JobID: "2", SkillID: "11"},
			{JobID: "3", SkillID: "12"},
			{JobID: "3", SkillID: "10"},
			{JobID: "4", SkillID: "11"},
			{JobID: "4", SkillID: "13"},
			{JobID: "5", SkillID: "11"},
			{JobID: "5", SkillID: "10"},
		},
	})
}
