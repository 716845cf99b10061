// Package analytics builds the dashboard view-models from the cleaned job,
// skill and job-skill tables: joins, filters, grouped counts, top-K per group,
// salary statistics and the time and country breakdowns.
//
// Every function is pure. The same Dataset and Filter always produce the same
// rows in the same order.
package analytics

import (
	"sort"
	"strings"
	"time"

	"dataitjobs/internal/dataset"
	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
)

type Dataset struct {
	tables dataset.Tables

	jobByID   map[string]int
	skillByID map[string]int
	titles    map[string]string // normalised title -> title as stored
}

func New(tables dataset.Tables) *Dataset {
	d := &Dataset{
		tables:    tables,
		jobByID:   make(map[string]int, len(tables.Jobs)),
		skillByID: make(map[string]int, len(tables.Skills)),
		titles:    make(map[string]string),
	}
	for i, j := range tables.Jobs {
		if _, ok := d.jobByID[j.ID]; !ok {
			d.jobByID[j.ID] = i
		}
		n := NormalizeTitle(j.TitleShort)
		if _, ok := d.titles[n]; !ok && n != "" {
			d.titles[n] = j.TitleShort
		}
	}
	for i, s := range tables.Skills {
		if _, ok := d.skillByID[s.ID]; !ok {
			d.skillByID[s.ID] = i
		}
	}
	return d
}

func (d *Dataset) Tables() dataset.Tables {
	if d == nil {
		return dataset.Tables{}
	}
	return d.tables
}

// Filter restricts which postings and skills take part in an aggregate.
// Zero values mean "all".
type Filter struct {
	Month        int
	JobTitle     string
	SkillType    string
	Country      string
	ScheduleType string
	TopK         int
}

func (f Filter) matchJob(p job.Posting) bool {
	if f.Month != 0 {
		if !p.HasPostedAt() || int(p.PostedAt.Month()) != f.Month {
			return false
		}
	}
	if f.JobTitle != "" && !strings.EqualFold(p.TitleShort, f.JobTitle) {
		return false
	}
	if f.Country != "" && !strings.EqualFold(p.Country, f.Country) {
		return false
	}
	if f.ScheduleType != "" && !strings.EqualFold(p.ScheduleType, f.ScheduleType) {
		return false
	}
	return true
}

func (f Filter) matchSkill(s skill.Skill) bool {
	if f.SkillType != "" && !strings.EqualFold(s.Type, f.SkillType) {
		return false
	}
	return true
}

// joined is one link resolved against both dimension tables.
type joined struct {
	job   *job.Posting
	skill *skill.Skill
}

func (d *Dataset) each(f Filter, fn func(joined)) {
	if d == nil {
		return
	}
	for _, l := range d.tables.Links {
		ji, ok := d.jobByID[l.JobID]
		if !ok {
			continue
		}
		si, ok := d.skillByID[l.SkillID]
		if !ok {
			continue
		}
		j := &d.tables.Jobs[ji]
		s := &d.tables.Skills[si]
		if !f.matchJob(*j) || !f.matchSkill(*s) {
			continue
		}
		fn(joined{job: j, skill: s})
	}
}

func (d *Dataset) eachJob(f Filter, fn func(*job.Posting)) {
	if d == nil {
		return
	}
	for i := range d.tables.Jobs {
		if f.matchJob(d.tables.Jobs[i]) {
			fn(&d.tables.Jobs[i])
		}
	}
}

type MonthOption struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

type Options struct {
	Months        []MonthOption `json:"months"`
	JobTitles     []string      `json:"job_titles"`
	SkillTypes    []string      `json:"skill_types"`
	Countries     []string      `json:"countries"`
	ScheduleTypes []string      `json:"schedule_types"`
	TotalJobs     int           `json:"total_jobs"`
	TotalSkills   int           `json:"total_skills"`
	TotalLinks    int           `json:"total_links"`
}

// Options lists the filter values present in the data. Months are listed
// January to December regardless of year.
func (d *Dataset) Options() Options {
	out := Options{
		Months:        []MonthOption{},
		JobTitles:     []string{},
		SkillTypes:    []string{},
		Countries:     []string{},
		ScheduleTypes: []string{},
	}
	if d == nil {
		return out
	}

	months := map[int]struct{}{}
	titles := map[string]struct{}{}
	countries := map[string]struct{}{}
	schedules := map[string]struct{}{}
	for _, j := range d.tables.Jobs {
		if j.HasPostedAt() {
			months[int(j.PostedAt.Month())] = struct{}{}
		}
		titles[j.TitleShort] = struct{}{}
		if j.Country != "" {
			countries[j.Country] = struct{}{}
		}
		if j.ScheduleType != "" {
			schedules[j.ScheduleType] = struct{}{}
		}
	}
	types := map[string]struct{}{}
	for _, s := range d.tables.Skills {
		types[s.Type] = struct{}{}
	}

	for m := 1; m <= 12; m++ {
		if _, ok := months[m]; ok {
			out.Months = append(out.Months, MonthOption{Value: m, Name: time.Month(m).String()})
		}
	}
	out.JobTitles = sortedKeys(titles)
	out.SkillTypes = sortedKeys(types)
	out.Countries = sortedKeys(countries)
	out.ScheduleTypes = sortedKeys(schedules)
	out.TotalJobs = len(d.tables.Jobs)
	out.TotalSkills = len(d.tables.Skills)
	out.TotalLinks = len(d.tables.Links)
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
