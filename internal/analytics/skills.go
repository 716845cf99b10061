package analytics

import (
	"sort"

	"dataitjobs/internal/domain/job"
)

const DateLayout = "2006-01-02"

type SkillCount struct {
	JobTitleShort string `json:"job_title_short"`
	Skill         string `json:"skills"`
	Type          string `json:"type"`
	Count         int    `json:"count"`
}

// TopSkills joins links to skills and postings, counts occurrences per
// (job title, skill), orders titles ascending and counts descending, and keeps
// at most f.TopK rows per title. Equal counts keep first-seen order.
func (d *Dataset) TopSkills(f Filter) []SkillCount {
	type key struct{ title, skill, typ string }

	idx := map[key]int{}
	rows := make([]SkillCount, 0)
	d.each(f, func(r joined) {
		k := key{title: r.job.TitleShort, skill: r.skill.Name, typ: r.skill.Type}
		if i, ok := idx[k]; ok {
			rows[i].Count++
			return
		}
		idx[k] = len(rows)
		rows = append(rows, SkillCount{JobTitleShort: k.title, Skill: k.skill, Type: k.typ, Count: 1})
	})

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].JobTitleShort != rows[b].JobTitleShort {
			return rows[a].JobTitleShort < rows[b].JobTitleShort
		}
		return rows[a].Count > rows[b].Count
	})

	return headPerGroup(rows, f.TopK, func(r SkillCount) string { return r.JobTitleShort })
}

func headPerGroup[T any](rows []T, k int, group func(T) string) []T {
	if k <= 0 {
		return rows
	}
	out := make([]T, 0, len(rows))
	taken := map[string]int{}
	for _, r := range rows {
		g := group(r)
		if taken[g] >= k {
			continue
		}
		taken[g]++
		out = append(out, r)
	}
	return out
}

type SkillTrendRow struct {
	JobTitleShort string `json:"job_title_short"`
	Skill         string `json:"skills"`
	PostedDate    string `json:"job_posted_date"`
	ScheduleType  string `json:"job_schedule_type"`
	Count         int    `json:"count"`
}

// SkillTrend counts skill occurrences per (job title, skill, posting day,
// schedule type). Postings without a date are skipped. With f.TopK set only
// the K most requested skills of the filtered set are kept.
func (d *Dataset) SkillTrend(f Filter) []SkillTrendRow {
	type key struct{ title, skill, date, schedule string }

	keep := d.topSkillNames(f)

	idx := map[key]int{}
	rows := make([]SkillTrendRow, 0)
	d.each(f, func(r joined) {
		if !r.job.HasPostedAt() {
			return
		}
		if keep != nil {
			if _, ok := keep[r.skill.Name]; !ok {
				return
			}
		}
		k := key{
			title:    r.job.TitleShort,
			skill:    r.skill.Name,
			date:     r.job.PostedAt.Format(DateLayout),
			schedule: r.job.ScheduleType,
		}
		if i, ok := idx[k]; ok {
			rows[i].Count++
			return
		}
		idx[k] = len(rows)
		rows = append(rows, SkillTrendRow{JobTitleShort: k.title, Skill: k.skill, PostedDate: k.date, ScheduleType: k.schedule, Count: 1})
	})

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].JobTitleShort != rows[b].JobTitleShort {
			return rows[a].JobTitleShort < rows[b].JobTitleShort
		}
		if rows[a].PostedDate != rows[b].PostedDate {
			return rows[a].PostedDate < rows[b].PostedDate
		}
		return rows[a].Count > rows[b].Count
	})
	return rows
}

// topSkillNames returns the f.TopK most frequent skill names of the filtered
// set, or nil when f.TopK is not set.
func (d *Dataset) topSkillNames(f Filter) map[string]struct{} {
	if f.TopK <= 0 {
		return nil
	}
	shares := d.SkillShares(f)
	out := make(map[string]struct{}, len(shares.Rows))
	for _, r := range shares.Rows {
		out[r.Skill] = struct{}{}
	}
	return out
}

type SeriesPoint struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

type SkillSeries struct {
	Skill  string        `json:"skill"`
	Points []SeriesPoint `json:"points"`
}

// SkillSeriesByMonth rolls SkillTrend up to calendar months. Every series has
// one point per period, zero-filled.
func (d *Dataset) SkillSeriesByMonth(f Filter) ([]string, []SkillSeries) {
	rows := d.SkillTrend(f)
	if len(rows) == 0 {
		return []string{}, []SkillSeries{}
	}

	periodSet := map[string]struct{}{}
	counts := map[string]map[string]int{}
	order := make([]string, 0)
	for _, r := range rows {
		p := r.PostedDate[:7]
		periodSet[p] = struct{}{}
		if _, ok := counts[r.Skill]; !ok {
			counts[r.Skill] = map[string]int{}
			order = append(order, r.Skill)
		}
		counts[r.Skill][p] += r.Count
	}
	periods := sortedKeys(periodSet)

	totals := make(map[string]int, len(order))
	for _, s := range order {
		for _, c := range counts[s] {
			totals[s] += c
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return totals[order[a]] > totals[order[b]] })

	series := make([]SkillSeries, 0, len(order))
	for _, s := range order {
		pts := make([]SeriesPoint, 0, len(periods))
		for _, p := range periods {
			pts = append(pts, SeriesPoint{Period: p, Count: counts[s][p]})
		}
		series = append(series, SkillSeries{Skill: s, Points: pts})
	}
	return periods, series
}

type SkillShare struct {
	Skill   string  `json:"skill"`
	Type    string  `json:"type"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type ShareTable struct {
	TotalJobs int          `json:"total_jobs"`
	Rows      []SkillShare `json:"rows"`
}

// SkillShares reports, per skill, how many distinct filtered postings ask for
// it and what share of all filtered postings that is. An empty filtered set
// yields TotalJobs == 0 and no rows.
func (d *Dataset) SkillShares(f Filter) ShareTable {
	total := 0
	d.eachJob(f, func(*job.Posting) { total++ })
	if total == 0 {
		return ShareTable{Rows: []SkillShare{}}
	}

	type key struct{ skill, typ string }
	idx := map[key]int{}
	jobsPer := make([]map[string]struct{}, 0)
	rows := make([]SkillShare, 0)
	d.each(f, func(r joined) {
		k := key{skill: r.skill.Name, typ: r.skill.Type}
		i, ok := idx[k]
		if !ok {
			i = len(rows)
			idx[k] = i
			rows = append(rows, SkillShare{Skill: k.skill, Type: k.typ})
			jobsPer = append(jobsPer, map[string]struct{}{})
		}
		jobsPer[i][r.job.ID] = struct{}{}
	})

	for i := range rows {
		rows[i].Count = len(jobsPer[i])
		rows[i].Percent = percent(rows[i].Count, total)
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Count > rows[b].Count })
	if f.TopK > 0 && len(rows) > f.TopK {
		rows = rows[:f.TopK]
	}
	return ShareTable{TotalJobs: total, Rows: rows}
}

type TypeCount struct {
	Type    string  `json:"type"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// SkillTypeCounts counts filtered links per skill type. Percentages are of all
// filtered links and sum to 100 when there is data.
func (d *Dataset) SkillTypeCounts(f Filter) []TypeCount {
	idx := map[string]int{}
	rows := make([]TypeCount, 0)
	total := 0
	d.each(f, func(r joined) {
		total++
		if i, ok := idx[r.skill.Type]; ok {
			rows[i].Count++
			return
		}
		idx[r.skill.Type] = len(rows)
		rows = append(rows, TypeCount{Type: r.skill.Type, Count: 1})
	})
	if total == 0 {
		return []TypeCount{}
	}
	for i := range rows {
		rows[i].Percent = percent(rows[i].Count, total)
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Count > rows[b].Count })
	return rows
}

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
