package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"dataitjobs/internal/dataset"
	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
)

func TestTopSkills_SingleLink(t *testing.T) {
	d := New(dataset.Tables{
		Jobs:   []job.Posting{{ID: "1", TitleShort: "Data Analyst"}},
		Skills: []skill.Skill{{ID: "10", Name: "SQL", Type: skill.TypeLanguage}},
		Links:  []skill.JobSkill{{JobID: "1", SkillID: "10"}},
	})

	got := d.TopSkills(Filter{})
	want := []SkillCount{{JobTitleShort: "Data Analyst", Skill: "SQL", Type: skill.TypeLanguage, Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestTopSkills_OrderAndTies(t *testing.T) {
	got := fixture().TopSkills(Filter{})
	want := []SkillCount{
		{"Data Analyst", "sql", skill.TypeLanguage, 3},
		{"Data Analyst", "excel", skill.TypeTool, 2},
		{"Data Analyst", "python", skill.TypeLanguage, 1},
		{"Data Engineer", "python", skill.TypeLanguage, 2},
		{"Data Engineer", "aws", skill.TypeCloud, 1},
		{"Data Engineer", "sql", skill.TypeLanguage, 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestTopSkills_TopKPerTitle(t *testing.T) {
	d := fixture()
	distinct := map[string]int{"Data Analyst": 3, "Data Engineer": 3}

	for k := 1; k <= 5; k++ {
		rows := d.TopSkills(Filter{TopK: k})
		per := map[string]int{}
		for _, r := range rows {
			per[r.JobTitleShort]++
		}
		for title, n := range distinct {
			want := k
			if n < k {
				want = n
			}
			if per[title] != want {
				t.Fatalf("top_k=%d title=%s: expected %d rows, got %d", k, title, want, per[title])
			}
		}
	}
}

func TestTopSkills_Filters(t *testing.T) {
	d := fixture()

	rows := d.TopSkills(Filter{JobTitle: "data engineer", SkillType: skill.TypeCloud})
	if len(rows) != 1 || rows[0].Skill != "aws" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	rows = d.TopSkills(Filter{Month: 3})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for march, got %+v", rows)
	}

	if rows := d.TopSkills(Filter{Month: 12}); len(rows) != 0 {
		t.Fatalf("expected no rows for december, got %+v", rows)
	}
}

func TestTopSkills_Idempotent(t *testing.T) {
	d := fixture()
	f := Filter{TopK: 2}
	first := d.TopSkills(f)
	for i := 0; i < 5; i++ {
		if again := d.TopSkills(f); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
	if again := New(d.Tables()).TopSkills(f); !reflect.DeepEqual(first, again) {
		t.Fatalf("rebuilt dataset differs: %+v vs %+v", first, again)
	}
}

func TestSkillShares(t *testing.T) {
	got := fixture().SkillShares(Filter{})
	if got.TotalJobs != 6 {
		t.Fatalf("expected 6 jobs, got %d", got.TotalJobs)
	}

	wantSkills := []string{"sql", "python", "excel", "aws"}
	wantCounts := []int{4, 3, 2, 1}
	if len(got.Rows) != len(wantSkills) {
		t.Fatalf("unexpected rows: %+v", got.Rows)
	}
	for i, r := range got.Rows {
		if r.Skill != wantSkills[i] || r.Count != wantCounts[i] {
			t.Fatalf("row %d: expected %s/%d, got %+v", i, wantSkills[i], wantCounts[i], r)
		}
		if want := float64(wantCounts[i]) * 100 / 6; math.Abs(r.Percent-want) > 1e-9 {
			t.Fatalf("row %d: expected %.4f%%, got %.4f%%", i, want, r.Percent)
		}
	}
}

func TestSkillShares_NeverExceedsDenominator(t *testing.T) {
	d := fixture()
	for _, f := range []Filter{{}, {Month: 1}, {JobTitle: "Data Analyst"}, {Country: "Germany"}, {SkillType: skill.TypeTool}} {
		got := d.SkillShares(f)
		for _, r := range got.Rows {
			if r.Count > got.TotalJobs || r.Percent > 100 {
				t.Fatalf("filter %+v: share above total: %+v (total %d)", f, r, got.TotalJobs)
			}
		}
	}
}

func TestSkillShares_EmptyDenominator(t *testing.T) {
	got := fixture().SkillShares(Filter{Month: 12})
	if got.TotalJobs != 0 || len(got.Rows) != 0 {
		t.Fatalf("expected empty share table, got %+v", got)
	}
	if got.Rows == nil {
		t.Fatalf("expected non-nil rows")
	}

	got = New(dataset.Tables{}).SkillShares(Filter{})
	if got.TotalJobs != 0 || len(got.Rows) != 0 {
		t.Fatalf("expected empty share table on empty dataset, got %+v", got)
	}
}

func TestSkillTypeCounts(t *testing.T) {
	got := fixture().SkillTypeCounts(Filter{})
	want := []TypeCount{
		{Type: skill.TypeLanguage, Count: 7, Percent: 70},
		{Type: skill.TypeTool, Count: 2, Percent: 20},
		{Type: skill.TypeCloud, Count: 1, Percent: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	sum := 0.0
	for _, r := range got {
		sum += r.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("expected percentages to sum to 100, got %f", sum)
	}

	if rows := fixture().SkillTypeCounts(Filter{Month: 12}); len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
}

func TestSkillTrend(t *testing.T) {
	got := fixture().SkillTrend(Filter{JobTitle: "Data Engineer"})
	want := []SkillTrendRow{
		{"Data Engineer", "python", "2023-01-07", "Full-time", 1},
		{"Data Engineer", "aws", "2023-01-07", "Full-time", 1},
		{"Data Engineer", "python", "2023-02-11", "Full-time", 1},
		{"Data Engineer", "sql", "2023-02-11", "Full-time", 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	got = fixture().SkillTrend(Filter{JobTitle: "Data Engineer", TopK: 1})
	for _, r := range got {
		if r.Skill != "python" {
			t.Fatalf("expected only python with top_k=1, got %+v", got)
		}
	}
}

func TestSkillSeriesByMonth(t *testing.T) {
	periods, series := fixture().SkillSeriesByMonth(Filter{JobTitle: "Data Engineer"})
	if !reflect.DeepEqual(periods, []string{"2023-01", "2023-02"}) {
		t.Fatalf("unexpected periods: %v", periods)
	}
	want := []SkillSeries{
		{Skill: "python", Points: []SeriesPoint{{"2023-01", 1}, {"2023-02", 1}}},
		{Skill: "aws", Points: []SeriesPoint{{"2023-01", 1}, {"2023-02", 0}}},
		{Skill: "sql", Points: []SeriesPoint{{"2023-01", 0}, {"2023-02", 1}}},
	}
	if !reflect.DeepEqual(series, want) {
		t.Fatalf("expected %+v, got %+v", want, series)
	}

	periods, series = fixture().SkillSeriesByMonth(Filter{Month: 12})
	if len(periods) != 0 || len(series) != 0 {
		t.Fatalf("expected empty series, got %v %v", periods, series)
	}
}

func TestFilter_MonthIgnoresYear(t *testing.T) {
	d := New(dataset.Tables{
		Jobs: []job.Posting{
			{ID: "1", TitleShort: "Data Analyst", PostedAt: time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "2", TitleShort: "Data Analyst", PostedAt: time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "3", TitleShort: "Data Analyst"},
		},
	})
	n := 0
	d.eachJob(Filter{Month: 5}, func(*job.Posting) { n++ })
	if n != 2 {
		t.Fatalf("expected 2 may postings, got %d", n)
	}
}
