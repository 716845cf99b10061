package analytics

import (
	"math"
	"sort"

	"dataitjobs/internal/domain/job"
)

type SalaryRow struct {
	JobTitleShort string  `json:"job_title_short"`
	AvgSalary     float64 `json:"avg_salary"`
	MaxSalary     float64 `json:"max_salary"`
	MinSalary     float64 `json:"min_salary"`
	Count         int     `json:"count"`
}

// SalarySummary groups postings that carry a yearly salary by job title.
// Postings without a salary are skipped. Rows are ordered by average salary,
// highest first, and truncated to f.TopK.
func (d *Dataset) SalarySummary(f Filter) []SalaryRow {
	idx := map[string]int{}
	rows := make([]SalaryRow, 0)
	sums := make([]float64, 0)

	for _, p := range d.salaries(f) {
		i, ok := idx[p.title]
		if !ok {
			i = len(rows)
			idx[p.title] = i
			rows = append(rows, SalaryRow{JobTitleShort: p.title, MaxSalary: p.value, MinSalary: p.value})
			sums = append(sums, 0)
		}
		sums[i] += p.value
		rows[i].Count++
		rows[i].MaxSalary = math.Max(rows[i].MaxSalary, p.value)
		rows[i].MinSalary = math.Min(rows[i].MinSalary, p.value)
	}

	for i := range rows {
		rows[i].AvgSalary = sums[i] / float64(rows[i].Count)
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].AvgSalary > rows[b].AvgSalary })
	if f.TopK > 0 && len(rows) > f.TopK {
		rows = rows[:f.TopK]
	}
	return rows
}

type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// SalaryHistogram splits the filtered salaries into equal-width bins spanning
// [min, max]. The last bin is closed on both ends.
func (d *Dataset) SalaryHistogram(f Filter, bins int) []HistogramBin {
	values := d.salaries(f)
	if len(values) == 0 || bins <= 0 {
		return []HistogramBin{}
	}

	lo, hi := values[0].value, values[0].value
	for _, v := range values[1:] {
		lo = math.Min(lo, v.value)
		hi = math.Max(hi, v.value)
	}
	if lo == hi {
		return []HistogramBin{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		i := int((v.value - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

type salaryPoint struct {
	title string
	value float64
}

func (d *Dataset) salaries(f Filter) []salaryPoint {
	out := make([]salaryPoint, 0)
	d.eachJob(f, func(p *job.Posting) {
		if !p.HasSalary() {
			return
		}
		out = append(out, salaryPoint{title: p.TitleShort, value: p.Salary()})
	})
	return out
}
