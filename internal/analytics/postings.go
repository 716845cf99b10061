package analytics

import (
	"sort"

	"dataitjobs/internal/domain/job"
)

const monthLayout = "2006-01"

type MonthCount struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PostingsByMonth counts filtered postings per calendar month, oldest first.
// Postings without a date are not counted.
func (d *Dataset) PostingsByMonth(f Filter) []MonthCount {
	idx := map[string]int{}
	rows := make([]MonthCount, 0)
	d.eachJob(f, func(p *job.Posting) {
		if !p.HasPostedAt() {
			return
		}
		k := p.PostedAt.Format(monthLayout)
		if i, ok := idx[k]; ok {
			rows[i].Count++
			return
		}
		idx[k] = len(rows)
		rows = append(rows, MonthCount{Month: k, Label: p.PostedAt.Format("Jan 2006"), Count: 1})
	})
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Month < rows[b].Month })
	return rows
}

type CountryCount struct {
	Country   string  `json:"country"`
	Count     int     `json:"count"`
	AvgSalary float64 `json:"avg_salary"`
}

// PostingsByCountry counts filtered postings per country, most postings first.
// AvgSalary only considers postings with a salary and is 0 when there are none.
func (d *Dataset) PostingsByCountry(f Filter) []CountryCount {
	type acc struct {
		sum float64
		n   int
	}

	idx := map[string]int{}
	rows := make([]CountryCount, 0)
	sal := make([]acc, 0)
	d.eachJob(f, func(p *job.Posting) {
		if p.Country == "" {
			return
		}
		i, ok := idx[p.Country]
		if !ok {
			i = len(rows)
			idx[p.Country] = i
			rows = append(rows, CountryCount{Country: p.Country})
			sal = append(sal, acc{})
		}
		rows[i].Count++
		if p.HasSalary() {
			sal[i].sum += p.Salary()
			sal[i].n++
		}
	})

	for i := range rows {
		if sal[i].n > 0 {
			rows[i].AvgSalary = sal[i].sum / float64(sal[i].n)
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Count != rows[b].Count {
			return rows[a].Count > rows[b].Count
		}
		return rows[a].Country < rows[b].Country
	})
	if f.TopK > 0 && len(rows) > f.TopK {
		rows = rows[:f.TopK]
	}
	return rows
}
