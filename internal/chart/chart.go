// Package chart holds the presentation view-model: one Config per chart,
// independent of how it is drawn.
package chart

import (
	"fmt"

	"dataitjobs/internal/analytics"
)

type Kind string

const (
	KindBar        Kind = "bar"
	KindPie        Kind = "pie"
	KindHistogram  Kind = "histogram"
	KindTimeSeries Kind = "timeseries"
	KindMap        Kind = "map"
)

const NoDataMessage = "No data for this selection."

type Series struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

type Config struct {
	Kind         Kind     `json:"kind"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	XAxis        []string `json:"x_axis"`
	YAxis        string   `json:"y_axis,omitempty"`
	Series       []Series `json:"series"`
	Horizontal   bool     `json:"horizontal,omitempty"`
	Empty        bool     `json:"empty"`
	EmptyMessage string   `json:"empty_message,omitempty"`
}

func (c Config) WithSubtitle(s string) Config {
	c.Subtitle = s
	return c
}

func (c Config) WithYAxis(label string) Config {
	c.YAxis = label
	return c
}

// WithEmptyMessage replaces the default "no data" text.
func (c Config) WithEmptyMessage(msg string) Config {
	if c.Empty {
		c.EmptyMessage = msg
	}
	return c
}

func Bar(title string, labels []string, series ...Series) Config {
	return build(KindBar, title, labels, series)
}

// HorizontalBar lists labels bottom to top, so callers pass them in ascending
// order to get the largest bar on top.
func HorizontalBar(title string, labels []string, series ...Series) Config {
	c := build(KindBar, title, labels, series)
	c.Horizontal = true
	return c
}

func Pie(title string, labels []string, values []float64) Config {
	return build(KindPie, title, labels, []Series{{Name: title, Data: values}})
}

func Histogram(title string, bins []analytics.HistogramBin) Config {
	labels := make([]string, 0, len(bins))
	counts := make([]float64, 0, len(bins))
	for _, b := range bins {
		labels = append(labels, fmt.Sprintf("%s-%s", compact(b.Lower), compact(b.Upper)))
		counts = append(counts, float64(b.Count))
	}
	return build(KindHistogram, title, labels, []Series{{Name: "Postings", Data: counts}})
}

func TimeSeries(title string, periods []string, series ...Series) Config {
	return build(KindTimeSeries, title, periods, series)
}

func Map(title string, countries []string, values []float64) Config {
	return build(KindMap, title, countries, []Series{{Name: title, Data: values}})
}

func build(kind Kind, title string, labels []string, series []Series) Config {
	if labels == nil {
		labels = []string{}
	}
	if series == nil {
		series = []Series{}
	}
	c := Config{Kind: kind, Title: title, XAxis: labels, Series: series}
	if isEmpty(labels, series) {
		c.Empty = true
		c.EmptyMessage = NoDataMessage
	}
	return c
}

func isEmpty(labels []string, series []Series) bool {
	if len(labels) == 0 || len(series) == 0 {
		return true
	}
	for _, s := range series {
		for _, v := range s.Data {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// compact formats salaries as 85k, 1.2M.
func compact(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.0fk", v/1_000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
