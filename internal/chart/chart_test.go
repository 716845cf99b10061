package chart

import (
	"testing"

	"dataitjobs/internal/analytics"
)

func TestBar(t *testing.T) {
	c := Bar("Top skills", []string{"sql", "python"}, Series{Name: "Count", Data: []float64{3, 1}})
	if c.Kind != KindBar || c.Empty || c.Horizontal {
		t.Fatalf("unexpected config: %+v", c)
	}
	if len(c.XAxis) != 2 || c.Series[0].Data[0] != 3 {
		t.Fatalf("unexpected data: %+v", c)
	}
}

func TestEmptyState(t *testing.T) {
	cases := []Config{
		Bar("a", nil),
		Bar("b", []string{}, Series{Name: "Count"}),
		Pie("c", []string{"x"}, []float64{0}),
		Histogram("d", nil),
		TimeSeries("e", nil),
		Map("f", nil, nil),
	}
	for _, c := range cases {
		if !c.Empty || c.EmptyMessage != NoDataMessage {
			t.Fatalf("%s: expected empty state, got %+v", c.Title, c)
		}
		if c.XAxis == nil || c.Series == nil {
			t.Fatalf("%s: expected non-nil slices", c.Title)
		}
	}

	c := Bar("skills", nil).WithEmptyMessage("No skills found for this selection.")
	if c.EmptyMessage != "No skills found for this selection." {
		t.Fatalf("unexpected message: %q", c.EmptyMessage)
	}
	if c := Bar("x", []string{"a"}, Series{Data: []float64{1}}).WithEmptyMessage("nope"); c.EmptyMessage != "" {
		t.Fatalf("message set on non-empty chart: %+v", c)
	}
}

func TestHistogramLabels(t *testing.T) {
	c := Histogram("Salaries", []analytics.HistogramBin{
		{Lower: 80000, Upper: 115000, Count: 2},
		{Lower: 115000, Upper: 1500000, Count: 3},
	})
	if c.Kind != KindHistogram || c.Empty {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.XAxis[0] != "80k-115k" || c.XAxis[1] != "115k-1.5M" {
		t.Fatalf("unexpected labels: %v", c.XAxis)
	}
}

func TestHorizontalBar(t *testing.T) {
	c := HorizontalBar("Pay", []string{"a"}, Series{Data: []float64{1}}).WithSubtitle("sample").WithYAxis("USD")
	if !c.Horizontal || c.Subtitle != "sample" || c.YAxis != "USD" {
		t.Fatalf("unexpected config: %+v", c)
	}
}
