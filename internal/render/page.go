// Package render draws chart configs as an interactive HTML page.
package render

import (
	"io"

	"dataitjobs/internal/chart"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "960px"
	chartHeight = "480px"
)

// Page writes one HTML document containing every config, in order. Empty
// configs are drawn as a titled placeholder carrying the empty message.
func Page(w io.Writer, title string, configs []chart.Config) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, c := range configs {
		page.AddCharts(Charter(c))
	}
	return page.Render(w)
}

// Charter converts a single config into its echarts counterpart.
func Charter(c chart.Config) components.Charter {
	if c.Empty {
		return placeholder(c)
	}
	switch c.Kind {
	case chart.KindPie:
		return pie(c)
	case chart.KindTimeSeries:
		return line(c)
	case chart.KindMap:
		return worldMap(c)
	default:
		return bar(c)
	}
}

func globals(c chart.Config) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: c.Subtitle}),
	}
}

func placeholder(c chart.Config) components.Charter {
	b := charts.NewBar()
	sub := c.EmptyMessage
	if c.Subtitle != "" {
		sub = c.EmptyMessage + " " + c.Subtitle
	}
	b.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: sub}),
	)
	b.SetXAxis([]string{})
	return b
}

// bar also draws histograms: bins are ordered categories.
func bar(c chart.Config) components.Charter {
	b := charts.NewBar()
	b.SetGlobalOptions(globals(c)...)
	b.SetXAxis(c.XAxis)
	for _, s := range c.Series {
		data := make([]opts.BarData, 0, len(s.Data))
		for _, v := range s.Data {
			data = append(data, opts.BarData{Value: v})
		}
		b.AddSeries(s.Name, data)
	}
	if c.Horizontal {
		b.XYReversal()
	}
	return b
}

func pie(c chart.Config) components.Charter {
	p := charts.NewPie()
	p.SetGlobalOptions(globals(c)...)
	for _, s := range c.Series {
		data := make([]opts.PieData, 0, len(s.Data))
		for i, v := range s.Data {
			if i >= len(c.XAxis) {
				break
			}
			data = append(data, opts.PieData{Name: c.XAxis[i], Value: v})
		}
		p.AddSeries(s.Name, data)
	}
	return p
}

func line(c chart.Config) components.Charter {
	l := charts.NewLine()
	l.SetGlobalOptions(globals(c)...)
	l.SetXAxis(c.XAxis)
	for _, s := range c.Series {
		data := make([]opts.LineData, 0, len(s.Data))
		for _, v := range s.Data {
			data = append(data, opts.LineData{Value: v})
		}
		l.AddSeries(s.Name, data)
	}
	return l
}

func worldMap(c chart.Config) components.Charter {
	m := charts.NewMap()
	m.RegisterMapType("world")
	m.SetGlobalOptions(globals(c)...)
	for _, s := range c.Series {
		data := make([]opts.MapData, 0, len(s.Data))
		for i, v := range s.Data {
			if i >= len(c.XAxis) {
				break
			}
			data = append(data, opts.MapData{Name: c.XAxis[i], Value: v})
		}
		m.AddSeries(s.Name, data)
	}
	return m
}
