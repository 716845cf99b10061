package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"dataitjobs/internal/analytics"
	"dataitjobs/internal/chart"
	"dataitjobs/internal/pkg/logger"
	"dataitjobs/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	noSkillsMessage = "No skills found for this selection."
	noSalaryMessage = "No salary data for this selection."
)

type DashboardUsecase interface {
	Filters(ctx context.Context) (FiltersView, error)
	Overview(ctx context.Context, p DashboardParams) (OverviewView, error)
	Skills(ctx context.Context, p DashboardParams) (SkillsView, error)
	Trends(ctx context.Context, p DashboardParams) (TrendsView, error)
	Geography(ctx context.Context, p DashboardParams) (GeographyView, error)
	Page(ctx context.Context, page string, p DashboardParams) (PageView, error)
	ExportTopSkills(ctx context.Context, w io.Writer, p DashboardParams) error
}

// PageMeta is carried by every view so clients can show the synthetic-data
// warning and the "no data" state.
type PageMeta struct {
	Generation uint64 `json:"generation"`
	Source     string `json:"source"`
	Synthetic  bool   `json:"synthetic"`
	Warning    string `json:"warning,omitempty"`
	Empty      bool   `json:"empty"`
	Message    string `json:"message,omitempty"`
}

type FiltersView struct {
	PageMeta
	analytics.Options
}

type OverviewView struct {
	PageMeta
	Params    DashboardParams          `json:"params"`
	Salaries  []analytics.SalaryRow    `json:"salaries"`
	Histogram []analytics.HistogramBin `json:"histogram"`
	Charts    []chart.Config           `json:"charts"`
}

type SkillsView struct {
	PageMeta
	Params    DashboardParams        `json:"params"`
	TopSkills []analytics.SkillCount `json:"top_skills"`
	Shares    analytics.ShareTable   `json:"shares"`
	Types     []analytics.TypeCount  `json:"types"`
	Charts    []chart.Config         `json:"charts"`
}

type TrendsView struct {
	PageMeta
	Params  DashboardParams         `json:"params"`
	Months  []analytics.MonthCount  `json:"months"`
	Periods []string                `json:"periods"`
	Series  []analytics.SkillSeries `json:"series"`
	Charts  []chart.Config          `json:"charts"`
}

type GeographyView struct {
	PageMeta
	Params    DashboardParams          `json:"params"`
	Countries []analytics.CountryCount `json:"countries"`
	Charts    []chart.Config           `json:"charts"`
}

// PageView is the page-independent shape used by the HTML renderer.
type PageView struct {
	PageMeta
	Title  string         `json:"title"`
	Charts []chart.Config `json:"charts"`
}

type Dashboard struct {
	store  *DatasetStore
	cache  ViewCache
	ttl    time.Duration
	logger *zap.Logger
	tracer trace.Tracer
}

func NewDashboard(store *DatasetStore, cache ViewCache, ttl time.Duration, log *zap.Logger) *Dashboard {
	return &Dashboard{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger.OrNop(log),
		tracer: telemetry.Tracer("usecase.dashboard"),
	}
}

func (u *Dashboard) Filters(ctx context.Context) (FiltersView, error) {
	ctx, span := u.tracer.Start(ctx, "Dashboard.Filters")
	defer span.End()

	snap := u.store.Get(ctx)
	opts := snap.Data.Options()
	m := meta(snap)
	if opts.TotalJobs == 0 {
		m.Empty = true
		m.Message = chart.NoDataMessage
	}
	return FiltersView{PageMeta: m, Options: opts}, nil
}

func (u *Dashboard) Overview(ctx context.Context, p DashboardParams) (OverviewView, error) {
	ctx, span := u.start(ctx, PageOverview, p)
	defer span.End()

	snap := u.store.Get(ctx)
	p, err := p.normalize(snap.Data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return OverviewView{}, err
	}

	return readThrough(ctx, u, PageOverview, snap, p, func() OverviewView {
		f := p.filter()
		salaries := snap.Data.SalarySummary(f)
		hist := snap.Data.SalaryHistogram(f, p.Bins)

		labels := make([]string, 0, len(salaries))
		avg := make([]float64, 0, len(salaries))
		maxs := make([]float64, 0, len(salaries))
		mins := make([]float64, 0, len(salaries))
		// ascending so the best paid title ends up on top of a horizontal bar
		for i := len(salaries) - 1; i >= 0; i-- {
			r := salaries[i]
			labels = append(labels, r.JobTitleShort)
			avg = append(avg, r.AvgSalary)
			maxs = append(maxs, r.MaxSalary)
			mins = append(mins, r.MinSalary)
		}

		title := "Highest paying job titles"
		if p.TopK > 0 {
			title = fmt.Sprintf("Top %d highest paying job titles", p.TopK)
		}
		sub := subtitle(snap, p)
		charts := []chart.Config{
			chart.HorizontalBar(title, labels,
				chart.Series{Name: "Average salary", Data: avg},
				chart.Series{Name: "Max salary", Data: maxs},
				chart.Series{Name: "Min salary", Data: mins},
			).WithSubtitle(sub).WithYAxis("USD / year").WithEmptyMessage(noSalaryMessage),
			chart.Histogram("Yearly salary distribution", hist).WithSubtitle(sub).WithEmptyMessage(noSalaryMessage),
		}

		m := meta(snap)
		if len(salaries) == 0 {
			m.Empty = true
			m.Message = noSalaryMessage
		}
		return OverviewView{PageMeta: m, Params: p, Salaries: salaries, Histogram: hist, Charts: charts}
	}), nil
}

func (u *Dashboard) Skills(ctx context.Context, p DashboardParams) (SkillsView, error) {
	ctx, span := u.start(ctx, PageSkills, p)
	defer span.End()

	snap := u.store.Get(ctx)
	p, err := p.normalize(snap.Data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return SkillsView{}, err
	}

	return readThrough(ctx, u, PageSkills, snap, p, func() SkillsView {
		f := p.filter()
		top := snap.Data.TopSkills(f)
		shares := snap.Data.SkillShares(f)
		types := snap.Data.SkillTypeCounts(analytics.Filter{
			Month:        f.Month,
			JobTitle:     f.JobTitle,
			Country:      f.Country,
			ScheduleType: f.ScheduleType,
		})

		skillLabels := make([]string, 0, len(shares.Rows))
		skillCounts := make([]float64, 0, len(shares.Rows))
		for _, r := range shares.Rows {
			skillLabels = append(skillLabels, r.Skill)
			skillCounts = append(skillCounts, float64(r.Count))
		}
		typeLabels := make([]string, 0, len(types))
		typeCounts := make([]float64, 0, len(types))
		for _, r := range types {
			typeLabels = append(typeLabels, r.Type)
			typeCounts = append(typeCounts, float64(r.Count))
		}

		scope := "all job titles"
		if p.JobTitle != "" {
			scope = p.JobTitle
		}
		title := "Most requested skills for " + scope
		if p.TopK > 0 {
			title = fmt.Sprintf("Top %d skills for %s", p.TopK, scope)
		}
		sub := subtitle(snap, p)
		charts := []chart.Config{
			chart.Bar(title, skillLabels, chart.Series{Name: "Postings", Data: skillCounts}).
				WithSubtitle(sub).WithYAxis("Postings").WithEmptyMessage(noSkillsMessage),
			chart.Pie("Skill types", typeLabels, typeCounts).WithSubtitle(sub),
		}

		m := meta(snap)
		if len(top) == 0 {
			m.Empty = true
			m.Message = noSkillsMessage
		}
		return SkillsView{PageMeta: m, Params: p, TopSkills: top, Shares: shares, Types: types, Charts: charts}
	}), nil
}

func (u *Dashboard) Trends(ctx context.Context, p DashboardParams) (TrendsView, error) {
	ctx, span := u.start(ctx, PageTrends, p)
	defer span.End()

	snap := u.store.Get(ctx)
	p, err := p.normalize(snap.Data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return TrendsView{}, err
	}

	return readThrough(ctx, u, PageTrends, snap, p, func() TrendsView {
		f := p.filter()
		postings := analytics.Filter{
			Month:        f.Month,
			JobTitle:     f.JobTitle,
			Country:      f.Country,
			ScheduleType: f.ScheduleType,
		}
		months := snap.Data.PostingsByMonth(postings)
		periods, series := snap.Data.SkillSeriesByMonth(f)

		monthLabels := make([]string, 0, len(months))
		monthCounts := make([]float64, 0, len(months))
		for _, m := range months {
			monthLabels = append(monthLabels, m.Label)
			monthCounts = append(monthCounts, float64(m.Count))
		}
		skillSeries := make([]chart.Series, 0, len(series))
		for _, s := range series {
			data := make([]float64, 0, len(s.Points))
			for _, pt := range s.Points {
				data = append(data, float64(pt.Count))
			}
			skillSeries = append(skillSeries, chart.Series{Name: s.Skill, Data: data})
		}

		sub := subtitle(snap, p)
		charts := []chart.Config{
			chart.TimeSeries("Job postings per month", monthLabels, chart.Series{Name: "Postings", Data: monthCounts}).WithSubtitle(sub),
			chart.TimeSeries("Skill demand over time", periods, skillSeries...).WithSubtitle(sub).WithEmptyMessage(noSkillsMessage),
		}

		m := meta(snap)
		if len(months) == 0 {
			m.Empty = true
			m.Message = chart.NoDataMessage
		}
		return TrendsView{PageMeta: m, Params: p, Months: months, Periods: periods, Series: series, Charts: charts}
	}), nil
}

func (u *Dashboard) Geography(ctx context.Context, p DashboardParams) (GeographyView, error) {
	ctx, span := u.start(ctx, PageGeography, p)
	defer span.End()

	snap := u.store.Get(ctx)
	p, err := p.normalize(snap.Data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return GeographyView{}, err
	}

	return readThrough(ctx, u, PageGeography, snap, p, func() GeographyView {
		f := p.filter()
		f.TopK = 0
		countries := snap.Data.PostingsByCountry(f)

		names := make([]string, 0, len(countries))
		counts := make([]float64, 0, len(countries))
		for _, c := range countries {
			names = append(names, c.Country)
			counts = append(counts, float64(c.Count))
		}

		payLabels := make([]string, 0, len(countries))
		pay := make([]float64, 0, len(countries))
		for _, c := range countries {
			if p.TopK > 0 && len(payLabels) >= p.TopK {
				break
			}
			if c.AvgSalary <= 0 {
				continue
			}
			payLabels = append(payLabels, c.Country)
			pay = append(pay, c.AvgSalary)
		}

		sub := subtitle(snap, p)
		charts := []chart.Config{
			chart.Map("Job postings by country", names, counts).WithSubtitle(sub),
			chart.Bar("Average salary in the busiest countries", payLabels, chart.Series{Name: "Average salary", Data: pay}).
				WithSubtitle(sub).WithYAxis("USD / year").WithEmptyMessage(noSalaryMessage),
		}

		m := meta(snap)
		if len(countries) == 0 {
			m.Empty = true
			m.Message = chart.NoDataMessage
		}
		return GeographyView{PageMeta: m, Params: p, Countries: countries, Charts: charts}
	}), nil
}

// Page builds any dashboard page in its renderer-facing shape.
func (u *Dashboard) Page(ctx context.Context, page string, p DashboardParams) (PageView, error) {
	switch page {
	case PageOverview:
		v, err := u.Overview(ctx, p)
		return PageView{PageMeta: v.PageMeta, Title: "Overview", Charts: v.Charts}, err
	case PageSkills:
		v, err := u.Skills(ctx, p)
		return PageView{PageMeta: v.PageMeta, Title: "Skills", Charts: v.Charts}, err
	case PageTrends:
		v, err := u.Trends(ctx, p)
		return PageView{PageMeta: v.PageMeta, Title: "Trends", Charts: v.Charts}, err
	case PageGeography:
		v, err := u.Geography(ctx, p)
		return PageView{PageMeta: v.PageMeta, Title: "Geography", Charts: v.Charts}, err
	default:
		return PageView{}, ErrNotFound
	}
}

// ExportTopSkills writes the top-skills rows as CSV. Without an explicit
// top_k every row is written.
func (u *Dashboard) ExportTopSkills(ctx context.Context, w io.Writer, p DashboardParams) error {
	ctx, span := u.start(ctx, "export", p)
	defer span.End()

	if p.TopK == 0 {
		p.All = true
	}
	snap := u.store.Get(ctx)
	p, err := p.normalize(snap.Data)
	if err != nil {
		return err
	}
	rows := snap.Data.TopSkills(p.filter())
	if err := analytics.WriteSkillCountsCSV(w, rows); err != nil {
		u.logger.Error("top skills export failed", zap.Error(err))
		span.SetStatus(codes.Error, err.Error())
		return ErrInternal
	}
	u.logger.Info("top skills exported", zap.Int("rows", len(rows)), zap.Uint64("generation", snap.Generation))
	return nil
}

func (u *Dashboard) start(ctx context.Context, page string, p DashboardParams) (context.Context, trace.Span) {
	ctx, span := u.tracer.Start(ctx, "Dashboard."+page)
	span.SetAttributes(
		telemetry.Int("dashboard.month", p.Month),
		telemetry.String("dashboard.job_title", p.JobTitle),
		telemetry.String("dashboard.skill_type", p.SkillType),
		telemetry.Int("dashboard.top_k", p.TopK),
	)
	return ctx, span
}

func readThrough[T any](ctx context.Context, u *Dashboard, page string, snap *Snapshot, p DashboardParams, build func() T) T {
	if u.cache == nil {
		return build()
	}

	key := ViewCacheKey(page, snap.Version, p)
	var cached T
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		u.logger.Debug("view cache hit", zap.String("page", page), zap.String("key", key))
		trace.SpanFromContext(ctx).SetAttributes(telemetry.Bool("cache.hit", true))
		return cached
	}

	v := build()
	if err := u.cache.SetJSON(ctx, key, v, u.ttl); err != nil {
		u.logger.Warn("view cache write failed", zap.String("key", key), zap.Error(err))
	}
	trace.SpanFromContext(ctx).SetAttributes(telemetry.Bool("cache.hit", false))
	return v
}

func meta(snap *Snapshot) PageMeta {
	return PageMeta{
		Generation: snap.Generation,
		Source:     snap.Source,
		Synthetic:  snap.Synthetic,
		Warning:    snap.Warning,
	}
}

func subtitle(snap *Snapshot, p DashboardParams) string {
	parts := make([]string, 0, 5)
	if p.Month != 0 {
		parts = append(parts, time.Month(p.Month).String())
	}
	if p.Country != "" {
		parts = append(parts, p.Country)
	}
	if p.ScheduleType != "" {
		parts = append(parts, p.ScheduleType)
	}
	if p.SkillType != "" {
		parts = append(parts, p.SkillType)
	}
	if snap.Synthetic {
		parts = append(parts, "sample data")
	}
	return strings.Join(parts, " | ")
}
