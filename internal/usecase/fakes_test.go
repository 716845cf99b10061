package usecase

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"dataitjobs/internal/dataset"
	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
)

type fakeLoader struct {
	mu     sync.Mutex
	calls  int
	result dataset.LoadResult
}

func (f *fakeLoader) Load(context.Context) dataset.LoadResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.result
}

func (f *fakeLoader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCache struct {
	mu     sync.Mutex
	items  map[string][]byte
	locked map[string]bool
	gets   int
	hits   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string][]byte{}, locked: map[string]bool{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	delete(c.locked, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *fakeCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked[key] {
		return false, nil
	}
	c.locked[key] = true
	return true, nil
}

type fakeNotifier struct {
	generations []uint64
}

func (n *fakeNotifier) DatasetReloaded(generation uint64, _ string, _ bool) {
	n.generations = append(n.generations, generation)
}

func salary(v float64) *float64 { return &v }

func sampleTables() dataset.Tables {
	jan := time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2023, time.February, 3, 0, 0, 0, 0, time.UTC)
	return dataset.Tables{
		Jobs: []job.Posting{
			{ID: "1", TitleShort: "Data Analyst", PostedAt: jan, SalaryYearAvg: salary(90000), Country: "Indonesia", ScheduleType: "Full-time"},
			{ID: "2", TitleShort: "Data Analyst", PostedAt: feb, Country: "Germany", ScheduleType: "Full-time"},
			{ID: "3", TitleShort: "Data Engineer", PostedAt: jan, SalaryYearAvg: salary(130000), Country: "Germany", ScheduleType: "Contractor"},
		},
		Skills: []skill.Skill{
			{ID: "10", Name: "sql", Type: skill.TypeLanguage},
			{ID: "11", Name: "python", Type: skill.TypeLanguage},
			{ID: "12", Name: "tableau", Type: skill.TypeTool},
		},
		Links: []skill.JobSkill{
			{JobID: "1", SkillID: "10"},
			{JobID: "1", SkillID: "12"},
			{JobID: "2", SkillID: "10"},
			{JobID: "3", SkillID: "11"},
			{JobID: "3", SkillID: "10"},
		},
	}
}

func newTestDashboard(result dataset.LoadResult) (*Dashboard, *DatasetStore, *fakeLoader, *fakeCache, *fakeNotifier) {
	loader := &fakeLoader{result: result}
	cache := newFakeCache()
	notifier := &fakeNotifier{}
	store := NewDatasetStore(loader, cache, notifier, nil)
	return NewDashboard(store, cache, time.Minute, nil), store, loader, cache, notifier
}
