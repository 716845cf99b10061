package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

const (
	viewCachePrefix = "dashboard:"
	reloadLockKey   = "dataset:reload:lock"
)

type ViewCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type viewCacheKeyInput struct {
	Month        int    `json:"month"`
	JobTitle     string `json:"job_title"`
	SkillType    string `json:"skill_type"`
	Country      string `json:"country"`
	ScheduleType string `json:"schedule_type"`
	TopK         int    `json:"top_k"`
	Bins         int    `json:"bins"`
}

// normalizeCacheValue folds exactly what the analytics filters treat as
// equal: surrounding space and case.
func normalizeCacheValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ViewCacheKey identifies one page view of one dataset version. The version
// is a content fingerprint so instances sharing Redis never read each
// other's views of a different dataset. Params must already be validated.
func ViewCacheKey(page, version string, p DashboardParams) string {
	in := viewCacheKeyInput{
		Month:        p.Month,
		JobTitle:     normalizeCacheValue(p.JobTitle),
		SkillType:    normalizeCacheValue(p.SkillType),
		Country:      normalizeCacheValue(p.Country),
		ScheduleType: normalizeCacheValue(p.ScheduleType),
		TopK:         p.TopK,
		Bins:         p.Bins,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return viewCachePrefix + version + ":" + page + ":" + hex.EncodeToString(sum[:])
}
