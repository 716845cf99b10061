package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"dataitjobs/internal/domain/job"
	"dataitjobs/internal/domain/skill"
)

const (
	JobsFile   = "job_postings_fact.csv"
	SkillsFile = "skills_dim.csv"
	LinksFile  = "skills_job_dim.csv"
)

// RawJob mirrors one row of the postings file before cleaning.
type RawJob struct {
	ID            string
	TitleShort    string
	Title         string
	PostedDate    string
	SalaryYearAvg string
	Country       string
	ScheduleType  string
}

type RawSkill struct {
	ID   string
	Name string
	Type string
}

type RawLink struct {
	JobID   string
	SkillID string
}

type RawTables struct {
	Jobs   []RawJob
	Skills []RawSkill
	Links  []RawLink
}

// Tables holds the cleaned, typed tables. Every link references an existing
// job and skill.
type Tables struct {
	Jobs   []job.Posting
	Skills []skill.Skill
	Links  []skill.JobSkill
}

func (t Tables) Empty() bool {
	return len(t.Jobs) == 0
}

// Fingerprint is a content hash of the tables. Two processes holding the same
// rows in the same order get the same value.
func (t Tables) Fingerprint() string {
	h := sha256.New()
	field := func(s string) {
		h.Write([]byte(strconv.Itoa(len(s))))
		h.Write([]byte{':'})
		h.Write([]byte(s))
	}
	for _, j := range t.Jobs {
		field(j.ID)
		field(j.TitleShort)
		field(j.Title)
		field(j.PostedAt.UTC().Format("2006-01-02T15:04:05"))
		if j.HasSalary() {
			field(strconv.FormatFloat(j.Salary(), 'g', -1, 64))
		} else {
			field("")
		}
		field(j.Country)
		field(j.ScheduleType)
	}
	h.Write([]byte{'|'})
	for _, s := range t.Skills {
		field(s.ID)
		field(s.Name)
		field(s.Type)
	}
	h.Write([]byte{'|'})
	for _, l := range t.Links {
		field(l.JobID)
		field(l.SkillID)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

type Source interface {
	Name() string
	Read(ctx context.Context) (RawTables, error)
}
