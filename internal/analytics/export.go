package analytics

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ExportFileName is the name the top-skills dump is written under.
const ExportFileName = "job_title_skill_count.csv"

var exportHeader = []string{"job_title_short", "skills", "type", "count"}

func WriteSkillCountsCSV(w io.Writer, rows []SkillCount) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.JobTitleShort, r.Skill, r.Type, strconv.Itoa(r.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
