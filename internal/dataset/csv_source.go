package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dataitjobs/internal/pkg/apperror"

	"golang.org/x/sync/errgroup"
)

type CSVSource struct {
	Dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Read(ctx context.Context) (RawTables, error) {
	if s == nil {
		return RawTables{}, apperror.Internal("nil csv source", nil)
	}

	var out RawTables
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := readCSVFile(gctx, filepath.Join(s.Dir, JobsFile),
			"job_id", "job_title_short", "job_title", "job_posted_date", "salary_year_avg", "job_country", "job_schedule_type")
		if err != nil {
			return err
		}
		jobs := make([]RawJob, 0, len(rows))
		for _, r := range rows {
			jobs = append(jobs, RawJob{
				ID:            r[0],
				TitleShort:    r[1],
				Title:         r[2],
				PostedDate:    r[3],
				SalaryYearAvg: r[4],
				Country:       r[5],
				ScheduleType:  r[6],
			})
		}
		out.Jobs = jobs
		return nil
	})

	g.Go(func() error {
		rows, err := readCSVFile(gctx, filepath.Join(s.Dir, SkillsFile), "skill_id", "skills", "type")
		if err != nil {
			return err
		}
		skills := make([]RawSkill, 0, len(rows))
		for _, r := range rows {
			skills = append(skills, RawSkill{ID: r[0], Name: r[1], Type: r[2]})
		}
		out.Skills = skills
		return nil
	})

	g.Go(func() error {
		rows, err := readCSVFile(gctx, filepath.Join(s.Dir, LinksFile), "job_id", "skill_id")
		if err != nil {
			return err
		}
		links := make([]RawLink, 0, len(rows))
		for _, r := range rows {
			links = append(links, RawLink{JobID: r[0], SkillID: r[1]})
		}
		out.Links = links
		return nil
	})

	if err := g.Wait(); err != nil {
		return RawTables{}, err
	}
	return out, nil
}

// readCSVFile returns, for every data row, the values of the requested columns
// in the requested order. Columns are located by header name.
func readCSVFile(ctx context.Context, path string, columns ...string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperror.NotFound(fmt.Sprintf("data file %s", path), err)
		}
		return nil, apperror.Unavailable(fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	return parseCSV(ctx, f, path, columns...)
}

func parseCSV(ctx context.Context, r io.Reader, name string, columns ...string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	headers, err := reader.Read()
	if err != nil {
		return nil, apperror.Malformed(fmt.Sprintf("read header of %s", name), err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	positions := make([]int, len(columns))
	var missing []string
	for i, c := range columns {
		pos, ok := index[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		positions[i] = pos
	}
	if len(missing) > 0 {
		return nil, apperror.Malformed(fmt.Sprintf("%s is missing columns: %s", name, strings.Join(missing, ", ")), nil)
	}

	var out [][]string
	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperror.Malformed(fmt.Sprintf("parse %s line %d", name, line), err)
		}

		row := make([]string, len(columns))
		for i, pos := range positions {
			if pos < len(rec) {
				row[i] = rec[pos]
			}
		}
		out = append(out, row)
	}

	return out, nil
}
