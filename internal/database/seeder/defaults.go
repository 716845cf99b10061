package seeder

import "dataitjobs/internal/dataset"

// ForTables returns the seeders that write t, parents before links. With
// replace set the existing rows are removed first.
func ForTables(t dataset.Tables, replace bool) []Seeder {
	out := make([]Seeder, 0, 4)
	if replace {
		out = append(out, TruncateSeeder{})
	}
	return append(out,
		SkillsSeeder{Skills: t.Skills},
		JobPostingsSeeder{Jobs: t.Jobs},
		JobSkillsSeeder{Links: t.Links},
	)
}
