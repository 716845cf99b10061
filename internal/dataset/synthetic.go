package dataset

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

var syntheticTitles = []struct {
	Short      string
	Long       string
	BaseSalary float64
}{
	{"Data Analyst", "Data Analyst", 90000},
	{"Data Scientist", "Data Scientist", 135000},
	{"Data Engineer", "Data Engineer", 130000},
	{"Senior Data Analyst", "Senior Data Analyst", 115000},
	{"Senior Data Scientist", "Senior Data Scientist", 155000},
	{"Senior Data Engineer", "Senior Data Engineer", 150000},
	{"Business Analyst", "Business Analyst", 85000},
	{"Machine Learning Engineer", "Machine Learning Engineer", 145000},
	{"Software Engineer", "Software Engineer", 125000},
	{"Cloud Engineer", "Cloud Engineer", 120000},
}

var syntheticCountries = []string{
	"United States", "India", "United Kingdom", "Germany", "France",
	"Canada", "Singapore", "Indonesia", "Australia", "Netherlands",
}

var syntheticSchedules = []string{"Full-time", "Full-time", "Full-time", "Contractor", "Part-time", "Internship"}

var syntheticSkills = []RawSkill{
	{ID: "0", Name: "sql", Type: "programming"},
	{ID: "1", Name: "python", Type: "programming"},
	{ID: "2", Name: "r", Type: "programming"},
	{ID: "3", Name: "java", Type: "programming"},
	{ID: "4", Name: "scala", Type: "programming"},
	{ID: "5", Name: "postgresql", Type: "databases"},
	{ID: "6", Name: "mongodb", Type: "databases"},
	{ID: "7", Name: "snowflake", Type: "cloud"},
	{ID: "8", Name: "aws", Type: "cloud"},
	{ID: "9", Name: "azure", Type: "cloud"},
	{ID: "10", Name: "gcp", Type: "cloud"},
	{ID: "11", Name: "spark", Type: "libraries"},
	{ID: "12", Name: "pandas", Type: "libraries"},
	{ID: "13", Name: "tensorflow", Type: "libraries"},
	{ID: "14", Name: "django", Type: "webframeworks"},
	{ID: "15", Name: "tableau", Type: "analyst_tools"},
	{ID: "16", Name: "power bi", Type: "analyst_tools"},
	{ID: "17", Name: "excel", Type: "analyst_tools"},
	{ID: "18", Name: "git", Type: "other"},
	{ID: "19", Name: "docker", Type: "other"},
	{ID: "20", Name: "linux", Type: "os"},
	{ID: "21", Name: "airflow", Type: "libraries"},
}

// Synthetic generates a deterministic dataset for the given seed. It stands
// in for the flat files when they cannot be read.
func Synthetic(seed int64, jobs int) RawTables {
	if jobs <= 0 {
		jobs = 2000
	}
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	out := RawTables{
		Jobs:   make([]RawJob, 0, jobs),
		Skills: append([]RawSkill(nil), syntheticSkills...),
		Links:  make([]RawLink, 0, jobs*4),
	}

	for i := 0; i < jobs; i++ {
		t := syntheticTitles[rng.Intn(len(syntheticTitles))]
		posted := start.Add(time.Duration(rng.Intn(365*24)) * time.Hour)

		salary := ""
		if rng.Float64() >= 0.3 {
			v := t.BaseSalary * (0.7 + rng.Float64()*0.6)
			salary = strconv.FormatFloat(float64(int64(v)), 'f', 1, 64)
		}

		id := strconv.Itoa(i)
		out.Jobs = append(out.Jobs, RawJob{
			ID:            id,
			TitleShort:    t.Short,
			Title:         fmt.Sprintf("%s #%d", t.Long, i),
			PostedDate:    posted.Format("2006-01-02 15:04:05"),
			SalaryYearAvg: salary,
			Country:       syntheticCountries[rng.Intn(len(syntheticCountries))],
			ScheduleType:  syntheticSchedules[rng.Intn(len(syntheticSchedules))],
		})

		n := 2 + rng.Intn(5)
		for _, p := range rng.Perm(len(syntheticSkills))[:n] {
			out.Links = append(out.Links, RawLink{JobID: id, SkillID: syntheticSkills[p].ID})
		}
	}

	return out
}
