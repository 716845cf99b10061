package analytics

import (
	"strings"
	"unicode"
)

// Short forms people type for the canonical job categories.
var titleSynonyms = map[string]string{
	"da":                 "data analyst",
	"analyst":            "data analyst",
	"ds":                 "data scientist",
	"scientist":          "data scientist",
	"de":                 "data engineer",
	"sr data analyst":    "senior data analyst",
	"sr data scientist":  "senior data scientist",
	"sr data engineer":   "senior data engineer",
	"ba":                 "business analyst",
	"mle":                "machine learning engineer",
	"ml engineer":        "machine learning engineer",
	"swe":                "software engineer",
	"software developer": "software engineer",
	"cloud":              "cloud engineer",
	"data analytics":     "data analyst",
	"data science":       "data scientist",
	"data engineering":   "data engineer",
	"machine learning":   "machine learning engineer",
	"business analytics": "business analyst",
}

// NormalizeTitle lowercases, drops punctuation and collapses whitespace.
func NormalizeTitle(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	input = strings.ToLower(input)

	b := strings.Builder{}
	b.Grow(len(input))
	lastWasSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if unicode.IsSpace(r) || r == '-' || r == '_' || r == '/' {
			if b.Len() == 0 || lastWasSpace {
				continue
			}
			b.WriteByte(' ')
			lastWasSpace = true
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CanonicalTitle resolves user input to a job_title_short present in the
// data, ignoring case and punctuation and accepting common short forms.
func (d *Dataset) CanonicalTitle(input string) (string, bool) {
	if d == nil {
		return "", false
	}
	n := NormalizeTitle(input)
	if n == "" {
		return "", false
	}
	if t, ok := d.titles[n]; ok {
		return t, true
	}
	if syn, ok := titleSynonyms[n]; ok {
		if t, ok := d.titles[syn]; ok {
			return t, true
		}
	}
	return "", false
}
