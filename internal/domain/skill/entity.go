package skill

import "strings"

const (
	TypeLanguage  = "language"
	TypeDatabase  = "database"
	TypeFramework = "framework"
	TypeTool      = "tool"
	TypeCloud     = "cloud"
	TypeOS        = "os"
	TypeOther     = "other"
)

type Skill struct {
	ID   string
	Name string
	Type string
}

type JobSkill struct {
	JobID   string
	SkillID string
}

// Category labels used by the public skills dimension file.
var typeAliases = map[string]string{
	"programming":   TypeLanguage,
	"language":      TypeLanguage,
	"languages":     TypeLanguage,
	"databases":     TypeDatabase,
	"database":      TypeDatabase,
	"webframeworks": TypeFramework,
	"libraries":     TypeFramework,
	"framework":     TypeFramework,
	"frameworks":    TypeFramework,
	"analyst_tools": TypeTool,
	"other":         TypeOther,
	"async":         TypeTool,
	"sync":          TypeTool,
	"tool":          TypeTool,
	"tools":         TypeTool,
	"cloud":         TypeCloud,
	"os":            TypeOS,
}

func NormalizeType(raw string) string {
	k := strings.ToLower(strings.TrimSpace(raw))
	k = strings.ReplaceAll(k, " ", "_")
	if v, ok := typeAliases[k]; ok {
		return v
	}
	return TypeOther
}
