package domain

import "time"

// DatasetStatus describes the dataset currently served and the health of the
// backing stores.
type DatasetStatus struct {
	Source          string    `json:"source"`
	Synthetic       bool      `json:"synthetic"`
	Warning         string    `json:"warning,omitempty"`
	Generation      uint64    `json:"generation"`
	TotalJobs       int       `json:"total_jobs"`
	TotalSkills     int       `json:"total_skills"`
	TotalLinks      int       `json:"total_links"`
	LoadedAt        time.Time `json:"loaded_at"`
	DatabaseHealthy bool      `json:"database_healthy"`
	RedisHealthy    bool      `json:"redis_healthy"`
	LiveClients     int       `json:"live_clients"`
	ServerTime      time.Time `json:"server_time"`
}
