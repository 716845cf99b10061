package dto

import "time"

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type DatasetReloadResponse struct {
	Generation uint64    `json:"generation"`
	Source     string    `json:"source"`
	Synthetic  bool      `json:"synthetic"`
	Warning    string    `json:"warning,omitempty"`
	Jobs       int       `json:"jobs"`
	Skills     int       `json:"skills"`
	Links      int       `json:"links"`
	LoadedAt   time.Time `json:"loaded_at"`
}
