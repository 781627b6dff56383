package dto

// SessionResponse one academic session.
type SessionResponse struct {
	Label   string `json:"label"` // e.g. "2023-2024"
	Start   string `json:"start"`
	End     string `json:"end"` // exclusive
	Current bool   `json:"current"`
}

// SessionStatsResponse a session that has inscriptions.
type SessionStatsResponse struct {
	SessionResponse
	Inscriptions int64 `json:"inscriptions"`
	Confirmed    int64 `json:"confirmed"`
}
