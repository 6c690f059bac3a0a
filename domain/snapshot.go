package domain

// UserInfo is the read-only view of a User returned by queries.
type UserInfo struct {
	Username  string   `json:"username"`
	SessionID string   `json:"sessionId"`
	Online    bool     `json:"online"`
	Rooms     []string `json:"rooms"`
}

// RoomInfo is the read-only view of a Room returned by queries.
type RoomInfo struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"users"`
}
