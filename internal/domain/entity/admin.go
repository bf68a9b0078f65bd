package entity

import "time"

// Session credential context of a logged-in admin. The API token is only
// ever carried here and passed explicitly to API calls.
type Session struct {
	UserID       string
	Email        string
	Token        string
	IsAdmin      bool
	LoginTime    time.Time
	LastActivity time.Time
}

// AdminAction audit record
type AdminAction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"` // "login", "import", "order_advance", ...
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
