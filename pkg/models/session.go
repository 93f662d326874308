package models

// PlaceholderToken is substituted when the backend login response carries
// no token. Downstream code must treat it as an unauthenticated session.
const PlaceholderToken = "offline-session"

type Session struct {
	Role   string `json:"role"`
	Token  string `json:"token"`
	UserID int64  `json:"user_id,omitempty"`
}

// Preferences holds per-installation dashboard flags. Persisted under its
// own storage key, separately from the order cache.
type Preferences struct {
	DarkMode bool `json:"dark_mode"`
}
