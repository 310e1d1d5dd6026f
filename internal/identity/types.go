package identity

// User is the session account. The JSON shape doubles as the snapshot format
// mirrored into the storage adapter, so the field names follow the snapshot
// document, not the usual snake_case wire style.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Points  int    `json:"points"`
	Avatar  string `json:"avatar,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session is the result of a successful login or signup.
type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
