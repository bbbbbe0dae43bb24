// Package session tracks per-browser state: whether the human
// verification challenge was passed and which key or admin is logged in.
package session

import "time"

// State is everything the gateway remembers about one browser session.
// The zero value is a fresh, unauthenticated session.
type State struct {
	// KeyID is set after a successful key login.
	KeyID *uint `json:"key_id,omitempty"`
	// AdminID is set after a successful admin login.
	AdminID *uint `json:"admin_id,omitempty"`
	// ChallengePassed records that the human verification challenge
	// was solved in this session.
	ChallengePassed bool `json:"challenge_passed,omitempty"`
}

// LoggedIn reports whether a key login is attached.
func (s State) LoggedIn() bool { return s.KeyID != nil }

// AdminLoggedIn reports whether an admin login is attached.
func (s State) AdminLoggedIn() bool { return s.AdminID != nil }

// Session pairs a session id with its state.
type Session struct {
	ID        string
	State     State
	ExpiresAt time.Time
}
