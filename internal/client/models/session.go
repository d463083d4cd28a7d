package models

import "time"

// Session is the (token, user) pair. Either both are set or neither is;
// the zero value is the logged-out session.
type Session struct {
	Token string
	User  *User

	// ExpiresAt comes from the token's exp claim when the token is a JWT.
	// It is informational only; the backend is the authority on expiry.
	ExpiresAt time.Time
}

func (s Session) IsAuthenticated() bool { return s.Token != "" }

// Role returns the user's role, or "" when logged out.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
