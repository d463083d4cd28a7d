package models

// User is the identity record issued by the backend. It is never mutated
// while a session is active; a new login replaces it wholesale.
type User struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      Role    `json:"role"`
	SocietyID *int64  `json:"society_id"`
	FlatID    *int64  `json:"flat_id"`
	IsOwner   bool    `json:"is_owner"`
	AvatarURL *string `json:"avatar_url"`
}

// Initial returns the first letter of the display name, or "U".
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(r)
	}
	return "U"
}
