package domain

// User is the authoritative identity returned by the server.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

// WellFormed reports whether the user carries the minimum identity
// fields required to be adopted as a session.
func (u *User) WellFormed() bool {
	return u != nil && u.ID != "" && u.Email != ""
}

// Credentials is the durable {user, token} pair. Both halves are
// persisted together and cleared together.
type Credentials struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Session is a point-in-time snapshot of the in-memory session state.
// Initialized becomes true only after the bootstrap sequence has
// produced a definitive answer; no protected decision may be made
// before that.
type Session struct {
	User        *User
	Token       string
	Initialized bool
}

// Authenticated reports whether the snapshot carries a usable identity.
func (s Session) Authenticated() bool {
	return s.User.WellFormed() && s.Token != ""
}
