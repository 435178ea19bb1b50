package session

import "time"

// Profile is the backend-held user record, keyed by the account id the
// identity service assigned. It is provisioned at account creation; this
// backend only reads it, except for first-admin setup.
type Profile struct {
	ID        string
	FullName  string
	Email     string
	IsTutor   bool
	IsAdmin   bool
	BcryptPwd []byte
	Version   int // For optimistic locking
	CreatedAt time.Time
}

// Session is the immutable per-request context every component receives at
// construction instead of re-deriving role flags ad hoc. A mid-session
// permission change is not observed until the session is resolved again.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	IsTutor     bool
	IsAdmin     bool

	Profile *Profile // nil when the profile record is missing or unreadable
}

// Authenticated reports whether the session belongs to a signed-in account.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}
