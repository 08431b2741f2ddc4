package domain

import "time"

// Role is the operative role of a caller, resolved once per request.
// Exactly one applies even though the source data could express several.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganisor Role = "organisor"
	RoleAgent     Role = "agent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganisor, RoleAgent:
		return true
	}
	return false
}

type User struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	PasswordHash      string    `json:"-"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	PhoneNumber       string    `json:"phone_number,omitempty"`
	Role              Role      `json:"role"`
	EmailVerified     bool      `json:"email_verified"`
	VerificationToken string    `json:"-"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
