package domain

import "time"

// Organisation is the tenancy boundary. Every tenant-scoped entity carries
// a reference to exactly one Organisation, directly or via its Agent.
type Organisation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"` // the organisor's user id
	CreatedOn time.Time `json:"created_on"`
}

// Organisor links a User to the Organisation they administer. The
// indirection exists because the same User model underlies admins,
// organisors and agents.
type Organisor struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"user_id"`
	OrganisationID int64 `json:"organisation_id"`
	User           *User `json:"user,omitempty"`
}

// Agent belongs to exactly one Organisation and owns a subset of its
// leads and tasks.
type Agent struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	OrganisationID int64     `json:"organisation_id"`
	CreatedOn      time.Time `json:"created_on"`
	User           *User     `json:"user,omitempty"`
}
