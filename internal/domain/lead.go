package domain

import "time"

type Lead struct {
	ID               int64      `json:"id"`
	OrganisationID   int64      `json:"organisation_id"`
	AgentID          *int64     `json:"agent_id,omitempty"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Age              int        `json:"age,omitempty"`
	Email            string     `json:"email,omitempty"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	Description      string     `json:"description,omitempty"`
	SourceCategoryID *int64     `json:"source_category_id,omitempty"`
	ValueCategoryID  *int64     `json:"value_category_id,omitempty"`
	ConvertedDate    *time.Time `json:"converted_date,omitempty"`
	CreatedOn        time.Time  `json:"created_on"`
}

func (l *Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}

// CategoryKind distinguishes the two per-organisation category tables.
type CategoryKind string

const (
	CategorySource CategoryKind = "source"
	CategoryValue  CategoryKind = "value"
)

// Category is a lead source or value bucket, unique per (name, organisation).
type Category struct {
	ID             int64        `json:"id"`
	Kind           CategoryKind `json:"kind"`
	Name           string       `json:"name"`
	OrganisationID int64        `json:"organisation_id"`
}

// Default category names provisioned lazily per organisation. Bootstrap is
// idempotent: repeated runs leave exactly one row per name.
var (
	DefaultSourceCategories = []string{
		"Website",
		"Social Media",
		"Email Campaign",
		"Cold Call",
		"Referral",
		"Trade Show",
		"Advertisement",
		"Direct Mail",
		"SEO/Google",
		"Unassigned",
	}

	DefaultValueCategories = []string{
		"Enterprise",
		"SMB",
		"Small Business",
		"Individual",
		"High Value",
		"Medium Value",
		"Low Value",
		"Unassigned",
	}
)
