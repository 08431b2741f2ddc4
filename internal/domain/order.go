package domain

import "time"

type Order struct {
	ID             int64     `json:"id"`
	OrganisationID int64     `json:"organisation_id"`
	LeadID         *int64    `json:"lead_id,omitempty"`
	Description    string    `json:"description,omitempty"`
	AmountCents    int64     `json:"amount_cents"`
	OrderDay       time.Time `json:"order_day"` // completion date, date precision
	IsCancelled    bool      `json:"is_cancelled"`
	CreatedOn      time.Time `json:"created_on"`
}
