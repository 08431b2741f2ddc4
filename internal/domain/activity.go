package domain

import "time"

// Action enumerates the auditable state changes the application records.
type Action string

const (
	ActionOrganisorCreated Action = "organisor_created"
	ActionOrganisorUpdated Action = "organisor_updated"
	ActionOrganisorDeleted Action = "organisor_deleted"

	ActionAgentCreated Action = "agent_created"
	ActionAgentUpdated Action = "agent_updated"
	ActionAgentDeleted Action = "agent_deleted"

	ActionLeadCreated   Action = "lead_created"
	ActionLeadUpdated   Action = "lead_updated"
	ActionLeadDeleted   Action = "lead_deleted"
	ActionLeadAssigned  Action = "lead_assigned"
	ActionLeadConverted Action = "lead_converted"

	ActionTaskCreated   Action = "task_created"
	ActionTaskUpdated   Action = "task_updated"
	ActionTaskDeleted   Action = "task_deleted"
	ActionTaskCompleted Action = "task_completed"

	ActionOrderCreated   Action = "order_created"
	ActionOrderUpdated   Action = "order_updated"
	ActionOrderDeleted   Action = "order_deleted"
	ActionOrderCancelled Action = "order_cancelled"

	ActionProductCreated Action = "product_created"
	ActionProductUpdated Action = "product_updated"
	ActionProductDeleted Action = "product_deleted"
	ActionPriceUpdated   Action = "price_updated"
	ActionStockUpdated   Action = "stock_updated"
)

// ObjectReprMaxLen is the truncation limit for human-readable object
// representations. Longer values are cut, not rejected.
const ObjectReprMaxLen = 255

// ActivityLog is append-only: application code never updates or deletes
// rows, and listings are always newest-first.
type ActivityLog struct {
	ID              int64          `json:"id"`
	UserID          *int64         `json:"user_id,omitempty"` // nulled on user deletion
	Action          Action         `json:"action"`
	ObjectType      string         `json:"object_type,omitempty"`
	ObjectID        *int64         `json:"object_id,omitempty"`
	ObjectRepr      string         `json:"object_repr,omitempty"`
	Details         map[string]any `json:"details,omitempty"`
	OrganisationID  *int64         `json:"organisation_id,omitempty"`
	AffectedAgentID *int64         `json:"affected_agent_id,omitempty"` // denormalized for role-scoped filtering
	CreatedOn       time.Time      `json:"created_on"`
	DetailURL       string         `json:"detail_url,omitempty"`
}
