package domain

import (
	"fmt"
	"time"
)

// Notification belongs to exactly one user. When Key is set it is globally
// unique; fan-out relies on the constraint so concurrent scheduler runs
// converge on a single row per logical event.
type Notification struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TaskID      *int64    `json:"task_id,omitempty"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	Key         string    `json:"-"` // dedup token, empty means unkeyed
	ActionURL   string    `json:"action_url,omitempty"`
	ActionLabel string    `json:"action_label,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}

// Dedup key builders. The string forms are a serialization detail of the
// (event kind, entity, period) composite; the unique index on the column
// is what actually enforces at-most-once.

func TaskAssignedKey(taskID int64) string {
	return fmt.Sprintf("task_assigned_%d", taskID)
}

func LeadNoOrderKey(leadID int64, month time.Time) string {
	return fmt.Sprintf("lead_no_order_%d_%s", leadID, month.Format("2006-01"))
}

func OrderDayKey(orderID, userID int64, day time.Time) string {
	return fmt.Sprintf("order_day_%d_%d_%s", orderID, userID, day.Format("2006-01-02"))
}

func TaskDeadlineKey(taskID int64, days int) string {
	return fmt.Sprintf("task_deadline_%d_%dd", taskID, days)
}
