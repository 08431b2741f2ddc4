package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityCritical TaskPriority = "critical"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityLow      TaskPriority = "low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityCritical, TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID             int64        `json:"id"`
	OrganisationID int64        `json:"organisation_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	AssignedTo     int64        `json:"assigned_to"`
	AssignedBy     *int64       `json:"assigned_by,omitempty"` // nulled if the assigner is deleted
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	CreatedOn      time.Time    `json:"created_on"`
	UpdatedOn      time.Time    `json:"updated_on"`
}

// Validate rejects the task before any row is written.
func (t *Task) Validate() error {
	fields := map[string]string{}
	if t.Title == "" {
		fields["title"] = "title is required"
	}
	if !t.Status.Valid() {
		fields["status"] = "invalid status"
	}
	if !t.Priority.Valid() {
		fields["priority"] = "invalid priority"
	}
	if t.AssignedTo == 0 {
		fields["assigned_to"] = "assignee is required"
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		fields["end_date"] = "start and end dates are required"
	} else if t.EndDate.Before(t.StartDate) {
		fields["end_date"] = "end date must not be before start date"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Incomplete reports whether the task still counts for deadline reminders.
func (t *Task) Incomplete() bool {
	return t.Status == TaskStatusPending || t.Status == TaskStatusInProgress
}
