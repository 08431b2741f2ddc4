package jobs

import (
	"context"
	"fmt"
	"time"

	"leadhub-backend/internal/domain"
	"leadhub-backend/internal/logger"
	"leadhub-backend/internal/urls"
)

// CheckLeadNoOrder notifies agents about assigned leads that have not placed
// a non-cancelled order for the configured number of days (counted from the
// lead's creation when there is no order at all). The dedup key limits the
// reminder to once per lead per calendar month.
func (jr *JobRunner) CheckLeadNoOrder() {
	jr.runWithRecovery("CheckLeadNoOrder", func() {
		ctx := context.Background()
		now := jr.now().UTC()

		query := `
			SELECT l.id, l.first_name, l.last_name, a.user_id
			FROM leads l
			JOIN agents a ON l.agent_id = a.id
			WHERE EXTRACT(DAY FROM $1::timestamptz - COALESCE(
				(SELECT MAX(o.order_day) FROM orders o
				 WHERE o.lead_id = l.id AND o.is_cancelled = FALSE),
				l.created_on)) >= $2
		`

		rows, err := jr.db.QueryContext(ctx, query, now, jr.config.Notifications.IdleLeadDays)
		if err != nil {
			logger.Error("Failed to query idle leads", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				leadID      int64
				firstName   string
				lastName    string
				agentUserID int64
			)
			if err := rows.Scan(&leadID, &firstName, &lastName, &agentUserID); err != nil {
				logger.Error("Failed to scan idle lead", "error", err)
				continue
			}

			key := domain.LeadNoOrderKey(leadID, now)
			if jr.dryRun {
				logger.Info("Dry run: would notify agent about idle lead",
					"lead_id", leadID, "user_id", agentUserID, "key", key)
				count++
				continue
			}

			n := &domain.Notification{
				UserID:      agentUserID,
				Title:       "Lead needs attention",
				Message:     fmt.Sprintf("%s %s has not placed an order in over %d days.", firstName, lastName, jr.config.Notifications.IdleLeadDays),
				Key:         key,
				ActionURL:   urls.Detail("lead", leadID),
				ActionLabel: "View lead",
			}
			if err := jr.services.Notification.Notify(ctx, n); err != nil {
				logger.Error("Failed to create idle lead notification",
					"lead_id", leadID, "user_id", agentUserID, "error", err)
				continue
			}
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating idle leads", "error", err)
			return
		}

		logger.Info("Idle lead reminders processed", "count", count)
	})
}

// CheckOrderDay notifies the organisation's owner, and the lead's agent when
// there is one, about orders completing today. The per-recipient dedup key
// keeps reruns on the same day silent.
func (jr *JobRunner) CheckOrderDay() {
	jr.runWithRecovery("CheckOrderDay", func() {
		ctx := context.Background()
		today := jr.now().UTC()

		query := `
			SELECT o.id, o.description, org.owner_id, a.user_id
			FROM orders o
			JOIN organisations org ON o.organisation_id = org.id
			LEFT JOIN leads l ON o.lead_id = l.id
			LEFT JOIN agents a ON l.agent_id = a.id
			WHERE o.is_cancelled = FALSE AND o.order_day::date = $1::date
		`

		rows, err := jr.db.QueryContext(ctx, query, today)
		if err != nil {
			logger.Error("Failed to query due orders", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				orderID     int64
				description string
				ownerID     int64
				agentUserID *int64
			)
			if err := rows.Scan(&orderID, &description, &ownerID, &agentUserID); err != nil {
				logger.Error("Failed to scan due order", "error", err)
				continue
			}

			recipients := []int64{ownerID}
			if agentUserID != nil && *agentUserID != ownerID {
				recipients = append(recipients, *agentUserID)
			}

			for _, userID := range recipients {
				key := domain.OrderDayKey(orderID, userID, today)
				if jr.dryRun {
					logger.Info("Dry run: would notify about order due today",
						"order_id", orderID, "user_id", userID, "key", key)
					count++
					continue
				}

				n := &domain.Notification{
					UserID:      userID,
					Title:       "Order completes today",
					Message:     fmt.Sprintf("Order #%d (%s) is scheduled to complete today.", orderID, description),
					Key:         key,
					ActionURL:   urls.Detail("order", orderID),
					ActionLabel: "View order",
				}
				if err := jr.services.Notification.Notify(ctx, n); err != nil {
					logger.Error("Failed to create order due notification",
						"order_id", orderID, "user_id", userID, "error", err)
					continue
				}
				count++
			}
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating due orders", "error", err)
			return
		}

		logger.Info("Order due reminders processed", "count", count)
	})
}

// CheckTaskDeadlines reminds assignees of incomplete tasks whose end date is
// exactly N days away, for each configured N. Tasks whose dedup key already
// has a notification row are skipped before any side effect, so re-running
// the scan never re-sends email. For the rest the email is sent first; when
// it fails the in-app notification for that task is skipped so the next run
// retries both together, and the batch moves on.
func (jr *JobRunner) CheckTaskDeadlines(deadlineDays ...int) {
	jr.runWithRecovery("CheckTaskDeadlines", func() {
		ctx := context.Background()
		today := jr.now().UTC()

		for _, days := range deadlineDays {
			jr.checkTaskDeadline(ctx, today, days)
		}
	})
}

func (jr *JobRunner) checkTaskDeadline(ctx context.Context, today time.Time, days int) {
	query := `
		SELECT t.id, t.title, t.end_date, u.id, u.email, u.first_name, u.last_name
		FROM tasks t
		JOIN users u ON t.assigned_to = u.id
		WHERE t.status <> 'completed' AND t.end_date::date = ($1::date + $2::int)
	`

	rows, err := jr.db.QueryContext(ctx, query, today, days)
	if err != nil {
		logger.Error("Failed to query tasks nearing deadline", "days", days, "error", err)
		return
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			taskID    int64
			title     string
			endDate   time.Time
			userID    int64
			email     string
			firstName string
			lastName  string
		)
		if err := rows.Scan(&taskID, &title, &endDate, &userID, &email, &firstName, &lastName); err != nil {
			logger.Error("Failed to scan task nearing deadline", "error", err)
			continue
		}

		key := domain.TaskDeadlineKey(taskID, days)
		notified, err := jr.store.ExistsKey(ctx, key)
		if err != nil {
			logger.Error("Failed to check task deadline dedup key",
				"task_id", taskID, "key", key, "error", err)
			continue
		}
		if notified {
			logger.Debug("Task deadline already notified", "task_id", taskID, "key", key)
			continue
		}

		if jr.dryRun {
			logger.Info("Dry run: would email and notify about task deadline",
				"task_id", taskID, "user_id", userID, "key", key)
			count++
			continue
		}

		name := firstName + " " + lastName
		subject := fmt.Sprintf("Task due in %d day(s): %s", days, title)
		body := fmt.Sprintf("Hello %s,\n\nYour task %q is due on %s.\n\nPlease make sure it is completed on time.\n\nLeadHub", name, title, endDate.Format("2006-01-02"))
		if err := jr.services.Email.Send(ctx, email, name, subject, body); err != nil {
			logger.Error("Failed to send task deadline email",
				"task_id", taskID, "user_id", userID, "email", email, "error", err)
			continue
		}

		taskRef := taskID
		n := &domain.Notification{
			UserID:      userID,
			TaskID:      &taskRef,
			Title:       fmt.Sprintf("Task due in %d day(s)", days),
			Message:     fmt.Sprintf("Your task %q is due on %s.", title, endDate.Format("2006-01-02")),
			Key:         key,
			ActionURL:   urls.Detail("task", taskID),
			ActionLabel: "View task",
		}
		if err := jr.services.Notification.Notify(ctx, n); err != nil {
			logger.Error("Failed to create task deadline notification",
				"task_id", taskID, "user_id", userID, "error", err)
			continue
		}
		count++
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error iterating tasks nearing deadline", "days", days, "error", err)
		return
	}

	logger.Info("Task deadline reminders processed", "days", days, "count", count)
}
