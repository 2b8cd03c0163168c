package jobs

import (
	"context"
	"time"

	"vibe-backend/internal/email"
	"vibe-backend/internal/logger"
)

// SendInvitationReminders mails a single reminder for every unused
// invitation that will expire within the configured window. Delivery is
// best-effort; the invitation row is marked reminded either way so a mail
// backend outage cannot cause repeated reminders later.
func (jr *JobRunner) SendInvitationReminders() {
	jr.runWithRecovery("send-invitation-reminders", func() {
		ctx := context.Background()
		now := time.Now()
		window := time.Duration(jr.config.Invitation.ReminderWindowHours) * time.Hour

		invitations, err := jr.store.ListExpiringUnreminded(ctx, now, now.Add(window))
		if err != nil {
			logger.Error("Failed to list expiring invitations", "error", err)
			return
		}

		for _, inv := range invitations {
			inviter, err := jr.store.GetByID(ctx, inv.InviterID)
			if err != nil {
				logger.Error("Failed to load inviter for reminder", "invitation_id", inv.ID, "error", err)
				continue
			}

			jr.dispatcher.Enqueue(email.NewInvitationReminderMessage(
				jr.config.Email.AppURL, inv.Email, inviter.Email, inv.Code,
			))

			if err := jr.store.MarkReminded(ctx, inv.ID, now); err != nil {
				logger.Error("Failed to mark invitation reminded", "invitation_id", inv.ID, "error", err)
			}
		}

		logger.Info("Invitation reminders queued", "count", len(invitations))
	})
}

// PurgeStaleLocations clears coordinates that have not been refreshed
// within the configured retention period.
func (jr *JobRunner) PurgeStaleLocations() {
	jr.runWithRecovery("purge-stale-locations", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-time.Duration(jr.config.Radar.StaleAfterHours) * time.Hour)

		cleared, err := jr.store.ClearLocationsBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge stale locations", "error", err)
			return
		}
		logger.Info("Stale locations purged", "cleared", cleared)
	})
}
