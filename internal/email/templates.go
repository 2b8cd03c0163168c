package email

import "fmt"

const invitationHTML = `<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1>%s</h1>
      <p>%s</p>
      <p>Your invitation code is:</p>
      <div style="font-size: 32px; font-weight: bold; color: #8B5CF6; letter-spacing: 4px; padding: 20px; background: #f4f4f5; border-radius: 8px; text-align: center;">%s</div>
      <p>This code will expire in 24 hours.</p>
      <a href="%s/register?email=%s" style="display: inline-block; padding: 12px 24px; background: #8B5CF6; color: white; text-decoration: none; border-radius: 6px;">Click here to register</a>
      <p>If you didn't request this invitation, please ignore this email.</p>
    </div>
  </body>
</html>`

// NewInvitationMessage builds the invitation email for a freshly issued code.
func NewInvitationMessage(appURL, to, inviterEmail, code string) Message {
	intro := fmt.Sprintf("You've been invited by %s to join Vibe - No Lies.", inviterEmail)
	return Message{
		To:      to,
		Subject: "Welcome to Vibe!",
		Plain:   fmt.Sprintf("%s\n\nYour invitation code is: %s\n\nThis code will expire in 24 hours.\nRegister at %s/register?email=%s", intro, code, appURL, to),
		HTML:    fmt.Sprintf(invitationHTML, "Welcome to Vibe!", intro, code, appURL, to),
	}
}

// NewInvitationReminderMessage builds the reminder email for a pending code.
func NewInvitationReminderMessage(appURL, to, inviterEmail, code string) Message {
	intro := fmt.Sprintf("This is a reminder of your invitation from %s to join Vibe - No Lies.", inviterEmail)
	return Message{
		To:      to,
		Subject: "Invitation Reminder - Join Vibe!",
		Plain:   fmt.Sprintf("%s\n\nYour invitation code is: %s\n\nThis code will expire in 24 hours.\nRegister at %s/register?email=%s", intro, code, appURL, to),
		HTML:    fmt.Sprintf(invitationHTML, "Reminder: You're Invited to Vibe!", intro, code, appURL, to),
	}
}
