package port

import "context"

// EmailSender delivers processing notifications.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
