package notify

import "context"

// Notifier dispatches plain-text emails. Implementations may fail
// transiently; callers in the document lifecycle swallow and log failures
// rather than letting a mail outage block state changes.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
