package ports

import "context"

// Notifier delivers push notifications to users. Calls are fire-and-forget:
// implementations swallow and log failures, never surfacing them to the
// caller, so a notification can never abort a committed transition.
type Notifier interface {
	Notify(ctx context.Context, recipientID string, title string, body string)
}
