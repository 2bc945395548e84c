package publishers

import "context"

// Publisher delivers issue events to a downstream sink (SQS, SNS, HTTP,
// Pub/Sub, email).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
