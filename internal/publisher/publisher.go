package publisher

import "context"

// Publisher delivers the finished digest to some output destination.
type Publisher interface {
	Publish(ctx context.Context, text string) error
}
