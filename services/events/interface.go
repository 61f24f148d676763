// Package events publishes ordered lifecycle events over a one-way,
// best-effort channel to an external observer. Delivery is never
// acknowledged and never retried.
package events

import "context"

// Publisher is the outbound event channel boundary.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
