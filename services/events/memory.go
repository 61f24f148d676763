package events

import (
	"context"
	"sync"
)

// MemoryPublisher records published payloads per channel, in order. It is
// safe for concurrent access and intended for tests.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

// NewMemoryPublisher constructs an empty in-memory publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{messages: make(map[string][][]byte)}
}

func (p *MemoryPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	buf := make([]byte, len(payload))
	copy(buf, payload)
	p.messages[channel] = append(p.messages[channel], buf)
	return nil
}

// Messages returns the payloads published to a channel, in publish order.
func (p *MemoryPublisher) Messages(channel string) [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([][]byte, len(p.messages[channel]))
	copy(out, p.messages[channel])
	return out
}
