package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sequenceKey = "invoice:last_number"

// InvoiceSequence hands out invoice numbers from an atomic Redis counter.
// INCR guarantees strict monotonicity across any interleaving of approvals.
type InvoiceSequence struct {
	client *redis.Client
}

// NewInvoiceSequence seeds the counter (first write wins) and returns the
// sequence. The first number handed out is seed+1.
func NewInvoiceSequence(ctx context.Context, client *redis.Client, seed int64) (*InvoiceSequence, error) {
	if err := client.SetNX(ctx, sequenceKey, seed, 0).Err(); err != nil {
		return nil, fmt.Errorf("seed invoice sequence: %w", err)
	}
	return &InvoiceSequence{client: client}, nil
}

// Next consumes and returns the next invoice number.
func (s *InvoiceSequence) Next(ctx context.Context) (int64, error) {
	n, err := s.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}
