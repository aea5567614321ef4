package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cluedotech/timesheetpro/internal/api/metrics"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes outbound deliveries (email/SMS side channel) to a fixed
// set of workers using consistent hashing on the recipient, so messages to
// the same recipient stay ordered. Enqueue never blocks lifecycle operations
// up to channelBuffer capacity.
type Dispatcher struct {
	workers []chan ports.Delivery
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Delivery, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Delivery, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a delivery to the worker responsible for its recipient.
func (d *Dispatcher) Enqueue(delivery ports.Delivery) {
	idx := d.shardIndex(delivery.To)
	d.workers[idx] <- delivery
	metrics.DeliveriesQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-ch:
			if !ok {
				return
			}
			// No real provider is wired up; deliveries are logged, which also
			// keeps them observable in development.
			d.log.Info().
				Str("channel", string(delivery.Channel)).
				Str("to", delivery.To).
				Str("subject", delivery.Subject).
				Str("body", delivery.Body).
				Int("worker_id", id).
				Msg("delivery dispatched")
			metrics.DeliveriesDispatchedTotal.WithLabelValues(string(delivery.Channel)).Inc()
			metrics.DeliveriesQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
