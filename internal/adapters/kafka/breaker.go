package kafka

import (
	"context"
	"time"

	"messaging-service/pkg/logger"

	"github.com/sony/gobreaker"
)

// BreakerPublisher stops calling a failing broker for a while instead of
// making every send wait on it.
type BreakerPublisher struct {
	inner Publisher
	cb    *gobreaker.CircuitBreaker
}

func NewBreakerPublisher(inner Publisher, maxFailures uint32, timeout time.Duration) *BreakerPublisher {
	if maxFailures == 0 {
		maxFailures = 5
	}
	st := gobreaker.Settings{
		Name:        "kafka-notifications",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			lg := logger.L()
			lg.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state")
		},
	}
	return &BreakerPublisher{inner: inner, cb: gobreaker.NewCircuitBreaker(st)}
}

// Publish returns gobreaker.ErrOpenState without calling the broker while
// the breaker is open.
func (p *BreakerPublisher) Publish(ctx context.Context, key string, value []byte) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.inner.Publish(ctx, key, value)
	})
	return err
}

func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}

func (p *BreakerPublisher) Close() error {
	return p.inner.Close()
}
