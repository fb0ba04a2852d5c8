// Package routing provides decorators over kafkaproducer.Router.
package routing

import (
	"time"

	"github.com/eapache/go-resiliency/breaker"

	kafkaproducer "github.com/nrandell/kafkaproducer"
)

// BreakerRouter wraps a Router with the same three-strikes circuit breaker
// sarama's leaderDispatcher applies around metadata refresh and
// partitioning: after 3 consecutive failures the breaker trips and every
// SelectBrokerRoute call fails fast with breaker.ErrBreakerOpen for one
// timeout period, rather than continuing to hammer a Router that is
// failing every call.
type BreakerRouter struct {
	next kafkaproducer.Router
	b    *breaker.Breaker
}

// NewBreakerRouter wraps next with a breaker using sarama's own
// constants: 3 consecutive failures trips it, it stays open for timeout
// before allowing a trial call through, and one successful trial call in
// that half-open state closes it again.
func NewBreakerRouter(next kafkaproducer.Router, timeout time.Duration) *BreakerRouter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BreakerRouter{next: next, b: breaker.New(3, 1, timeout)}
}

// SelectBrokerRoute implements kafkaproducer.Router.
func (r *BreakerRouter) SelectBrokerRoute(topic string, key []byte) (kafkaproducer.Route, error) {
	var route kafkaproducer.Route
	err := r.b.Run(func() error {
		var innerErr error
		route, innerErr = r.next.SelectBrokerRoute(topic, key)
		return innerErr
	})
	return route, err
}

var _ kafkaproducer.Router = (*BreakerRouter)(nil)
