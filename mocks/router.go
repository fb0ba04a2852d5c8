package mocks

import (
	"fmt"
	"sync"

	kafkaproducer "github.com/nrandell/kafkaproducer"
)

// Router is a fake kafkaproducer.Router. Configure it with SetRoute before
// exercising code under test; SelectBrokerRoute ignores the message key and
// always returns the topic's configured route, so it cannot express
// key-based partitioning such as the S2 fan-out-across-partitions scenario.
type Router struct {
	mu     sync.Mutex
	t      ErrorReporter
	routes map[string]kafkaproducer.Route
	err    error
}

// NewRouter constructs an empty Router mock. t receives a test failure for
// any topic looked up without a configured route.
func NewRouter(t ErrorReporter) *Router {
	return &Router{t: t, routes: make(map[string]kafkaproducer.Route)}
}

// SetRoute configures the route SelectBrokerRoute returns for topic.
func (r *Router) SetRoute(topic string, route kafkaproducer.Route) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[topic] = route
	return r
}

// SetError makes every SelectBrokerRoute call fail with err, regardless of
// any routes configured with SetRoute.
func (r *Router) SetError(err error) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	return r
}

// SelectBrokerRoute implements kafkaproducer.Router.
func (r *Router) SelectBrokerRoute(topic string, key []byte) (kafkaproducer.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return kafkaproducer.Route{}, r.err
	}

	route, ok := r.routes[topic]
	if !ok {
		err := fmt.Errorf("mocks: no route configured for topic %q", topic)
		r.t.Errorf(err.Error())
		return kafkaproducer.Route{}, err
	}
	return route, nil
}
