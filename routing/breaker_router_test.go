package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	kafkaproducer "github.com/nrandell/kafkaproducer"
)

type fakeRouter struct {
	route kafkaproducer.Route
	err   error
	calls int
}

func (f *fakeRouter) SelectBrokerRoute(topic string, key []byte) (kafkaproducer.Route, error) {
	f.calls++
	return f.route, f.err
}

func TestBreakerRouterPassesThroughOnSuccess(t *testing.T) {
	inner := &fakeRouter{route: kafkaproducer.Route{PartitionID: 3}}
	r := NewBreakerRouter(inner, time.Second)

	route, err := r.SelectBrokerRoute("orders", nil)
	require.NoError(t, err)
	require.Equal(t, int32(3), route.PartitionID)
	require.Equal(t, 1, inner.calls)
}

func TestBreakerRouterTripsAfterConsecutiveFailures(t *testing.T) {
	boom := kafkaproducer.ConfigurationError("no leader")
	inner := &fakeRouter{err: boom}
	r := NewBreakerRouter(inner, time.Minute)

	for i := 0; i < 3; i++ {
		_, err := r.SelectBrokerRoute("orders", nil)
		require.Error(t, err)
	}
	require.Equal(t, 3, inner.calls)

	_, err := r.SelectBrokerRoute("orders", nil)
	require.Error(t, err)
	require.Equal(t, 3, inner.calls, "breaker should be open, inner router should not be called again")
}
