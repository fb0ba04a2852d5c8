package kafkaproducer_test

import (
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/require"

	kafkaproducer "github.com/nrandell/kafkaproducer"
	"github.com/nrandell/kafkaproducer/mocks"
)

// funcRouter lets a test route different keys to different connections,
// which mocks.Router (one fixed route per topic) can't express - grounded
// on sarama's own channel/func-based testPartitioner in async_producer_test.go.
type funcRouter func(topic string, key []byte) (kafkaproducer.Route, error)

func (f funcRouter) SelectBrokerRoute(topic string, key []byte) (kafkaproducer.Route, error) {
	return f(topic, key)
}

func TestFanOutSplitsOneSendAcrossPartitions(t *testing.T) {
	defer leaktest.Check(t)()

	conn0 := mocks.NewConnection(t)
	conn0.ExpectSendSucceeds()
	conn1 := mocks.NewConnection(t)
	conn1.ExpectSendSucceeds()

	router := funcRouter(func(topic string, key []byte) (kafkaproducer.Route, error) {
		if string(key) == "k0" {
			return kafkaproducer.Route{PartitionID: 0, Connection: conn0}, nil
		}
		return kafkaproducer.Route{PartitionID: 1, Connection: conn1}, nil
	})
	metadata := mocks.NewMetadata(t)

	p, err := kafkaproducer.NewProducer(router, metadata, newTestConfig())
	require.NoError(t, err)
	defer p.Close()

	future, err := p.Send("t", []kafkaproducer.Record{
		{Key: []byte("k0"), Value: []byte("a")},
		{Key: []byte("k1"), Value: []byte("b")},
	})
	require.NoError(t, err)

	res := future.Wait()
	require.NoError(t, res.Err)
	require.Len(t, res.Responses, 2)

	conn0.ExpectationsWereMet()
	conn1.ExpectationsWereMet()
}

func TestAcksNoneResolvesWithEmptyResponses(t *testing.T) {
	defer leaktest.Check(t)()

	conn := mocks.NewConnection(t)
	conn.ExpectSendMatching(nil, kafkaproducer.ConnectionResult{Responses: []kafkaproducer.PartitionResponse{}})

	router := mocks.NewRouter(t).SetRoute("t", kafkaproducer.Route{PartitionID: 0, Connection: conn})
	metadata := mocks.NewMetadata(t)

	p, err := kafkaproducer.NewProducer(router, metadata, newTestConfig())
	require.NoError(t, err)
	defer p.Close()

	future, err := p.Send("t", []kafkaproducer.Record{{Value: []byte("a")}}, kafkaproducer.WithAcks(kafkaproducer.AckNone))
	require.NoError(t, err)

	res := future.Wait()
	require.NoError(t, res.Err)
	require.Empty(t, res.Responses)
}

func TestFailureIsolatedToItsOwnOuterGroup(t *testing.T) {
	defer leaktest.Check(t)()

	failingConn := mocks.NewConnection(t)
	failingConn.ExpectSendFails(kafkaproducer.ConfigurationError("boom"))
	okConn := mocks.NewConnection(t)
	okConn.ExpectSendSucceeds()

	router := funcRouter(func(topic string, key []byte) (kafkaproducer.Route, error) {
		if topic == "faulty" {
			return kafkaproducer.Route{PartitionID: 0, Connection: failingConn}, nil
		}
		return kafkaproducer.Route{PartitionID: 0, Connection: okConn}, nil
	})
	metadata := mocks.NewMetadata(t)

	p, err := kafkaproducer.NewProducer(router, metadata, newTestConfig())
	require.NoError(t, err)
	defer p.Close()

	// Different acks put these in different outer groups.
	faulty, err := p.Send("faulty", []kafkaproducer.Record{{Value: []byte("a")}}, kafkaproducer.WithAcks(kafkaproducer.AckLeader))
	require.NoError(t, err)
	fine, err := p.Send("fine", []kafkaproducer.Record{{Value: []byte("b")}}, kafkaproducer.WithAcks(kafkaproducer.AckAllISR))
	require.NoError(t, err)

	require.Error(t, faulty.Wait().Err)
	require.NoError(t, fine.Wait().Err)
}

func TestOuterGroupFailureFailsEverySubmissionInIt(t *testing.T) {
	defer leaktest.Check(t)()

	okConn := mocks.NewConnection(t)
	okConn.ExpectSendSucceeds()
	failingConn := mocks.NewConnection(t)
	failingConn.ExpectSendFails(kafkaproducer.ConfigurationError("boom"))

	router := funcRouter(func(topic string, key []byte) (kafkaproducer.Route, error) {
		if topic == "faulty" {
			return kafkaproducer.Route{PartitionID: 0, Connection: failingConn}, nil
		}
		return kafkaproducer.Route{PartitionID: 0, Connection: okConn}, nil
	})
	metadata := mocks.NewMetadata(t)

	cfg := newTestConfig()
	cfg.BatchSize = 10
	cfg.BatchDelayTime = 100 * time.Millisecond
	p, err := kafkaproducer.NewProducer(router, metadata, cfg)
	require.NoError(t, err)
	defer p.Close()

	// Same acks/timeout, so these two land in the same outer group even
	// though they route to different connections via different inner
	// groups. The faulty one's connection failure must fault both.
	ok, err := p.Send("ok", []kafkaproducer.Record{{Value: []byte("a")}})
	require.NoError(t, err)
	faulty, err := p.Send("faulty", []kafkaproducer.Record{{Value: []byte("b")}})
	require.NoError(t, err)

	require.Error(t, ok.Wait().Err)
	require.Error(t, faulty.Wait().Err)
}

func TestStopTrueResolvesEveryResidualSubmission(t *testing.T) {
	defer leaktest.Check(t)()

	conn := mocks.NewConnection(t)
	conn.ExpectSendSucceeds()

	router := mocks.NewRouter(t).SetRoute("t", kafkaproducer.Route{PartitionID: 0, Connection: conn})
	metadata := mocks.NewMetadata(t)

	cfg := newTestConfig()
	cfg.BatchSize = 10
	cfg.BatchDelayTime = time.Second
	p, err := kafkaproducer.NewProducer(router, metadata, cfg)
	require.NoError(t, err)

	futures := make([]*kafkaproducer.Future, 7)
	for i := range futures {
		f, err := p.Send("t", []kafkaproducer.Record{{Value: []byte("m")}})
		require.NoError(t, err)
		futures[i] = f
	}

	require.NoError(t, p.Stop(true, time.Second))

	for _, f := range futures {
		res, ok := f.TryResult()
		require.True(t, ok, "future should already be resolved once Stop(true, ...) returns")
		require.NoError(t, res.Err)
	}

	conn.ExpectationsWereMet()
}
