package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafkaproducer "github.com/nrandell/kafkaproducer"
)

// Metadata is a fake kafkaproducer.MetadataQueries. It answers GetTopic
// from a fixed table configured with SetTopic and reports a test failure
// for any unrecognized lookup.
type Metadata struct {
	mu     sync.Mutex
	t      ErrorReporter
	topics map[string]kafkaproducer.Topic
}

// NewMetadata constructs an empty Metadata mock.
func NewMetadata(t ErrorReporter) *Metadata {
	return &Metadata{t: t, topics: make(map[string]kafkaproducer.Topic)}
}

// SetTopic registers the metadata GetTopic returns for name.
func (m *Metadata) SetTopic(name string, topic kafkaproducer.Topic) *Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[name] = topic
	return m
}

// GetTopic implements kafkaproducer.MetadataQueries.
func (m *Metadata) GetTopic(name string) (kafkaproducer.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	topic, ok := m.topics[name]
	if !ok {
		err := fmt.Errorf("mocks: no topic metadata configured for %q", name)
		m.t.Errorf(err.Error())
		return kafkaproducer.Topic{}, err
	}
	return topic, nil
}

// GetTopicOffsetAsync implements kafkaproducer.MetadataQueries. It resolves
// immediately with one zero offset per partition of the configured topic.
func (m *Metadata) GetTopicOffsetAsync(ctx context.Context, name string, maxOffsets int32, at time.Time) (<-chan kafkaproducer.OffsetResult, error) {
	topic, err := m.GetTopic(name)
	if err != nil {
		return nil, err
	}

	ch := make(chan kafkaproducer.OffsetResult, 1)
	offsets := make([]kafkaproducer.OffsetResponse, 0, len(topic.Partitions))
	for _, p := range topic.Partitions {
		offsets = append(offsets, kafkaproducer.OffsetResponse{Partition: p, Offsets: []int64{0}})
	}
	ch <- kafkaproducer.OffsetResult{Offsets: offsets}
	close(ch)
	return ch, nil
}
