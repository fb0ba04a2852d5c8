package kafkaproducer

import (
	"context"
	"time"
)

// Topic is the shape-only metadata this package passes through untouched;
// actual field population is the MetadataQueries implementation's concern.
type Topic struct {
	Name       string
	Partitions []int32
}

// OffsetResponse is the shape-only per-partition offset lookup result.
type OffsetResponse struct {
	Partition int32
	Offsets   []int64
}

// MetadataQueries is a small external collaborator for topic/offset
// lookups. The Producer re-exposes it verbatim as a pass-through facade
// (§6) - it is not part of the produce pipeline itself.
type MetadataQueries interface {
	GetTopic(name string) (Topic, error)
	GetTopicOffsetAsync(ctx context.Context, name string, maxOffsets int32, at time.Time) (<-chan OffsetResult, error)
}

// OffsetResult is delivered on the channel returned by GetTopicOffsetAsync.
type OffsetResult struct {
	Offsets []OffsetResponse
	Err     error
}

// GetTopic passes through to the configured MetadataQueries collaborator.
func (p *Producer) GetTopic(name string) (Topic, error) {
	return p.metadata.GetTopic(name)
}

// GetTopicOffsetAsync passes through to the configured MetadataQueries
// collaborator.
func (p *Producer) GetTopicOffsetAsync(ctx context.Context, name string, maxOffsets int32, at time.Time) (<-chan OffsetResult, error) {
	return p.metadata.GetTopicOffsetAsync(ctx, name, maxOffsets, at)
}
