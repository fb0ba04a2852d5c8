package kafkaproducer

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the producer-wide tunables from §6. Per-call parameters
// (acks, timeout, codec) are not here - they are supplied per Send call via
// SendOption and default from the constants below when omitted.
type Config struct {
	// MaxBufferedMessages is the ingress queue's capacity. -1 means
	// unbounded.
	MaxBufferedMessages int `yaml:"maxBufferedMessages"`

	// BatchSize is the maximum number of submissions taken per dispatch
	// cycle.
	BatchSize int `yaml:"batchSize"`

	// BatchDelayTime is the maximum time TakeBatch waits, once it has at
	// least one submission, before dispatching an under-sized batch.
	BatchDelayTime time.Duration `yaml:"batchDelayTime"`

	// MaxDisposeWait bounds how long Stop(true, ...) will wait for the
	// dispatch loop to drain before giving up.
	MaxDisposeWait time.Duration `yaml:"maxDisposeWait"`
}

const (
	DefaultMaxBufferedMessages = 100
	DefaultBatchSize           = 10
	DefaultBatchDelayTime      = 100 * time.Millisecond
	DefaultMaxDisposeWait      = 30 * time.Second

	DefaultAcks    = AckLeader
	DefaultTimeout = 1000 * time.Millisecond
	DefaultCodec   = CompressionNone
)

// NewConfig returns a Config populated with the defaults from §6.
func NewConfig() *Config {
	return &Config{
		MaxBufferedMessages: DefaultMaxBufferedMessages,
		BatchSize:           DefaultBatchSize,
		BatchDelayTime:      DefaultBatchDelayTime,
		MaxDisposeWait:      DefaultMaxDisposeWait,
	}
}

// Validate checks that every configured value is within an acceptable
// range, mirroring the shape of sarama's own Config.Validate.
func (c *Config) Validate() error {
	if c.MaxBufferedMessages < -1 || c.MaxBufferedMessages == 0 {
		return ConfigurationError("MaxBufferedMessages must be -1 (unbounded) or a positive integer")
	}
	if c.BatchSize <= 0 {
		return ConfigurationError("BatchSize must be a positive integer")
	}
	if c.BatchDelayTime <= 0 {
		return ConfigurationError("BatchDelayTime must be positive")
	}
	if c.MaxDisposeWait <= 0 {
		return ConfigurationError("MaxDisposeWait must be positive")
	}
	return nil
}

// LoadConfig reads a YAML file into a Config, applying defaults for any
// field the file leaves at its zero value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.MaxBufferedMessages == 0 {
		cfg.MaxBufferedMessages = DefaultMaxBufferedMessages
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchDelayTime == 0 {
		cfg.BatchDelayTime = DefaultBatchDelayTime
	}
	if cfg.MaxDisposeWait == 0 {
		cfg.MaxDisposeWait = DefaultMaxDisposeWait
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SendOptions holds the per-call parameters a SendOption mutates.
type SendOptions struct {
	Acks    Acks
	Timeout time.Duration
	Codec   CompressionCodec
}

// SendOption customizes a single Send call. Send starts from DefaultAcks,
// DefaultTimeout and DefaultCodec (acks=1, timeout=1000ms, codec=none) and
// applies each option in order; the zero value of SendOptions is not those
// defaults.
type SendOption func(*SendOptions)

// WithAcks overrides the broker ack level for one Send call.
func WithAcks(acks Acks) SendOption {
	return func(o *SendOptions) { o.Acks = acks }
}

// WithTimeout overrides the broker-side wait for one Send call.
func WithTimeout(timeout time.Duration) SendOption {
	return func(o *SendOptions) { o.Timeout = timeout }
}

// WithCodec overrides the compression selector for one Send call.
func WithCodec(codec CompressionCodec) SendOption {
	return func(o *SendOptions) { o.Codec = codec }
}
