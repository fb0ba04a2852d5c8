package kafkaproducer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, NewConfig().Validate())
}

func TestConfigValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.MaxBufferedMessages = 0 },
		func(c *Config) { c.MaxBufferedMessages = -2 },
		func(c *Config) { c.BatchSize = 0 },
		func(c *Config) { c.BatchDelayTime = 0 },
		func(c *Config) { c.MaxDisposeWait = 0 },
	}
	for _, mutate := range cases {
		cfg := NewConfig()
		mutate(cfg)
		var cfgErr ConfigurationError
		require.ErrorAs(t, cfg.Validate(), &cfgErr)
	}
}

func TestConfigMaxBufferedMessagesUnboundedValidates(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxBufferedMessages = -1
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigAppliesDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batchSize: 25\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 25, cfg.BatchSize)
	require.Equal(t, DefaultMaxBufferedMessages, cfg.MaxBufferedMessages)
	require.Equal(t, DefaultBatchDelayTime, cfg.BatchDelayTime)
	require.Equal(t, DefaultMaxDisposeWait, cfg.MaxDisposeWait)
}

func TestLoadConfigMissingFileReturnsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSendOptionsOverrideDefaults(t *testing.T) {
	o := SendOptions{Acks: DefaultAcks, Timeout: DefaultTimeout, Codec: DefaultCodec}
	WithAcks(AckAllISR)(&o)
	WithTimeout(5 * time.Second)(&o)
	WithCodec(CompressionGZIP)(&o)

	require.Equal(t, AckAllISR, o.Acks)
	require.Equal(t, 5*time.Second, o.Timeout)
	require.Equal(t, CompressionGZIP, o.Codec)
}
