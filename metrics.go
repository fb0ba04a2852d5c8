package kafkaproducer

import (
	"fmt"

	metrics "github.com/rcrowley/go-metrics"
)

// producerMetrics bundles the go-metrics instruments this package keeps,
// registered under a private registry so multiple Producer instances in
// the same process don't collide. Metrics() exposes it for callers who
// want to feed it into their own reporting (see metricsserver for an HTTP
// exposition).
type producerMetrics struct {
	registry metrics.Registry

	batchSize     metrics.Histogram
	dispatchCycle metrics.Meter
	activeGauge   metrics.Gauge
	sendLatency   metrics.Histogram
	sendFailures  metrics.Meter
}

func newProducerMetrics() *producerMetrics {
	r := metrics.NewRegistry()
	return &producerMetrics{
		registry:      r,
		batchSize:     getOrRegisterHistogram("batch-size", r),
		dispatchCycle: metrics.GetOrRegisterMeter("dispatch-cycles", r),
		activeGauge:   metrics.GetOrRegisterGauge("active-messages", r),
		sendLatency:   getOrRegisterHistogram("send-latency-ns", r),
		sendFailures:  metrics.GetOrRegisterMeter("send-failures", r),
	}
}

func getOrRegisterHistogram(name string, r metrics.Registry) metrics.Histogram {
	return r.GetOrRegister(name, func() metrics.Histogram {
		return metrics.NewHistogram(metrics.NewExpDecaySample(1028, 0.015))
	}).(metrics.Histogram)
}

func getOrRegisterTopicMeter(name, topic string, r metrics.Registry) metrics.Meter {
	return metrics.GetOrRegisterMeter(fmt.Sprintf("%s-for-topic-%s", name, topic), r)
}
