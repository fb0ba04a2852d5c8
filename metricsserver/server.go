// Package metricsserver exposes a kafkaproducer.Producer's go-metrics
// registry over HTTP, the same net/http-behind-chi shape the rest of the
// pack's worker HTTP servers use for health and stats endpoints.
package metricsserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	metrics "github.com/rcrowley/go-metrics"
)

// Options configures a metrics HTTP server.
type Options struct {
	// Addr is the listen address, e.g. ":9091". Defaults to ":9091".
	Addr string

	// Registry is the metrics registry to expose, typically
	// (*kafkaproducer.Producer).Metrics().
	Registry metrics.Registry

	// OnListen, if set, is called once the listener is bound, with the
	// actual address it bound to - useful in tests that bind to ":0".
	OnListen func(addr string)
}

// Serve starts an HTTP server exposing Registry as JSON at /metrics and a
// trivial /healthz, and blocks until ctx is cancelled, at which point it
// shuts the server down and returns.
func Serve(ctx context.Context, opts Options) error {
	if opts.Addr == "" {
		opts.Addr = ":9091"
	}

	lis, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return err
	}
	if opts.OnListen != nil {
		opts.OnListen(lis.Addr().String())
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		snapshot := make(map[string]interface{})
		opts.Registry.Each(func(name string, metric interface{}) {
			snapshot[name] = metricSnapshot(metric)
		})
		_ = json.NewEncoder(w).Encode(snapshot)
	})

	srv := &http.Server{Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = lis.Close()
	}()

	if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// metricSnapshot renders one go-metrics instrument into a JSON-friendly
// value, since the library's own types don't implement MarshalJSON.
func metricSnapshot(metric interface{}) interface{} {
	switch m := metric.(type) {
	case metrics.Histogram:
		s := m.Snapshot()
		return map[string]interface{}{
			"count": s.Count(),
			"min":   s.Min(),
			"max":   s.Max(),
			"mean":  s.Mean(),
		}
	case metrics.Meter:
		s := m.Snapshot()
		return map[string]interface{}{
			"count": s.Count(),
			"rate1": s.Rate1(),
		}
	case metrics.Gauge:
		return m.Snapshot().Value()
	default:
		return nil
	}
}
