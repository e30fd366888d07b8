// Package metrics defines the prometheus instrumentation surface for long
// batch runs (condense/coagulate/crystalize are multi-minute jobs worth
// watching). Modeled on the teacher's internal/metrics/metrics.go:
// package-level collectors registered once, exposed via promhttp.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	RecordsRead = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transpaer_records_read_total",
			Help: "Total number of records read from a source or substrate.",
		},
		[]string{"stage", "data_set"},
	)

	RecordsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transpaer_records_written_total",
			Help: "Total number of records written to a substrate or collection.",
		},
		[]string{"stage", "collection"},
	)

	RecordsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transpaer_records_skipped_total",
			Help: "Total number of records skipped due to parse or validation errors.",
		},
		[]string{"stage", "data_set", "reason"},
	)

	QueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "transpaer_flow_queue_depth",
			Help: "Current number of buffered messages on a flow stage's channel.",
		},
		[]string{"stage"},
	)

	CoagulationClusters = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "transpaer_coagulation_clusters",
			Help: "Number of unique-id clusters assigned per entity kind.",
		},
		[]string{"kind"},
	)

	CoagulationEmptyIds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "transpaer_coagulation_empty_ids",
			Help: "Number of externals with no individual IDs, assigned a singleton cluster.",
		},
		[]string{"kind"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transpaer_stage_duration_seconds",
			Help:    "Wall-clock duration of a pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"stage"},
	)
)

var registerOnce sync.Once

// Server exposes the registered collectors over HTTP for the duration of a
// batch run.
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// NewServer registers every collector (once, safely) and builds an HTTP
// server for them. addr may be empty, in which case the caller should skip
// calling Start — metrics are always optional for a batch CLI.
func NewServer(addr string, logger *logrus.Logger) *Server {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RecordsRead,
			RecordsWritten,
			RecordsSkipped,
			QueueDepth,
			CoagulationClusters,
			CoagulationEmptyIds,
			StageDuration,
		)
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		server: &http.Server{Addr: addr, Handler: mux},
		logger: logger,
	}
}

// Start begins serving metrics in the background.
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("metrics server stopped unexpectedly")
		}
	}()
}

// Stop gracefully shuts the metrics server down.
func (s *Server) Stop() error {
	return s.server.Close()
}
