package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crypto_session_service_sessions_created_total",
		Help: "Total number of cryptographic sessions created.",
	})

	sessionsDestroyedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crypto_session_service_sessions_destroyed_total",
		Help: "Total number of cryptographic sessions destroyed.",
	})

	liveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crypto_session_service_live_sessions",
		Help: "Number of currently live cryptographic sessions.",
	})

	pipelineOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypto_session_service_pipeline_operations_total",
		Help: "Total number of completed pipeline operations by kind.",
	}, []string{"operation"})

	pipelineBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypto_session_service_pipeline_bytes_total",
		Help: "Total number of bytes streamed through the pipeline by kind.",
	}, []string{"operation"})

	sessionLockWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crypto_session_service_session_lock_waits_total",
		Help: "Number of times a caller had to wait for a session's exclusive-use lock.",
	})
)
