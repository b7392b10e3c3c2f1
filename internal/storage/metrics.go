package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backupOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptvault_backup_operations_total",
		Help: "Backup operations by type and status",
	}, []string{"operation", "status"})

	saveDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "promptvault_save_duration_seconds",
		Help:    "Time to persist the vault envelope, snapshot included",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"status"})

	loadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptvault_load_total",
		Help: "Vault loads by the source the envelope came from",
	}, []string{"source"})
)
