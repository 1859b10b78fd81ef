package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the box score importer

var (
	// Import run metrics
	ImportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_import_runs_total",
			Help: "Total number of import runs",
		},
		[]string{"status"},
	)

	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "thebench_import_duration_seconds",
			Help:    "Duration of import runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	LastSuccessfulImport = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thebench_last_successful_import_timestamp",
			Help: "Timestamp of last successful import run",
		},
	)

	// Row metrics
	RowsProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thebench_rows_processed_total",
			Help: "Total number of source rows read",
		},
	)

	RowsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_rows_skipped_total",
			Help: "Total number of source rows skipped",
		},
		[]string{"reason"},
	)

	// Batch metrics
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_batches_total",
			Help: "Total number of stats batches flushed",
		},
		[]string{"status"},
	)

	BatchRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_batch_records_total",
			Help: "Total number of stats records sent in batches",
		},
		[]string{"status"},
	)

	// Reference data metrics
	ReferenceRowsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "thebench_reference_rows_loaded",
			Help: "Number of reference rows loaded at the start of the last run",
		},
		[]string{"entity"},
	)

	EntitiesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_entities_created_total",
			Help: "Total number of seasons, players and games created",
		},
		[]string{"entity"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_cache_hits_total",
			Help: "Total number of reference cache hits",
		},
		[]string{"entity"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_cache_misses_total",
			Help: "Total number of reference cache misses",
		},
		[]string{"entity"},
	)

	// Database metrics
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thebench_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thebench_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordImport records a finished import run
func RecordImport(status string, duration float64) {
	ImportRunsTotal.WithLabelValues(status).Inc()
	ImportDuration.Observe(duration)

	if status == "success" {
		LastSuccessfulImport.SetToCurrentTime()
	}
}

// RecordRowProcessed records one source row read
func RecordRowProcessed() {
	RowsProcessedTotal.Inc()
}

// RecordRowSkipped records a skipped row
func RecordRowSkipped(reason string) {
	RowsSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordBatch records a flushed batch and its size
func RecordBatch(status string, size int) {
	BatchesTotal.WithLabelValues(status).Inc()
	BatchRecordsTotal.WithLabelValues(status).Add(float64(size))
}

// UpdateReferenceCounts sets the loaded reference row gauges
func UpdateReferenceCounts(teams, players, seasons, games int) {
	ReferenceRowsLoaded.WithLabelValues("team").Set(float64(teams))
	ReferenceRowsLoaded.WithLabelValues("player").Set(float64(players))
	ReferenceRowsLoaded.WithLabelValues("season").Set(float64(seasons))
	ReferenceRowsLoaded.WithLabelValues("game").Set(float64(games))
}

// RecordEntityCreated records a season, player or game insert
func RecordEntityCreated(entity string) {
	EntitiesCreatedTotal.WithLabelValues(entity).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit(entity string) {
	CacheHitsTotal.WithLabelValues(entity).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(entity string) {
	CacheMissesTotal.WithLabelValues(entity).Inc()
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table, status string, duration float64) {
	DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration)
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
