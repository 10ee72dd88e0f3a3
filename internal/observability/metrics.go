package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workoutstats",
		Name:      "workouts_recorded_total",
		Help:      "Number of workout summaries computed and stored.",
	}, []string{"training_type"})
	caloriesBurned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workoutstats",
		Name:      "calories_burned_total",
		Help:      "Sum of kcal over all stored workout summaries.",
	}, []string{"training_type"})
	ingestFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workoutstats",
		Name:      "ingest_failures_total",
		Help:      "Packages or files that could not be turned into a workout.",
	}, []string{"source"})
	lastSyncGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workoutstats",
		Name:      "last_sync_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed sync run.",
	})
)

func init() {
	prometheus.MustRegister(workoutsRecorded, caloriesBurned, ingestFailures, lastSyncGauge)
}

// RecordWorkout counts one stored workout and its calories.
func RecordWorkout(trainingType string, calories float64) {
	workoutsRecorded.WithLabelValues(trainingType).Inc()
	if calories > 0 {
		caloriesBurned.WithLabelValues(trainingType).Add(calories)
	}
}

// RecordIngestFailure counts a failed package or file from source.
func RecordIngestFailure(source string) {
	ingestFailures.WithLabelValues(source).Inc()
}

// RecordSync updates the sync watermark gauge.
func RecordSync(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastSyncGauge.Set(float64(ts.Unix()))
}
