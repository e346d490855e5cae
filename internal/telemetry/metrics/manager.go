package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

type Manager struct {
	// counters
	CounterStorageOps          *prometheus.CounterVec
	CounterValidationErrors    *prometheus.CounterVec
	CounterWorkoutsSaved       prometheus.Counter
	CounterExerciseRowsSkipped prometheus.Counter

	// gauges
	GaugeKnownExercises prometheus.Gauge

	// histograms
	HistStorageOpDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitlog", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitlog", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterStorageOps := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "storage_operations",
		Help:      "The total number of storage operations per repository",
	}, []string{"repo", "op", "result"})
	counterValidationErrors := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "validation_errors",
		Help:      "The total number of rejected inputs",
	}, []string{"entity"})
	counterWorkoutsSaved := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_saved",
		Help:      "The total number of saved workouts",
	})
	counterExerciseRowsSkipped := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_rows_skipped",
		Help:      "The total number of invalid exercise rows left out of planned workouts",
	})

	gaugeKnownExercises := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "known_exercises",
		Help:      "Number of known exercise names after the last load or save",
	})

	histStorageOpDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "storage_operation_duration_seconds",
		Help:      "Histogram of storage operation durations in seconds",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"repo", "op"})

	return &Manager{
		CounterStorageOps:          counterStorageOps,
		CounterValidationErrors:    counterValidationErrors,
		CounterWorkoutsSaved:       counterWorkoutsSaved,
		CounterExerciseRowsSkipped: counterExerciseRowsSkipped,
		GaugeKnownExercises:        gaugeKnownExercises,
		HistStorageOpDuration:      histStorageOpDuration,
	}
}

// ObserveStorageOp counts one repository operation and records its duration.
// Safe to call on a nil manager.
func (m *Manager) ObserveStorageOp(repo, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.CounterStorageOps.WithLabelValues(repo, op, result).Inc()
	m.HistStorageOpDuration.WithLabelValues(repo, op).Observe(time.Since(start).Seconds())
}

// SetKnownExercises is safe to call on a nil manager.
func (m *Manager) SetKnownExercises(count int) {
	if m == nil {
		return
	}
	m.GaugeKnownExercises.Set(float64(count))
}

// ValidationFailed is safe to call on a nil manager.
func (m *Manager) ValidationFailed(entity string) {
	if m == nil {
		return
	}
	m.CounterValidationErrors.WithLabelValues(entity).Inc()
}

// WorkoutSaved is safe to call on a nil manager.
func (m *Manager) WorkoutSaved() {
	if m == nil {
		return
	}
	m.CounterWorkoutsSaved.Inc()
}

// ExerciseRowsSkipped is safe to call on a nil manager.
func (m *Manager) ExerciseRowsSkipped(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.CounterExerciseRowsSkipped.Add(float64(count))
}
