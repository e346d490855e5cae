package storage

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitlog/internal/fitness"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultWorkoutsFile = "workouts.json"

// WorkoutsRepo is the append-only workout history. Workouts are stored
// and returned in the order they were saved.
type WorkoutsRepo struct {
	file    jsonFile
	metrics *metrics.Manager
}

// NewWorkoutsRepo uses DefaultWorkoutsFile when path is empty.
// The metrics manager may be nil.
func NewWorkoutsRepo(path string, metricsManager *metrics.Manager) *WorkoutsRepo {
	return &WorkoutsRepo{
		file:    jsonFile{path: pathOrDefault(path, DefaultWorkoutsFile)},
		metrics: metricsManager,
	}
}

func (r *WorkoutsRepo) Path() string {
	return r.file.path
}

// Load returns nil, without an error, when no workout was saved yet.
func (r *WorkoutsRepo) Load(ctx context.Context) (_ []WorkoutRecord, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.load")
	defer func(start time.Time) {
		r.metrics.ObserveStorageOp("workouts", "load", start, err)
		tracing.EndSpanWithErrCheck(span, err)
	}(time.Now())

	workouts, err := r.load()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

func (r *WorkoutsRepo) load() ([]WorkoutRecord, error) {
	var workouts []WorkoutRecord
	found, err := r.file.load(&workouts)
	if err != nil || !found {
		return nil, err
	}
	if workouts == nil {
		workouts = []WorkoutRecord{}
	}
	return workouts, nil
}

// Save appends the workout to the end of the history and rewrites the file.
func (r *WorkoutsRepo) Save(ctx context.Context, workout *fitness.Workout) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.save")
	defer func(start time.Time) {
		r.metrics.ObserveStorageOp("workouts", "save", start, err)
		tracing.EndSpanWithErrCheck(span, err)
	}(time.Now())

	if workout == nil {
		return errors.New("workout is nil")
	}
	span.SetAttributes(attribute.String("workout.id", workout.ID()))

	workouts, err := r.load()
	if err != nil {
		return err
	}

	workouts = append(workouts, NewWorkoutRecord(workout))
	if err := r.file.save(workouts); err != nil {
		return err
	}

	log.Debugf("workouts repo: workout [%s] [%s] saved, %d in total", workout.ID(), workout.Name(), len(workouts))
	return nil
}
