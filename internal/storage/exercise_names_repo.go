package storage

import (
	"context"
	"strings"
	"time"

	"github.com/2beens/fitlog/internal/fitness"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultExercisesFile = "exercises.json"

// ExerciseNamesRepo keeps the set of exercise names used so far, lower cased,
// in the order they were first used.
type ExerciseNamesRepo struct {
	file    jsonFile
	metrics *metrics.Manager
}

// NewExerciseNamesRepo uses DefaultExercisesFile when path is empty.
// The metrics manager may be nil.
func NewExerciseNamesRepo(path string, metricsManager *metrics.Manager) *ExerciseNamesRepo {
	return &ExerciseNamesRepo{
		file:    jsonFile{path: pathOrDefault(path, DefaultExercisesFile)},
		metrics: metricsManager,
	}
}

func (r *ExerciseNamesRepo) Path() string {
	return r.file.path
}

// Load returns nil, without an error, when no name was saved yet.
func (r *ExerciseNamesRepo) Load(ctx context.Context) (_ []string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.exercise_names.load")
	defer func(start time.Time) {
		r.metrics.ObserveStorageOp("exercise_names", "load", start, err)
		tracing.EndSpanWithErrCheck(span, err)
	}(time.Now())

	names, err := r.load()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("exercise_names.count", len(names)))
	if names != nil {
		r.metrics.SetKnownExercises(len(names))
	}
	return names, nil
}

func (r *ExerciseNamesRepo) load() ([]string, error) {
	var names []string
	found, err := r.file.load(&names)
	if err != nil || !found {
		return nil, err
	}
	if names == nil {
		// a stored JSON null still means the file exists
		names = []string{}
	}
	return names, nil
}

// Save adds the lower cased name unless it is already known, compared
// case-insensitively. A known name leaves the file untouched.
func (r *ExerciseNamesRepo) Save(ctx context.Context, name string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.exercise_names.save")
	defer func(start time.Time) {
		r.metrics.ObserveStorageOp("exercise_names", "save", start, err)
		tracing.EndSpanWithErrCheck(span, err)
	}(time.Now())

	folded := strings.ToLower(strings.TrimSpace(name))
	if folded == "" {
		return &fitness.ValidationError{Field: "name", Message: "name must not be empty"}
	}
	span.SetAttributes(attribute.String("exercise.name", folded))

	names, err := r.load()
	if err != nil {
		return err
	}

	for _, known := range names {
		if strings.EqualFold(known, folded) {
			log.Tracef("exercise names repo: [%s] already known", folded)
			return nil
		}
	}

	names = append(names, folded)
	if err := r.file.save(names); err != nil {
		return err
	}
	r.metrics.SetKnownExercises(len(names))

	log.Debugf("exercise names repo: [%s] added", folded)
	return nil
}
