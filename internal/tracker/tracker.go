package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/2beens/fitlog/internal/fitness"
	"github.com/2beens/fitlog/internal/storage"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrNoExercises = errors.New("no valid exercises in workout")

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=tracker_test

type profileRepo interface {
	Exists(ctx context.Context) (bool, error)
	Load(ctx context.Context) (*storage.ProfileRecord, error)
	Save(ctx context.Context, profile *fitness.Profile) error
}

type exerciseNamesRepo interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, name string) error
}

type workoutsRepo interface {
	Load(ctx context.Context) ([]storage.WorkoutRecord, error)
	Save(ctx context.Context, workout *fitness.Workout) error
}

// Tracker turns raw user input into validated models and hands them to
// the repositories. It is what a front end talks to.
type Tracker struct {
	profiles      profileRepo
	exerciseNames exerciseNamesRepo
	workouts      workoutsRepo
	metrics       *metrics.Manager
}

func NewTracker(
	profiles profileRepo,
	exerciseNames exerciseNamesRepo,
	workouts workoutsRepo,
	metricsManager *metrics.Manager,
) *Tracker {
	return &Tracker{
		profiles:      profiles,
		exerciseNames: exerciseNames,
		workouts:      workouts,
		metrics:       metricsManager,
	}
}

// NeedsProfile is true on first run, before any profile was saved.
func (t *Tracker) NeedsProfile(ctx context.Context) (bool, error) {
	exists, err := t.profiles.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check profile: %w", err)
	}
	return !exists, nil
}

type ProfileInput struct {
	Name        string
	DateOfBirth string
	Weight      string
}

func (t *Tracker) CreateProfile(ctx context.Context, input ProfileInput) (_ *fitness.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.profile.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	profile, err := parseProfile(input)
	if err != nil {
		t.metrics.ValidationFailed("profile")
		log.Warnf("invalid profile input: %s", err)
		return nil, err
	}

	if err := t.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	log.Infof("profile created: %s, age %d", profile.Name(), profile.Age())
	return profile, nil
}

func parseProfile(input ProfileInput) (*fitness.Profile, error) {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return nil, &fitness.ValidationError{Field: "name", Message: "name is required"}
	case strings.TrimSpace(input.DateOfBirth) == "":
		return nil, &fitness.ValidationError{Field: "dob", Message: "date of birth is required"}
	case strings.TrimSpace(input.Weight) == "":
		return nil, &fitness.ValidationError{Field: "weight", Message: "weight is required"}
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(input.Weight), 64)
	if err != nil {
		return nil, &fitness.ValidationError{Field: "weight", Message: "weight must be a number"}
	}

	return fitness.NewProfile(strings.TrimSpace(input.Name), strings.TrimSpace(input.DateOfBirth), weight)
}

// Welcome greets the user by the stored profile name.
func (t *Tracker) Welcome(ctx context.Context) (string, error) {
	profile, err := t.profiles.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return "Welcome!", nil
	}
	return fmt.Sprintf("Welcome %s!", profile.Name), nil
}

// ExerciseRow is one exercise line as typed by the user.
// An empty weight means a bodyweight exercise.
type ExerciseRow struct {
	Name   string
	Sets   string
	Reps   string
	Weight string
	Notes  string
}

type WorkoutInput struct {
	Name  string
	Notes string
	Rows  []ExerciseRow
}

// RowError is an exercise row left out of a workout. Row is 1-based.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err)
}

type PlanResult struct {
	Workout *fitness.Workout
	Skipped []RowError
}

// PlanWorkout validates every row, skips the invalid ones, remembers the
// exercise names and saves the workout. It fails with ErrNoExercises when
// no row is valid; the result still lists the skipped rows then.
func (t *Tracker) PlanWorkout(ctx context.Context, input WorkoutInput) (_ *PlanResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.workout.plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if strings.TrimSpace(input.Name) == "" {
		t.metrics.ValidationFailed("workout")
		log.Warnln("missing workout name")
		return nil, &fitness.ValidationError{Field: "name", Message: "workout name is required"}
	}

	result := &PlanResult{}
	var exercises []*fitness.Exercise
	for i, row := range input.Rows {
		exercise, err := parseExerciseRow(row)
		if err != nil {
			t.metrics.ValidationFailed("exercise")
			log.Warnf("invalid input for row %d: %s", i+1, err)
			result.Skipped = append(result.Skipped, RowError{Row: i + 1, Err: err})
			continue
		}
		log.Debugf("row %d processed: %s", i+1, exercise.Name())
		exercises = append(exercises, exercise)
	}

	t.metrics.ExerciseRowsSkipped(len(result.Skipped))
	span.SetAttributes(
		attribute.Int("workout.exercises", len(exercises)),
		attribute.Int("workout.skipped", len(result.Skipped)),
	)

	if len(exercises) == 0 {
		log.Warnln("no exercises added")
		return result, ErrNoExercises
	}

	for _, exercise := range exercises {
		if err := t.exerciseNames.Save(ctx, exercise.Name()); err != nil {
			return result, fmt.Errorf("save exercise name [%s]: %w", exercise.Name(), err)
		}
	}

	workout, err := fitness.NewWorkout(strings.TrimSpace(input.Name), exercises, strings.TrimSpace(input.Notes))
	if err != nil {
		t.metrics.ValidationFailed("workout")
		return result, err
	}

	if err := t.workouts.Save(ctx, workout); err != nil {
		return result, fmt.Errorf("save workout: %w", err)
	}
	t.metrics.WorkoutSaved()
	result.Workout = workout

	log.Infof("workout [%s] saved with %d exercises", workout.Name(), len(exercises))
	return result, nil
}

func parseExerciseRow(row ExerciseRow) (*fitness.Exercise, error) {
	sets, err := strconv.Atoi(strings.TrimSpace(row.Sets))
	if err != nil {
		return nil, &fitness.ValidationError{Field: "sets", Message: "sets must be a whole number"}
	}
	reps, err := strconv.Atoi(strings.TrimSpace(row.Reps))
	if err != nil {
		return nil, &fitness.ValidationError{Field: "reps", Message: "reps must be a whole number"}
	}

	var weight *float64
	if w := strings.TrimSpace(row.Weight); w != "" {
		parsed, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, &fitness.ValidationError{Field: "weight", Message: "weight must be a number"}
		}
		weight = &parsed
	}

	return fitness.NewExerciseWithNotes(strings.TrimSpace(row.Name), sets, reps, weight, strings.TrimSpace(row.Notes))
}

// History returns the saved workouts, most recent date first. Workouts
// from the same day keep the order they were saved in.
func (t *Tracker) History(ctx context.Context) ([]storage.WorkoutRecord, error) {
	workouts, err := t.workouts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}
	if len(workouts) == 0 {
		log.Debugln("no workouts found")
		return []storage.WorkoutRecord{}, nil
	}

	SortByDateDesc(workouts)
	return workouts, nil
}

func SortByDateDesc(workouts []storage.WorkoutRecord) {
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Date > workouts[j].Date
	})
}

// Suggestions lists the known exercise names containing text, ignoring case.
// An empty text matches every name.
func (t *Tracker) Suggestions(ctx context.Context, text string) ([]string, error) {
	names, err := t.exerciseNames.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load exercise names: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(text))
	suggestions := []string{}
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), query) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions, nil
}
