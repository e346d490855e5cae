package fitness

import (
	"strings"

	"go.uber.org/multierr"
)

// Exercise is one movement performed for a number of sets and reps.
// A missing weight means a bodyweight exercise.
type Exercise struct {
	name   string
	sets   int
	reps   int
	weight *float64
	notes  string
}

func NewExercise(name string, sets, reps int, weight *float64) (*Exercise, error) {
	return NewExerciseWithNotes(name, sets, reps, weight, "")
}

func NewExerciseWithNotes(name string, sets, reps int, weight *float64, notes string) (*Exercise, error) {
	var err error
	if strings.TrimSpace(name) == "" {
		err = multierr.Append(err, requiredError("name"))
	}
	if sets <= 0 {
		err = multierr.Append(err, positiveError("sets"))
	}
	if reps <= 0 {
		err = multierr.Append(err, positiveError("reps"))
	}
	if weight != nil {
		if weightErr := weightError(*weight); weightErr != nil {
			err = multierr.Append(err, weightErr)
		}
	}
	if err != nil {
		return nil, err
	}

	exercise := &Exercise{
		name:  name,
		sets:  sets,
		reps:  reps,
		notes: notes,
	}
	if weight != nil {
		w := *weight
		exercise.weight = &w
	}
	return exercise, nil
}

// Kg is a helper for passing an optional weight.
func Kg(weight float64) *float64 {
	return &weight
}

func (e *Exercise) Name() string  { return e.name }
func (e *Exercise) Sets() int     { return e.sets }
func (e *Exercise) Reps() int     { return e.reps }
func (e *Exercise) Notes() string { return e.notes }

// Weight returns the weight and false for bodyweight exercises.
func (e *Exercise) Weight() (float64, bool) {
	if e.weight == nil {
		return 0, false
	}
	return *e.weight, true
}
