package fitness

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Workout is a named, dated collection of exercises.
// Date and datetime reflect the moment of construction, not of saving.
type Workout struct {
	id        uuid.UUID
	name      string
	exercises []*Exercise
	date      string
	datetime  string
	notes     string
}

func NewWorkout(name string, exercises []*Exercise, notes string) (*Workout, error) {
	var err error
	if strings.TrimSpace(name) == "" {
		err = multierr.Append(err, requiredError("name"))
	}
	if len(exercises) == 0 {
		err = multierr.Append(err, newValidationError("exercises", "exercises must contain at least one exercise"))
	}
	for _, ex := range exercises {
		if ex == nil {
			err = multierr.Append(err, newValidationError("exercises", "exercises must not contain empty entries"))
			break
		}
	}
	if err != nil {
		return nil, err
	}

	createdAt := now()
	return &Workout{
		id:        uuid.New(),
		name:      name,
		exercises: append([]*Exercise(nil), exercises...),
		date:      createdAt.Format(DateLayout),
		datetime:  createdAt.Format(time.RFC3339Nano),
		notes:     notes,
	}, nil
}

func (w *Workout) ID() string    { return w.id.String() }
func (w *Workout) Name() string  { return w.name }
func (w *Workout) Notes() string { return w.notes }

// Date is the construction day, YYYY-MM-DD.
func (w *Workout) Date() string { return w.date }

// Datetime is the construction instant in RFC 3339 form.
func (w *Workout) Datetime() string { return w.datetime }

func (w *Workout) Exercises() []*Exercise {
	return append([]*Exercise(nil), w.exercises...)
}
