package storage

import (
	"github.com/2beens/fitlog/internal/fitness"
)

// ProfileRecord is the stored form of a profile. Age is kept as it was
// computed when the profile was saved.
type ProfileRecord struct {
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dob"`
	Weight      float64 `json:"weight"`
	Age         int     `json:"age"`
}

func NewProfileRecord(profile *fitness.Profile) ProfileRecord {
	return ProfileRecord{
		Name:        profile.Name(),
		DateOfBirth: profile.DateOfBirth(),
		Weight:      profile.Weight(),
		Age:         profile.Age(),
	}
}

// Validate rebuilds a profile from the stored fields. The age of the
// returned profile is derived again, as of today.
func (r ProfileRecord) Validate() (*fitness.Profile, error) {
	return fitness.NewProfile(r.Name, r.DateOfBirth, r.Weight)
}

type ExerciseRecord struct {
	Name   string   `json:"name"`
	Sets   int      `json:"sets"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight"`
	Notes  string   `json:"notes,omitempty"`
}

func NewExerciseRecord(exercise *fitness.Exercise) ExerciseRecord {
	record := ExerciseRecord{
		Name:  exercise.Name(),
		Sets:  exercise.Sets(),
		Reps:  exercise.Reps(),
		Notes: exercise.Notes(),
	}
	if weight, ok := exercise.Weight(); ok {
		record.Weight = &weight
	}
	return record
}

type WorkoutRecord struct {
	ID        string           `json:"id,omitempty"`
	Name      string           `json:"name"`
	Date      string           `json:"date"`
	Datetime  string           `json:"datetime"`
	Notes     string           `json:"notes"`
	Exercises []ExerciseRecord `json:"exercises"`
}

func NewWorkoutRecord(workout *fitness.Workout) WorkoutRecord {
	exercises := workout.Exercises()
	record := WorkoutRecord{
		ID:        workout.ID(),
		Name:      workout.Name(),
		Date:      workout.Date(),
		Datetime:  workout.Datetime(),
		Notes:     workout.Notes(),
		Exercises: make([]ExerciseRecord, 0, len(exercises)),
	}
	for _, ex := range exercises {
		record.Exercises = append(record.Exercises, NewExerciseRecord(ex))
	}
	return record
}
