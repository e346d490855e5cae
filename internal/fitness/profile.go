package fitness

import (
	"strings"
	"time"

	"go.uber.org/multierr"
)

// DateLayout is the textual form of calendar dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// now is replaced in tests
var now = time.Now

// Profile is the single user's identity record.
// Age is derived once, when the profile is built, and never recomputed.
type Profile struct {
	name        string
	dateOfBirth string
	weight      float64
	age         int
}

// NewProfile validates the raw fields and derives the age as of today.
// Integer weights are accepted as float64 (75 becomes 75.0).
func NewProfile(name, dateOfBirth string, weight float64) (*Profile, error) {
	var err error
	if strings.TrimSpace(name) == "" {
		err = multierr.Append(err, requiredError("name"))
	}

	dob, dobErr := ParseDate(dateOfBirth)
	if dobErr != nil {
		err = multierr.Append(err, newValidationError("dob", "date must be in format YYYY-MM-DD"))
	}

	if weightErr := weightError(weight); weightErr != nil {
		err = multierr.Append(err, weightErr)
	}

	if err != nil {
		return nil, err
	}

	age := AgeOn(dob, now())
	if age <= 0 {
		return nil, positiveError("age")
	}

	return &Profile{
		name:        name,
		dateOfBirth: dateOfBirth,
		weight:      weight,
		age:         age,
	}, nil
}

func (p *Profile) Name() string        { return p.name }
func (p *Profile) DateOfBirth() string { return p.dateOfBirth }
func (p *Profile) Weight() float64     { return p.weight }
func (p *Profile) Age() int            { return p.age }

// ParseDate parses a YYYY-MM-DD date, rejecting impossible ones like 2023-02-30.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// AgeOn returns the age in full years of someone born on dob, as of the given day.
func AgeOn(dob, on time.Time) int {
	age := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		age--
	}
	return age
}
