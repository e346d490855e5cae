package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/2beens/fitlog/internal/fitness"
	"github.com/2beens/fitlog/internal/storage"
	"github.com/2beens/fitlog/internal/tracker"
	"github.com/2beens/fitlog/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type app struct {
	tracker   *tracker.Tracker
	dataFiles []string
	stdout    io.Writer
	stderr    io.Writer
}

type command func(a *app, ctx context.Context, args []string) int

var commands = map[string]command{
	"status":    (*app).status,
	"profile":   (*app).profile,
	"plan":      (*app).plan,
	"history":   (*app).history,
	"exercises": (*app).exercises,
	"backup":    (*app).backup,
}

func commandNames() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintf(a.stderr, "missing command, one of: %s\n", commandNames())
		return exitUsage
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command [%s], one of: %s\n", args[0], commandNames())
		return exitUsage
	}

	return cmd(a, ctx, args[1:])
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// fail prints every invalid field on its own line, or the error itself.
func (a *app) fail(err error) int {
	fieldErrs := fitness.FieldErrors(err)
	if len(fieldErrs) == 0 {
		log.Errorf("command failed: %s", err)
		fmt.Fprintf(a.stderr, "error: %s\n", err)
		return exitError
	}
	for _, fe := range fieldErrs {
		fmt.Fprintf(a.stderr, "invalid %s: %s\n", fe.Field, fe.Message)
	}
	return exitError
}

func (a *app) status(ctx context.Context, args []string) int {
	fs := a.newFlagSet("status")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	needsProfile, err := a.tracker.NeedsProfile(ctx)
	if err != nil {
		return a.fail(err)
	}
	if needsProfile {
		fmt.Fprintln(a.stdout, "no profile yet, create one with: fitlog profile -name NAME -dob YYYY-MM-DD -weight KG")
		return exitOK
	}

	msg, err := a.tracker.Welcome(ctx)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.stdout, msg)
	return exitOK
}

func (a *app) profile(ctx context.Context, args []string) int {
	fs := a.newFlagSet("profile")
	name := fs.String("name", "", "your name")
	dob := fs.String("dob", "", "date of birth, YYYY-MM-DD")
	weight := fs.String("weight", "", "body weight in kg")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	profile, err := a.tracker.CreateProfile(ctx, tracker.ProfileInput{
		Name:        *name,
		DateOfBirth: *dob,
		Weight:      *weight,
	})
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.stdout, "profile saved: %s, age %d, %s kg\n", profile.Name(), profile.Age(), formatWeight(profile.Weight()))
	return exitOK
}

// exerciseRows collects repeated -ex flags in the form
// name:sets:reps[:weight[:notes]]. Numbers are left as typed, the tracker
// validates them. Notes may contain colons.
type exerciseRows []tracker.ExerciseRow

func (r *exerciseRows) String() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(*r))
	for _, row := range *r {
		fields := []string{row.Name, row.Sets, row.Reps, row.Weight}
		if row.Notes != "" {
			fields = append(fields, row.Notes)
		}
		parts = append(parts, strings.Join(fields, ":"))
	}
	return strings.Join(parts, ", ")
}

func (r *exerciseRows) Set(value string) error {
	parts := strings.SplitN(value, ":", 5)
	if len(parts) < 3 {
		return fmt.Errorf("exercise must be name:sets:reps[:weight[:notes]], got [%s]", value)
	}
	row := tracker.ExerciseRow{
		Name: parts[0],
		Sets: parts[1],
		Reps: parts[2],
	}
	if len(parts) > 3 {
		row.Weight = parts[3]
	}
	if len(parts) > 4 {
		row.Notes = parts[4]
	}
	*r = append(*r, row)
	return nil
}

func (a *app) plan(ctx context.Context, args []string) int {
	fs := a.newFlagSet("plan")
	name := fs.String("name", "", "workout name")
	notes := fs.String("notes", "", "workout notes")
	var rows exerciseRows
	fs.Var(&rows, "ex", "exercise as name:sets:reps[:weight[:notes]], empty weight for bodyweight, repeatable")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	result, err := a.tracker.PlanWorkout(ctx, tracker.WorkoutInput{
		Name:  *name,
		Notes: *notes,
		Rows:  rows,
	})
	if result != nil {
		for _, skipped := range result.Skipped {
			fmt.Fprintf(a.stderr, "skipped %s\n", skipped.Error())
		}
	}
	if errors.Is(err, tracker.ErrNoExercises) {
		fmt.Fprintln(a.stderr, "no exercises added, workout not saved")
		return exitError
	}
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.stdout, "workout [%s] saved with %d exercises\n", result.Workout.Name(), len(result.Workout.Exercises()))
	return exitOK
}

func (a *app) history(ctx context.Context, args []string) int {
	fs := a.newFlagSet("history")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	workouts, err := a.tracker.History(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(workouts) == 0 {
		fmt.Fprintln(a.stdout, "no workouts yet")
		return exitOK
	}

	for _, w := range workouts {
		printWorkout(a.stdout, w)
	}
	return exitOK
}

func printWorkout(out io.Writer, w storage.WorkoutRecord) {
	fmt.Fprintf(out, "%s  %s\n", w.Date, w.Name)
	if w.Notes != "" {
		fmt.Fprintf(out, "  notes: %s\n", w.Notes)
	}
	for _, ex := range w.Exercises {
		fmt.Fprintf(out, "  %s\n", exerciseSummary(ex))
		if ex.Notes != "" {
			fmt.Fprintf(out, "    %s\n", ex.Notes)
		}
	}
}

func exerciseSummary(ex storage.ExerciseRecord) string {
	load := "bodyweight"
	if ex.Weight != nil {
		load = formatWeight(*ex.Weight) + " kg"
	}
	return fmt.Sprintf("%s: %dx%d (%s)", ex.Name, ex.Sets, ex.Reps, load)
}

func formatWeight(weight float64) string {
	return strconv.FormatFloat(weight, 'f', -1, 64)
}

func (a *app) exercises(ctx context.Context, args []string) int {
	fs := a.newFlagSet("exercises")
	query := fs.String("q", "", "only names containing this text")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	names, err := a.tracker.Suggestions(ctx, *query)
	if err != nil {
		return a.fail(err)
	}
	for _, name := range names {
		fmt.Fprintln(a.stdout, name)
	}
	return exitOK
}

func (a *app) backup(_ context.Context, args []string) int {
	fs := a.newFlagSet("backup")
	out := fs.String("out", "fitlog-backup.tar.gz", "archive file to write")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	var buf bytes.Buffer
	archived, err := pkg.CompressFiles(a.dataFiles, &buf)
	if err != nil {
		return a.fail(fmt.Errorf("compress data files: %w", err))
	}
	if len(archived) == 0 {
		fmt.Fprintln(a.stdout, "nothing to back up")
		return exitOK
	}

	if err := os.WriteFile(*out, buf.Bytes(), 0644); err != nil {
		return a.fail(fmt.Errorf("write backup %s: %w", *out, err))
	}

	log.Infof("backup written to %s: %v", *out, archived)
	fmt.Fprintf(a.stdout, "archived %d files to %s\n", len(archived), *out)
	return exitOK
}
