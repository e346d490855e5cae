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

const DefaultProfileFile = "profile.json"

// ProfileRepo keeps the single user profile as one JSON object.
type ProfileRepo struct {
	file    jsonFile
	metrics *metrics.Manager
}

// NewProfileRepo uses DefaultProfileFile when path is empty.
// The metrics manager may be nil.
func NewProfileRepo(path string, metricsManager *metrics.Manager) *ProfileRepo {
	return &ProfileRepo{
		file:    jsonFile{path: pathOrDefault(path, DefaultProfileFile)},
		metrics: metricsManager,
	}
}

func (r *ProfileRepo) Path() string {
	return r.file.path
}

func (r *ProfileRepo) Exists(ctx context.Context) (_ bool, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.profile.exists")
	defer func(start time.Time) {
		r.metrics.ObserveStorageOp("profile", "exists", start, err)
		tracing.EndSpanWithErrCheck(span, err)
	}(time.Now())

	return r.file.exists()
}

// Load returns nil, without an error, when no profile was saved yet.
// The stored fields are returned as they are, without validation.
func (r *ProfileRepo) Load(ctx context.Context) (_ *ProfileRecord, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.profile.load")
	defer func(start time.Time) {
		r.metrics.ObserveStorageOp("profile", "load", start, err)
		tracing.EndSpanWithErrCheck(span, err)
	}(time.Now())

	var record ProfileRecord
	found, err := r.file.load(&record)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("profile.found", found))
	if !found {
		return nil, nil
	}
	return &record, nil
}

// Save replaces whatever profile was stored before.
func (r *ProfileRepo) Save(ctx context.Context, profile *fitness.Profile) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer func(start time.Time) {
		r.metrics.ObserveStorageOp("profile", "save", start, err)
		tracing.EndSpanWithErrCheck(span, err)
	}(time.Now())

	if profile == nil {
		return errors.New("profile is nil")
	}

	if err := r.file.save(NewProfileRecord(profile)); err != nil {
		return err
	}

	log.Debugf("profile repo: profile [%s] saved", profile.Name())
	return nil
}
