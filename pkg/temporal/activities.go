package temporal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leowmjw/tempocorrelate/pkg/correlate"
	"github.com/leowmjw/tempocorrelate/pkg/jobstore"
)

// Activities defines every activity a correlation workflow calls.
type Activities interface {
	LoadEventsActivity(ctx context.Context, source string, timeRange *TimeRange) ([]JobEvent, error)
	AppendAnchorEventsActivity(ctx context.Context, source string, events []JobEvent) error
	AppendCandidateEventsActivity(ctx context.Context, source string, events []JobEvent) error
	RunCorrelationActivity(ctx context.Context, spec JobSpec, anchors, candidates []JobEvent) (*JobResult, error)
	RecordJobRunActivity(ctx context.Context, result *JobResult) error
}

// ActivitiesImpl implements Activities against a real EventStore and
// jobstore.Store.
type ActivitiesImpl struct {
	logger *slog.Logger
	events EventStore
	jobs   *jobstore.Store
}

// NewActivitiesImpl builds an ActivitiesImpl.
func NewActivitiesImpl(logger *slog.Logger, events EventStore, jobs *jobstore.Store) *ActivitiesImpl {
	return &ActivitiesImpl{logger: logger, events: events, jobs: jobs}
}

// LoadEventsActivity loads every event for source within timeRange.
func (a *ActivitiesImpl) LoadEventsActivity(ctx context.Context, source string, timeRange *TimeRange) ([]JobEvent, error) {
	events, err := a.events.LoadEvents(ctx, source, timeRange)
	if err != nil {
		return nil, fmt.Errorf("load events for %q: %w", source, err)
	}
	a.logger.Info("loaded events", "source", source, "count", len(events))
	return events, nil
}

// AppendAnchorEventsActivity and AppendCandidateEventsActivity persist
// freshly signaled events to the source each side reads from. Both sides
// share the same EventStore; the method split exists so a streaming
// workflow's two signal handlers map onto two distinct activity types.
func (a *ActivitiesImpl) AppendAnchorEventsActivity(ctx context.Context, source string, events []JobEvent) error {
	if err := a.events.AppendEvents(ctx, source, events); err != nil {
		return fmt.Errorf("append anchor events to %q: %w", source, err)
	}
	return nil
}

func (a *ActivitiesImpl) AppendCandidateEventsActivity(ctx context.Context, source string, events []JobEvent) error {
	if err := a.events.AppendEvents(ctx, source, events); err != nil {
		return fmt.Errorf("append candidate events to %q: %w", source, err)
	}
	return nil
}

// recordingRelationSink collects matches emitted by any of the four
// correlate.Match* families into MatchRecord form, and counts misses.
type recordingRelationSink struct {
	matches   []MatchRecord
	missCount int
}

func matchTypeName(t correlate.MatchType) string {
	switch t {
	case correlate.PointExact:
		return "point_exact"
	case correlate.PointInInterval:
		return "point_in_interval"
	case correlate.Interval:
		return "interval"
	default:
		return "unknown"
	}
}

// RunCorrelationActivity runs the correlate family selected by spec's
// anchor/candidate kinds over the given events and returns the accumulated
// result.
func (a *ActivitiesImpl) RunCorrelationActivity(ctx context.Context, spec JobSpec, anchors, candidates []JobEvent) (*JobResult, error) {
	startedAt := time.Now().UTC()

	policy, err := buildMatchPolicy(spec)
	if err != nil {
		return nil, fmt.Errorf("build match policy: %w", err)
	}

	sink := &recordingRelationSink{}
	if err := dispatchCorrelation(spec, anchors, candidates, policy, sink); err != nil {
		return nil, fmt.Errorf("run correlation: %w", err)
	}

	a.logger.Info("correlation finished", "job_id", spec.JobID, "matches", len(sink.matches), "misses", sink.missCount)

	return &JobResult{
		JobID:      spec.JobID,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Matches:    sink.matches,
		MatchCount: len(sink.matches),
		MissCount:  sink.missCount,
	}, nil
}

// RecordJobRunActivity persists a finished job's result to the job store.
func (a *ActivitiesImpl) RecordJobRunActivity(ctx context.Context, result *JobResult) error {
	matchesJSON, err := json.Marshal(result.Matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}

	run := jobstore.Run{
		ID:          uuid.NewString(),
		JobID:       result.JobID,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
		MatchCount:  result.MatchCount,
		MissCount:   result.MissCount,
		MatchesJSON: matchesJSON,
	}
	if err := a.jobs.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("record job run: %w", err)
	}
	return nil
}
