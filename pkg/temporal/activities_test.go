package temporal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leowmjw/tempocorrelate/pkg/jobstore"
)

func newTestActivities(t *testing.T) (*ActivitiesImpl, *MockEventStore, *jobstore.Store) {
	t.Helper()

	store, err := jobstore.Open(filepath.Join(t.TempDir(), "activities_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	events := NewMockEventStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewActivitiesImpl(logger, events, store), events, store
}

func TestActivitiesImpl_LoadAndAppendEvents(t *testing.T) {
	activities, _, _ := newTestActivities(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []JobEvent{mkPoint("c1", base), mkPoint("c2", base.Add(time.Minute))}

	require.NoError(t, activities.AppendCandidateEventsActivity(ctx, "clicks", events))
	require.NoError(t, activities.AppendAnchorEventsActivity(ctx, "signups", events[:1]))

	loaded, err := activities.LoadEventsActivity(ctx, "clicks", nil)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	loaded, err = activities.LoadEventsActivity(ctx, "signups", nil)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestActivitiesImpl_RunCorrelationActivity(t *testing.T) {
	activities, _, _ := newTestActivities(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	spec := JobSpec{JobID: "clicks-to-signups"}
	spec.Anchor.Source, spec.Anchor.Kind = "clicks", PointKind
	spec.Candidate.Source, spec.Candidate.Kind = "signups", PointKind

	anchors := []JobEvent{mkPoint("a1", base)}
	candidates := []JobEvent{mkPoint("c1", base)}

	result, err := activities.RunCorrelationActivity(ctx, spec, anchors, candidates)
	require.NoError(t, err)
	assert.Equal(t, "clicks-to-signups", result.JobID)
	assert.Equal(t, 1, result.MatchCount)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))
}

func TestActivitiesImpl_RunCorrelationActivity_InvalidPolicy(t *testing.T) {
	activities, _, _ := newTestActivities(t)
	ctx := context.Background()

	spec := JobSpec{JobID: "bad", AllowedRelations: []string{"NotARelation"}}
	spec.Anchor.Kind, spec.Candidate.Kind = PointKind, PointKind

	_, err := activities.RunCorrelationActivity(ctx, spec, nil, nil)
	require.Error(t, err)
}

func TestActivitiesImpl_RecordJobRunActivity(t *testing.T) {
	activities, _, store := newTestActivities(t)
	ctx := context.Background()

	result := &JobResult{
		JobID:      "clicks-to-signups",
		StartedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC),
		Matches:    []MatchRecord{{AnchorID: "a1", CandidateID: "c1", MatchType: "point_exact"}},
		MatchCount: 1,
		MissCount:  0,
	}

	require.NoError(t, activities.RecordJobRunActivity(ctx, result))

	runs, err := store.ListRuns(ctx, "clicks-to-signups")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].MatchCount)

	var matches []MatchRecord
	require.NoError(t, json.Unmarshal(runs[0].MatchesJSON, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "a1", matches[0].AnchorID)
}

func TestMatchTypeName(t *testing.T) {
	assert.Equal(t, "unknown", matchTypeName(99))
}
