package temporal

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// AnchorEventSignal and CandidateEventSignal carry freshly ingested events
// into a running StreamingCorrelationWorkflow.
type AnchorEventSignal struct {
	Events []JobEvent `json:"events"`
}

type CandidateEventSignal struct {
	Events []JobEvent `json:"events"`
}

// CorrelationWorkflow runs one batch correlation job to completion: load
// both sides' events, run the matcher family the spec selects, and record
// the result.
func CorrelationWorkflow(ctx workflow.Context, spec JobSpec) (*JobResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("starting correlation workflow", "jobID", spec.JobID)

	ao := workflow.ActivityOptions{
		ScheduleToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var anchors []JobEvent
	if err := workflow.ExecuteActivity(ctx, LoadEventsActivityName, spec.Anchor.Source, spec.TimeRange).Get(ctx, &anchors); err != nil {
		return nil, fmt.Errorf("load anchor events: %w", err)
	}

	var candidates []JobEvent
	if err := workflow.ExecuteActivity(ctx, LoadEventsActivityName, spec.Candidate.Source, spec.TimeRange).Get(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("load candidate events: %w", err)
	}

	var result *JobResult
	if err := workflow.ExecuteActivity(ctx, RunCorrelationActivityName, spec, anchors, candidates).Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("run correlation: %w", err)
	}

	if err := workflow.ExecuteActivity(ctx, RecordJobRunActivityName, result).Get(ctx, nil); err != nil {
		return nil, fmt.Errorf("record job run: %w", err)
	}

	logger.Info("correlation workflow finished", "jobID", spec.JobID, "matches", result.MatchCount, "misses", result.MissCount)
	return result, nil
}

// streamingState tracks a running StreamingCorrelationWorkflow's
// accumulated event counts, to decide when to ContinueAsNew.
type streamingState struct {
	AnchorCount    int       `json:"anchor_count"`
	CandidateCount int       `json:"candidate_count"`
	LastEventAt    time.Time `json:"last_event_at"`
}

// StreamingCorrelationWorkflow accepts anchor and candidate events via
// signal as they arrive and appends them to their sources. It runs one
// correlation pass each time run-now fires; arriving events alone do not
// start a pass. It calls ContinueAsNew once the number of events it has
// appended reaches DefaultContinueAsNewThreshold.
func StreamingCorrelationWorkflow(ctx workflow.Context, spec JobSpec) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("starting streaming correlation workflow", "jobID", spec.JobID)

	state := streamingState{LastEventAt: workflow.Now(ctx)}

	anchorChan := workflow.GetSignalChannel(ctx, AnchorEventSignalName)
	candidateChan := workflow.GetSignalChannel(ctx, CandidateEventSignalName)
	runNowChan := workflow.GetSignalChannel(ctx, RunNowSignalName)

	ao := workflow.ActivityOptions{
		ScheduleToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	selector := workflow.NewSelector(ctx)

	selector.AddReceive(anchorChan, func(c workflow.ReceiveChannel, more bool) {
		var signal AnchorEventSignal
		c.Receive(ctx, &signal)
		if err := workflow.ExecuteActivity(ctx, AppendAnchorEventsActivityName, spec.Anchor.Source, signal.Events).Get(ctx, nil); err != nil {
			logger.Error("failed to append anchor events", "error", err)
			return
		}
		state.AnchorCount += len(signal.Events)
		state.LastEventAt = workflow.Now(ctx)
	})

	selector.AddReceive(candidateChan, func(c workflow.ReceiveChannel, more bool) {
		var signal CandidateEventSignal
		c.Receive(ctx, &signal)
		if err := workflow.ExecuteActivity(ctx, AppendCandidateEventsActivityName, spec.Candidate.Source, signal.Events).Get(ctx, nil); err != nil {
			logger.Error("failed to append candidate events", "error", err)
			return
		}
		state.CandidateCount += len(signal.Events)
		state.LastEventAt = workflow.Now(ctx)
	})

	var runRequested bool
	selector.AddReceive(runNowChan, func(c workflow.ReceiveChannel, more bool) {
		c.Receive(ctx, nil)
		runRequested = true
	})

	var cancelled bool
	selector.AddReceive(ctx.Done(), func(c workflow.ReceiveChannel, more bool) {
		c.Receive(ctx, nil)
		cancelled = true
	})

	for {
		selector.Select(ctx)
		if cancelled {
			return ctx.Err()
		}

		if runRequested {
			runRequested = false
			if _, err := runOneCorrelationPass(ctx, spec); err != nil {
				logger.Error("correlation pass failed", "error", err)
			}
		}

		totalEvents := state.AnchorCount + state.CandidateCount
		if totalEvents >= DefaultContinueAsNewThreshold {
			logger.Info("continuing as new", "totalEvents", totalEvents)
			return workflow.NewContinueAsNewError(ctx, StreamingCorrelationWorkflow, spec)
		}
	}
}

// runOneCorrelationPass loads the current state of both sources and runs
// one correlation pass, recording the result.
func runOneCorrelationPass(ctx workflow.Context, spec JobSpec) (*JobResult, error) {
	var anchors []JobEvent
	if err := workflow.ExecuteActivity(ctx, LoadEventsActivityName, spec.Anchor.Source, spec.TimeRange).Get(ctx, &anchors); err != nil {
		return nil, fmt.Errorf("load anchor events: %w", err)
	}

	var candidates []JobEvent
	if err := workflow.ExecuteActivity(ctx, LoadEventsActivityName, spec.Candidate.Source, spec.TimeRange).Get(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("load candidate events: %w", err)
	}

	var result *JobResult
	if err := workflow.ExecuteActivity(ctx, RunCorrelationActivityName, spec, anchors, candidates).Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("run correlation: %w", err)
	}

	if err := workflow.ExecuteActivity(ctx, RecordJobRunActivityName, result).Get(ctx, nil); err != nil {
		return nil, fmt.Errorf("record job run: %w", err)
	}

	return result, nil
}

// GenerateCorrelationWorkflowID and GenerateStreamWorkflowID live in
// types.go alongside the other wire-format identifiers.
