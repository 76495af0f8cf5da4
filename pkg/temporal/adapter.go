package temporal

import (
	"fmt"
	"time"

	"github.com/leowmjw/tempocorrelate/pkg/correlate"
)

// jobPoint adapts a JobEvent to correlate.TemporalPoint.
type jobPoint struct{ event JobEvent }

func (p jobPoint) At() time.Time { return p.event.Timestamp }
func (p jobPoint) ID() string    { return p.event.ID }

// jobInterval adapts a JobEvent to correlate.TemporalInterval. End must be
// non-nil; callers only construct this for JobEvents from an interval
// source.
type jobInterval struct{ event JobEvent }

func (iv jobInterval) Start() time.Time { return iv.event.Timestamp }
func (iv jobInterval) End() time.Time   { return *iv.event.End }
func (iv jobInterval) ID() string       { return iv.event.ID }

func toPoints(events []JobEvent) []jobPoint {
	pts := make([]jobPoint, len(events))
	for i, e := range events {
		pts[i] = jobPoint{event: e}
	}
	return pts
}

func toIntervals(events []JobEvent) ([]jobInterval, error) {
	ivs := make([]jobInterval, len(events))
	for i, e := range events {
		if e.End == nil {
			return nil, fmt.Errorf("correlate: event %q has no end, required for an interval source", e.ID)
		}
		ivs[i] = jobInterval{event: e}
	}
	return ivs, nil
}

var relationsByName = map[string]correlate.TemporalRelation{
	"Before":       correlate.Before,
	"Meets":        correlate.Meets,
	"Overlaps":     correlate.Overlaps,
	"FinishedBy":   correlate.FinishedBy,
	"Contains":     correlate.Contains,
	"StartedBy":    correlate.StartedBy,
	"Equal":        correlate.Equal,
	"Starts":       correlate.Starts,
	"During":       correlate.During,
	"Finishes":     correlate.Finishes,
	"OverlappedBy": correlate.OverlappedBy,
	"MetBy":        correlate.MetBy,
	"After":        correlate.After,
}

func parseRelation(name string) (correlate.TemporalRelation, error) {
	r, ok := relationsByName[name]
	if !ok {
		return 0, fmt.Errorf("correlate: unknown relation name %q", name)
	}
	return r, nil
}

var orderingsByName = map[string]correlate.InputOrdering{
	"":                  correlate.OrderingNone,
	"none":              correlate.OrderingNone,
	"candidates_sorted": correlate.OrderingCandidatesSorted,
	"both_sorted":       correlate.OrderingBothSorted,
}

// buildMatchPolicy translates a JobSpec's wire-format policy fields into a
// correlate.MatchPolicy, validating relation names and the ordering keyword.
func buildMatchPolicy(spec JobSpec) (correlate.MatchPolicy, error) {
	policy := correlate.DefaultPolicy()

	anchorTol, err := correlate.NewTimeTolerance(spec.AnchorTolerance.Before, spec.AnchorTolerance.After)
	if err != nil {
		return policy, fmt.Errorf("anchor_tolerance: %w", err)
	}
	policy.AnchorTolerance = anchorTol

	candidateTol, err := correlate.NewTimeTolerance(spec.CandidateTolerance.Before, spec.CandidateTolerance.After)
	if err != nil {
		return policy, fmt.Errorf("candidate_tolerance: %w", err)
	}
	policy.CandidateTolerance = candidateTol

	if len(spec.AllowedRelations) > 0 {
		relations := make([]correlate.TemporalRelation, 0, len(spec.AllowedRelations))
		for _, name := range spec.AllowedRelations {
			r, err := parseRelation(name)
			if err != nil {
				return policy, fmt.Errorf("allowed_relations: %w", err)
			}
			relations = append(relations, r)
		}
		policy.AllowedRelations = correlate.NewAllowedRelations(relations...)
	}

	ordering, ok := orderingsByName[spec.InputOrdering]
	if !ok {
		return policy, fmt.Errorf("input_ordering: unknown value %q", spec.InputOrdering)
	}
	policy.InputOrdering = ordering

	return policy, nil
}

// ValidateJobSpec reports whether spec names both sources, gives each side
// a kind of point or interval, and has well-formed policy fields
// (tolerances, allowed relations, input ordering), without running a
// correlation. Callers that only need a syntax/semantics check, such as a
// CLI validate command, can use this instead of standing up a workflow.
func ValidateJobSpec(spec JobSpec) error {
	if spec.Anchor.Source == "" {
		return fmt.Errorf("anchor.source is required")
	}
	if spec.Candidate.Source == "" {
		return fmt.Errorf("candidate.source is required")
	}
	switch spec.Anchor.Kind {
	case PointKind, IntervalKind:
	default:
		return fmt.Errorf("anchor.kind must be %q or %q, got %q", PointKind, IntervalKind, spec.Anchor.Kind)
	}
	switch spec.Candidate.Kind {
	case PointKind, IntervalKind:
	default:
		return fmt.Errorf("candidate.kind must be %q or %q, got %q", PointKind, IntervalKind, spec.Candidate.Kind)
	}
	_, err := buildMatchPolicy(spec)
	return err
}

// identified is implemented by jobPoint and jobInterval: both carry an
// underlying JobEvent ID a pairRecorder can report without knowing which
// entity kind it is recording.
type identified interface{ ID() string }

// pairRecorder is a correlate.PairSink that flattens matched pairs into
// recordingRelationSink, independent of which of the four entity-kind
// families produced them.
type pairRecorder[A identified, C identified] struct {
	sink *recordingRelationSink
}

func (r pairRecorder[A, C]) OnMatch(pair correlate.MatchPair[A, C]) error {
	rec := MatchRecord{
		AnchorID:    pair.Anchor.ID(),
		CandidateID: pair.Candidate.ID(),
		MatchType:   matchTypeName(pair.Type),
	}
	if pair.Relation != nil {
		rec.Relation = pair.Relation.String()
	}
	r.sink.matches = append(r.sink.matches, rec)
	return nil
}

func (r pairRecorder[A, C]) OnMiss(A) error {
	r.sink.missCount++
	return nil
}

// dispatchCorrelation runs the correlate family selected by the anchor and
// candidate entity kinds declared in spec, recording every match and miss
// into sink.
func dispatchCorrelation(spec JobSpec, anchorEvents, candidateEvents []JobEvent, policy correlate.MatchPolicy, sink *recordingRelationSink) error {
	switch {
	case spec.Anchor.Kind == PointKind && spec.Candidate.Kind == PointKind:
		anchors := toPoints(anchorEvents)
		candidates := toPoints(candidateEvents)
		return correlate.MatchPointToPoint[jobPoint, jobPoint](anchors, candidates, policy, pairRecorder[jobPoint, jobPoint]{sink: sink})

	case spec.Anchor.Kind == PointKind && spec.Candidate.Kind == IntervalKind:
		anchors := toPoints(anchorEvents)
		candidates, err := toIntervals(candidateEvents)
		if err != nil {
			return err
		}
		return correlate.MatchPointToInterval[jobPoint, jobInterval](anchors, candidates, policy, pairRecorder[jobPoint, jobInterval]{sink: sink})

	case spec.Anchor.Kind == IntervalKind && spec.Candidate.Kind == PointKind:
		anchors, err := toIntervals(anchorEvents)
		if err != nil {
			return err
		}
		candidates := toPoints(candidateEvents)
		return correlate.MatchIntervalToPoint[jobInterval, jobPoint](anchors, candidates, policy, pairRecorder[jobInterval, jobPoint]{sink: sink})

	case spec.Anchor.Kind == IntervalKind && spec.Candidate.Kind == IntervalKind:
		anchors, err := toIntervals(anchorEvents)
		if err != nil {
			return err
		}
		candidates, err := toIntervals(candidateEvents)
		if err != nil {
			return err
		}
		return correlate.MatchIntervalToInterval[jobInterval, jobInterval](anchors, candidates, policy, pairRecorder[jobInterval, jobInterval]{sink: sink})

	default:
		return fmt.Errorf("correlate: unsupported anchor/candidate kind combination %q/%q", spec.Anchor.Kind, spec.Candidate.Kind)
	}
}
