package correlate

import "errors"

// InputOrdering declares what ordering guarantee, if any, the caller
// promises for the candidate (and possibly anchor) sequence. The engine
// validates the promise once, up front, rather than trusting it silently.
type InputOrdering int

const (
	// OrderingNone makes no promise; the brute-force strategy is used.
	OrderingNone InputOrdering = iota
	// OrderingCandidatesSorted promises candidates are non-decreasing by
	// their sort key (point At, or interval Start).
	OrderingCandidatesSorted
	// OrderingBothSorted promises both anchors and candidates are
	// non-decreasing by their sort key.
	OrderingBothSorted
)

// ErrUnsortedInput is returned when input_ordering asserts an ordering the
// data does not actually satisfy.
var ErrUnsortedInput = errors.New("correlate: input is not sorted as the declared ordering requires")

// MatchPolicy is the immutable configuration for a single matcher call.
type MatchPolicy struct {
	AnchorTolerance    TimeTolerance
	CandidateTolerance TimeTolerance
	AllowedRelations   AllowedRelations
	InputOrdering      InputOrdering
}

// DefaultPolicy returns the permissive baseline: exact tolerances, every
// relation accepted, no ordering promise.
func DefaultPolicy() MatchPolicy {
	return MatchPolicy{
		AnchorTolerance:    NoTolerance,
		CandidateTolerance: NoTolerance,
		AllowedRelations:   RelationAny,
		InputOrdering:      OrderingNone,
	}
}

// MatchType classifies how a produced match relates its two sides: Interval
// carries a relation, PointExact and PointInInterval never do.
type MatchType int

const (
	// PointExact: both sides reduced to the same degenerate instant.
	PointExact MatchType = iota
	// PointInInterval: exactly one side is a degenerate instant, the
	// other a genuine interval, and the instant lies within or on the
	// boundary of that interval.
	PointInInterval
	// Interval: both sides are effectively intervals after tolerance
	// expansion.
	Interval
)
