package correlate

import "time"

// evalResult is the outcome of classifying one expanded (anchor,
// candidate) pair against a policy's relation mask.
type evalResult struct {
	accept   bool
	matchType MatchType
	relation  TemporalRelation // only meaningful when matchType == Interval
}

// evaluatePair is the single source of truth for turning two expanded
// bounds into an accept/reject decision and a MatchType. Every strategy,
// regardless of family or algorithm, funnels its candidate pairs through
// this function so that brute, candidates-sorted, and both-sorted stay
// bit-identical by construction.
func evaluatePair(aStart, aEnd time.Time, aDegenerate bool, bStart, bEnd time.Time, bDegenerate bool, mask AllowedRelations) evalResult {
	rel := Classify(aStart, aEnd, bStart, bEnd)
	if !mask.Accepts(rel) {
		return evalResult{accept: false}
	}

	switch {
	case aDegenerate && bDegenerate:
		if rel != Equal {
			return evalResult{accept: false}
		}
		return evalResult{accept: true, matchType: PointExact}
	case aDegenerate != bDegenerate:
		if !pointLiesWithin(rel) {
			return evalResult{accept: false}
		}
		return evalResult{accept: true, matchType: PointInInterval}
	default:
		return evalResult{accept: true, matchType: Interval, relation: rel}
	}
}

// pointLiesWithin reports whether relation r, produced by classifying a
// degenerate (point) side against a non-degenerate (interval) side, means
// the point lies inside or on the boundary of the interval. Classify tests
// Meets and MetBy before the other relations, so a point on an endpoint
// classifies as one of those; Before and After mean the point lies outside.
// Equal is excluded: it cannot occur when exactly one side is degenerate
// (equal bounds implies both sides are degenerate together or neither is).
func pointLiesWithin(r TemporalRelation) bool {
	switch r {
	case Meets, MetBy, During, Starts, Finishes, Contains, StartedBy, FinishedBy:
		return true
	default:
		return false
	}
}
