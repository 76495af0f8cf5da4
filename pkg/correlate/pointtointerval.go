package correlate

import (
	"sort"
	"time"
)

// MatchPointToInterval reports, for each anchor point, every candidate
// interval that matches it under policy, delivered through sink in anchor
// input order.
func MatchPointToInterval[A TemporalPoint, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, sink PairSink[A, C]) error {
	return runPointToInterval(anchors, candidates, policy, newPairEmitter(sink))
}

// MatchPointToIntervalGrouped is the GroupSink variant of
// MatchPointToInterval.
func MatchPointToIntervalGrouped[A TemporalPoint, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, sink GroupSink[A, C]) error {
	return runPointToInterval(anchors, candidates, policy, newGroupEmitter(sink, len(candidates)))
}

// MatchPointToIntervalBuffered is the buffered-array variant of
// MatchPointToInterval; it returns the number of matches written into buf.
func MatchPointToIntervalBuffered[A TemporalPoint, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, buf []MatchPair[A, C]) (int, error) {
	sink := NewBufferedPairSink(buf)
	err := runPointToInterval(anchors, candidates, policy, newPairEmitter[A, C](sink))
	return sink.Count(), err
}

func validatePointToIntervalOrdering[A TemporalPoint, C TemporalInterval](anchors []A, candidates []C, ordering InputOrdering) error {
	switch ordering {
	case OrderingCandidatesSorted:
		return validateAscendingIntervals(candidates)
	case OrderingBothSorted:
		if err := validateAscendingIntervals(candidates); err != nil {
			return err
		}
		return validateAscendingPoints(anchors)
	default:
		return nil
	}
}

func runPointToInterval[A TemporalPoint, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	if err := validateIntervalSlice(candidates); err != nil {
		return err
	}
	if err := validatePointToIntervalOrdering(anchors, candidates, policy.InputOrdering); err != nil {
		return err
	}

	// BothSorted has no dedicated algorithm for this family; a
	// CandidatesSorted-style window prune still applies, since
	// both-sorted input is a superset of candidates-sorted input.
	if policy.InputOrdering != OrderingNone && !disjointRelationsAllowed(policy.AllowedRelations) {
		return candidatesSortedPointToInterval(anchors, candidates, policy, em)
	}
	return brutePointToInterval(anchors, candidates, policy, em)
}

func brutePointToInterval[A TemporalPoint, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	aDeg := policy.AnchorTolerance.IsExact()

	for _, a := range anchors {
		em.startAnchor(a)
		aStart, aEnd := policy.AnchorTolerance.expandPoint(a.At())

		for _, c := range candidates {
			cStart, cEnd := policy.CandidateTolerance.expandInterval(c.Start(), c.End())
			cDeg := policy.CandidateTolerance.IsExact() && c.Start().Equal(c.End())
			res := evaluatePair(aStart, aEnd, aDeg, cStart, cEnd, cDeg, policy.AllowedRelations)
			if err := emitIfAccepted[A, C](em, res, c); err != nil {
				return err
			}
		}
		if err := em.finishAnchor(a); err != nil {
			return err
		}
	}
	return nil
}

func candidatesSortedPointToInterval[A TemporalPoint, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	aDeg := policy.AnchorTolerance.IsExact()

	// Candidates are sorted by Start() only, so the lower bound reaches back
	// by the longest candidate duration: a candidate starting that far
	// before aStart can still end at or after it.
	var maxDur time.Duration
	for _, c := range candidates {
		if d := c.End().Sub(c.Start()); d > maxDur {
			maxDur = d
		}
	}

	for _, a := range anchors {
		em.startAnchor(a)
		aStart, aEnd := policy.AnchorTolerance.expandPoint(a.At())

		lo := aStart.Add(-policy.CandidateTolerance.After - maxDur)
		hi := aEnd.Add(policy.CandidateTolerance.Before)

		start := sort.Search(len(candidates), func(i int) bool {
			return !candidates[i].Start().Before(lo)
		})

		for i := start; i < len(candidates); i++ {
			c := candidates[i]
			if c.Start().After(hi) {
				break
			}
			cStart, cEnd := policy.CandidateTolerance.expandInterval(c.Start(), c.End())
			cDeg := policy.CandidateTolerance.IsExact() && c.Start().Equal(c.End())
			res := evaluatePair(aStart, aEnd, aDeg, cStart, cEnd, cDeg, policy.AllowedRelations)
			if err := emitIfAccepted[A, C](em, res, c); err != nil {
				return err
			}
		}
		if err := em.finishAnchor(a); err != nil {
			return err
		}
	}
	return nil
}
