package correlate

import "sort"

// MatchPointToPoint reports, for each anchor point, every candidate point
// that matches it under policy, delivered through sink in anchor input
// order.
func MatchPointToPoint[A TemporalPoint, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, sink PairSink[A, C]) error {
	return runPointToPoint(anchors, candidates, policy, newPairEmitter(sink))
}

// MatchPointToPointGrouped is the GroupSink variant of MatchPointToPoint.
func MatchPointToPointGrouped[A TemporalPoint, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, sink GroupSink[A, C]) error {
	return runPointToPoint(anchors, candidates, policy, newGroupEmitter(sink, len(candidates)))
}

// MatchPointToPointBuffered is the buffered-array variant of
// MatchPointToPoint; it returns the number of matches written into buf.
// Misses are not tracked in this mode.
func MatchPointToPointBuffered[A TemporalPoint, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, buf []MatchPair[A, C]) (int, error) {
	sink := NewBufferedPairSink(buf)
	err := runPointToPoint(anchors, candidates, policy, newPairEmitter[A, C](sink))
	return sink.Count(), err
}

func validatePointToPointOrdering[A TemporalPoint, C TemporalPoint](anchors []A, candidates []C, ordering InputOrdering) error {
	switch ordering {
	case OrderingCandidatesSorted:
		return validateAscendingPoints(candidates)
	case OrderingBothSorted:
		if err := validateAscendingPoints(candidates); err != nil {
			return err
		}
		return validateAscendingPoints(anchors)
	default:
		return nil
	}
}

func runPointToPoint[A TemporalPoint, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	if err := validatePointToPointOrdering(anchors, candidates, policy.InputOrdering); err != nil {
		return err
	}

	// BothSorted is only defined here (per family) when the candidate
	// side carries no tolerance: the two-pointer cursor treats each
	// candidate's expanded window as the bare point itself.
	switch {
	case policy.InputOrdering == OrderingBothSorted && policy.CandidateTolerance.IsExact():
		return bothSortedPointToPoint(anchors, candidates, policy, em)
	case policy.InputOrdering != OrderingNone && !disjointRelationsAllowed(policy.AllowedRelations):
		return candidatesSortedPointToPoint(anchors, candidates, policy, em)
	default:
		return brutePointToPoint(anchors, candidates, policy, em)
	}
}

// disjointRelationsAllowed reports whether the mask accepts Before or
// After, the two relations with unbounded spatial extent. A window-pruned
// strategy cannot safely bound its candidate scan when either is in play,
// so the engine falls back to brute force (still correct, just without
// the optimization) whenever this holds.
func disjointRelationsAllowed(mask AllowedRelations) bool {
	return mask.Accepts(Before) || mask.Accepts(After)
}

func brutePointToPoint[A TemporalPoint, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	aDeg := policy.AnchorTolerance.IsExact()
	cDeg := policy.CandidateTolerance.IsExact()

	for _, a := range anchors {
		em.startAnchor(a)
		aStart, aEnd := policy.AnchorTolerance.expandPoint(a.At())

		for _, c := range candidates {
			cStart, cEnd := policy.CandidateTolerance.expandPoint(c.At())
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

func candidatesSortedPointToPoint[A TemporalPoint, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	aDeg := policy.AnchorTolerance.IsExact()
	cDeg := policy.CandidateTolerance.IsExact()

	for _, a := range anchors {
		em.startAnchor(a)
		aStart, aEnd := policy.AnchorTolerance.expandPoint(a.At())

		lo := aStart.Add(-policy.CandidateTolerance.After)
		hi := aEnd.Add(policy.CandidateTolerance.Before)

		start := sort.Search(len(candidates), func(i int) bool {
			return !candidates[i].At().Before(lo)
		})

		for i := start; i < len(candidates); i++ {
			c := candidates[i]
			if c.At().After(hi) {
				break
			}
			cStart, cEnd := policy.CandidateTolerance.expandPoint(c.At())
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

func bothSortedPointToPoint[A TemporalPoint, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	aDeg := policy.AnchorTolerance.IsExact()
	j := 0 // non-retreating cursor: no earlier candidate can match any future anchor

	for _, a := range anchors {
		em.startAnchor(a)
		aStart, aEnd := policy.AnchorTolerance.expandPoint(a.At())

		for j < len(candidates) && candidates[j].At().Before(aStart) {
			j++
		}

		for k := j; k < len(candidates); k++ {
			c := candidates[k]
			if c.At().After(aEnd) {
				break
			}
			res := evaluatePair(aStart, aEnd, aDeg, c.At(), c.At(), true, policy.AllowedRelations)
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
