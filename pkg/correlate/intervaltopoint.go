package correlate

// MatchIntervalToPoint reports, for each anchor interval, every candidate
// point that matches it under policy, delivered through sink in anchor
// input order. No dedicated sorted strategy exists for this family; ordering
// is still validated when declared, and brute force is always used
// underneath.
func MatchIntervalToPoint[A TemporalInterval, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, sink PairSink[A, C]) error {
	return runIntervalToPoint(anchors, candidates, policy, newPairEmitter(sink))
}

// MatchIntervalToPointGrouped is the GroupSink variant of
// MatchIntervalToPoint.
func MatchIntervalToPointGrouped[A TemporalInterval, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, sink GroupSink[A, C]) error {
	return runIntervalToPoint(anchors, candidates, policy, newGroupEmitter(sink, len(candidates)))
}

// MatchIntervalToPointBuffered is the buffered-array variant of
// MatchIntervalToPoint; it returns the number of matches written into buf.
func MatchIntervalToPointBuffered[A TemporalInterval, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, buf []MatchPair[A, C]) (int, error) {
	sink := NewBufferedPairSink(buf)
	err := runIntervalToPoint(anchors, candidates, policy, newPairEmitter[A, C](sink))
	return sink.Count(), err
}

func validateIntervalToPointOrdering[A TemporalInterval, C TemporalPoint](anchors []A, candidates []C, ordering InputOrdering) error {
	switch ordering {
	case OrderingCandidatesSorted:
		return validateAscendingPoints(candidates)
	case OrderingBothSorted:
		if err := validateAscendingPoints(candidates); err != nil {
			return err
		}
		return validateAscendingIntervals(anchors)
	default:
		return nil
	}
}

func runIntervalToPoint[A TemporalInterval, C TemporalPoint](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	if err := validateIntervalSlice(anchors); err != nil {
		return err
	}
	if err := validateIntervalToPointOrdering(anchors, candidates, policy.InputOrdering); err != nil {
		return err
	}

	aTolExact := policy.AnchorTolerance.IsExact()
	cDeg := policy.CandidateTolerance.IsExact()

	for _, a := range anchors {
		em.startAnchor(a)
		aStart, aEnd := policy.AnchorTolerance.expandInterval(a.Start(), a.End())
		aDeg := aTolExact && a.Start().Equal(a.End())

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
