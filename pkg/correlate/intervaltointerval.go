package correlate

// MatchIntervalToInterval reports, for each anchor interval, every
// candidate interval that matches it under policy, delivered through sink
// in anchor input order. No dedicated sorted strategy exists for this
// family; ordering is still validated when declared, and brute force is
// always used underneath.
func MatchIntervalToInterval[A TemporalInterval, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, sink PairSink[A, C]) error {
	return runIntervalToInterval(anchors, candidates, policy, newPairEmitter(sink))
}

// MatchIntervalToIntervalGrouped is the GroupSink variant of
// MatchIntervalToInterval.
func MatchIntervalToIntervalGrouped[A TemporalInterval, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, sink GroupSink[A, C]) error {
	return runIntervalToInterval(anchors, candidates, policy, newGroupEmitter(sink, len(candidates)))
}

// MatchIntervalToIntervalBuffered is the buffered-array variant of
// MatchIntervalToInterval; it returns the number of matches written into
// buf.
func MatchIntervalToIntervalBuffered[A TemporalInterval, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, buf []MatchPair[A, C]) (int, error) {
	sink := NewBufferedPairSink(buf)
	err := runIntervalToInterval(anchors, candidates, policy, newPairEmitter[A, C](sink))
	return sink.Count(), err
}

func validateIntervalToIntervalOrdering[A TemporalInterval, C TemporalInterval](anchors []A, candidates []C, ordering InputOrdering) error {
	switch ordering {
	case OrderingCandidatesSorted:
		return validateAscendingIntervals(candidates)
	case OrderingBothSorted:
		if err := validateAscendingIntervals(candidates); err != nil {
			return err
		}
		return validateAscendingIntervals(anchors)
	default:
		return nil
	}
}

func runIntervalToInterval[A TemporalInterval, C TemporalInterval](anchors []A, candidates []C, policy MatchPolicy, em emitter[A, C]) error {
	if err := validateIntervalSlice(anchors); err != nil {
		return err
	}
	if err := validateIntervalSlice(candidates); err != nil {
		return err
	}
	if err := validateIntervalToIntervalOrdering(anchors, candidates, policy.InputOrdering); err != nil {
		return err
	}

	aTolExact := policy.AnchorTolerance.IsExact()
	cTolExact := policy.CandidateTolerance.IsExact()
	// Before/After are only reachable relations when the expanded
	// intervals are fully disjoint; when the mask excludes both, a cheap
	// bounds check can skip classification for obviously-disjoint pairs
	// without ever changing which pairs get emitted, since those pairs
	// would have been rejected by the filter anyway.
	skipDisjoint := !disjointRelationsAllowed(policy.AllowedRelations)

	for _, a := range anchors {
		em.startAnchor(a)
		aStart, aEnd := policy.AnchorTolerance.expandInterval(a.Start(), a.End())
		aDeg := aTolExact && a.Start().Equal(a.End())

		for _, c := range candidates {
			cStart, cEnd := policy.CandidateTolerance.expandInterval(c.Start(), c.End())

			if skipDisjoint && (aEnd.Before(cStart) || aStart.After(cEnd)) {
				continue
			}

			cDeg := cTolExact && c.Start().Equal(c.End())
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
