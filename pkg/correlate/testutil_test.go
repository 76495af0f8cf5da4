package correlate

import "time"

// base instant shared by every test in this package; test cases build
// points and intervals as second offsets from this instant.
var baseT = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// testPoint is a minimal TemporalPoint built from a base-relative second
// offset.
type testPoint struct {
	offset int
}

func (p testPoint) At() time.Time {
	return baseT.Add(time.Duration(p.offset) * time.Second)
}

func points(offsets ...int) []testPoint {
	pts := make([]testPoint, len(offsets))
	for i, o := range offsets {
		pts[i] = testPoint{offset: o}
	}
	return pts
}

// testInterval is a minimal TemporalInterval built from base-relative
// second offsets.
type testInterval struct {
	startOffset, endOffset int
}

func (iv testInterval) Start() time.Time {
	return baseT.Add(time.Duration(iv.startOffset) * time.Second)
}

func (iv testInterval) End() time.Time {
	return baseT.Add(time.Duration(iv.endOffset) * time.Second)
}

func interval(start, end int) testInterval {
	return testInterval{startOffset: start, endOffset: end}
}

func intervals(pairs ...[2]int) []testInterval {
	ivs := make([]testInterval, len(pairs))
	for i, p := range pairs {
		ivs[i] = interval(p[0], p[1])
	}
	return ivs
}

// recordingPairSink is a PairSink that records every callback for
// assertions, in call order.
type recordingPairSink[A, C any] struct {
	matches []MatchPair[A, C]
	misses  []A
}

func (s *recordingPairSink[A, C]) OnMatch(pair MatchPair[A, C]) error {
	s.matches = append(s.matches, pair)
	return nil
}

func (s *recordingPairSink[A, C]) OnMiss(anchor A) error {
	s.misses = append(s.misses, anchor)
	return nil
}

// recordingGroupSink is a GroupSink that records every callback for
// assertions, in call order. Matches are copied out of the emitter's
// borrowed scratch buffer since the recording sink retains them past the
// OnMatch call.
type recordingGroupSink[A, C any] struct {
	groups []MatchGroup[A, C]
	misses []A
}

func (s *recordingGroupSink[A, C]) OnMatch(group MatchGroup[A, C]) error {
	owned := make([]C, len(group.Matches))
	copy(owned, group.Matches)
	s.groups = append(s.groups, MatchGroup[A, C]{Anchor: group.Anchor, Matches: owned})
	return nil
}

func (s *recordingGroupSink[A, C]) OnMiss(anchor A) error {
	s.misses = append(s.misses, anchor)
	return nil
}
