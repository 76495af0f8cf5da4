package correlate

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// Exact point-to-point matching with no tolerance.
func TestMatchPointToPoint_ExactScenario(t *testing.T) {
	anchors := points(0, 10, 20, 30)
	candidates := points(10, 20, 40, 50)

	sink := &recordingPairSink[testPoint, testPoint]{}
	if err := MatchPointToPoint(anchors, candidates, DefaultPolicy(), sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(sink.matches))
	}
	for _, m := range sink.matches {
		if m.Type != PointExact {
			t.Errorf("match %+v should be PointExact", m)
		}
		if m.Relation != nil {
			t.Errorf("match %+v should carry no relation", m)
		}
	}
	if got := []int{sink.matches[0].Anchor.offset, sink.matches[1].Anchor.offset}; !reflect.DeepEqual(got, []int{10, 20}) {
		t.Fatalf("anchors matched = %v, want [10 20]", got)
	}

	var misses []int
	for _, a := range sink.misses {
		misses = append(misses, a.offset)
	}
	if !reflect.DeepEqual(misses, []int{0, 30}) {
		t.Fatalf("misses = %v, want [0 30]", misses)
	}
}

// Symmetric anchor tolerance widens which candidates match.
func TestMatchPointToPoint_SymmetricAnchorTolerance(t *testing.T) {
	anchors := points(0)
	candidates := points(-6, -5, 0, 5, 6)

	policy := DefaultPolicy()
	policy.AnchorTolerance = Symmetric(5 * time.Second)

	sink := &recordingPairSink[testPoint, testPoint]{}
	if err := MatchPointToPoint(anchors, candidates, policy, sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(sink.matches))
	}
	if len(sink.misses) != 0 {
		t.Fatalf("got %d misses, want 0", len(sink.misses))
	}
	for _, m := range sink.matches {
		if m.Type != PointInInterval {
			t.Errorf("match %+v should be PointInInterval", m)
		}
	}
}

// Strategy selection must not change which matches are emitted.
func TestMatchPointToPoint_BothSortedEquivalence(t *testing.T) {
	anchors := points(0, 5, 10, 15)
	candidates := points(1, 4, 6, 11, 14, 20)

	base := DefaultPolicy()
	base.AnchorTolerance = Symmetric(2 * time.Second)

	bruteSink := &recordingPairSink[testPoint, testPoint]{}
	bothSortedSink := &recordingPairSink[testPoint, testPoint]{}

	if err := MatchPointToPoint(anchors, candidates, base, bruteSink); err != nil {
		t.Fatalf("brute: unexpected error: %v", err)
	}

	sorted := base
	sorted.InputOrdering = OrderingBothSorted
	if err := MatchPointToPoint(anchors, candidates, sorted, bothSortedSink); err != nil {
		t.Fatalf("both-sorted: unexpected error: %v", err)
	}

	assertSameEmissions(t, bruteSink, bothSortedSink)

	candidatesSortedSink := &recordingPairSink[testPoint, testPoint]{}
	candSorted := base
	candSorted.InputOrdering = OrderingCandidatesSorted
	if err := MatchPointToPoint(anchors, candidates, candSorted, candidatesSortedSink); err != nil {
		t.Fatalf("candidates-sorted: unexpected error: %v", err)
	}
	assertSameEmissions(t, bruteSink, candidatesSortedSink)
}

func assertSameEmissions(t *testing.T, a, b *recordingPairSink[testPoint, testPoint]) {
	t.Helper()
	if len(a.matches) != len(b.matches) {
		t.Fatalf("match count differs: %d vs %d", len(a.matches), len(b.matches))
	}
	for i := range a.matches {
		if a.matches[i].Anchor != b.matches[i].Anchor || a.matches[i].Candidate != b.matches[i].Candidate || a.matches[i].Type != b.matches[i].Type {
			t.Fatalf("match %d differs: %+v vs %+v", i, a.matches[i], b.matches[i])
		}
	}
	if !reflect.DeepEqual(a.misses, b.misses) {
		t.Fatalf("misses differ: %v vs %v", a.misses, b.misses)
	}
}

func TestMatchPointToPoint_UnsortedInput(t *testing.T) {
	anchors := points(0, 10)
	candidates := points(5, 1) // not ascending

	policy := DefaultPolicy()
	policy.InputOrdering = OrderingCandidatesSorted

	sink := &recordingPairSink[testPoint, testPoint]{}
	if err := MatchPointToPoint(anchors, candidates, policy, sink); !errors.Is(err, ErrUnsortedInput) {
		t.Fatalf("expected ErrUnsortedInput, got %v", err)
	}
}

func TestMatchPointToPoint_Grouped(t *testing.T) {
	anchors := points(0, 10, 20, 30)
	candidates := points(10, 20, 40, 50)

	sink := &recordingGroupSink[testPoint, testPoint]{}
	if err := MatchPointToPointGrouped(anchors, candidates, DefaultPolicy(), sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(sink.groups))
	}
	if len(sink.groups[0].Matches) != 1 || sink.groups[0].Matches[0].offset != 10 {
		t.Fatalf("first group = %+v", sink.groups[0])
	}
	if len(sink.misses) != 2 {
		t.Fatalf("got %d misses, want 2", len(sink.misses))
	}
}

func TestMatchPointToPoint_Buffered(t *testing.T) {
	anchors := points(0, 10, 20, 30)
	candidates := points(10, 20, 40, 50)

	buf := make([]MatchPair[testPoint, testPoint], 1)
	n, err := MatchPointToPointBuffered(anchors, candidates, DefaultPolicy(), buf)
	if !errors.Is(err, ErrBufferExhausted) {
		t.Fatalf("expected ErrBufferExhausted, got %v", err)
	}
	if n != 1 {
		t.Fatalf("Count() = %d, want 1 (partial fill)", n)
	}

	bigBuf := make([]MatchPair[testPoint, testPoint], 8)
	n, err = MatchPointToPointBuffered(anchors, candidates, DefaultPolicy(), bigBuf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("Count() = %d, want 2", n)
	}
}
