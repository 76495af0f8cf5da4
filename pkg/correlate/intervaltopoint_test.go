package correlate

import (
	"errors"
	"testing"
)

// Symmetric to the point-to-interval containment case, but with the
// interval as the anchor and points as candidates.
func TestMatchIntervalToPoint_Containment(t *testing.T) {
	anchors := intervals([2]int{0, 10}, [2]int{20, 30}, [2]int{40, 50})
	candidates := points(5, 15, 25)

	sink := &recordingPairSink[testInterval, testPoint]{}
	if err := MatchIntervalToPoint(anchors, candidates, DefaultPolicy(), sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(sink.matches))
	}
	if sink.matches[0].Anchor != interval(0, 10) || sink.matches[0].Candidate.offset != 5 {
		t.Fatalf("first match = %+v", sink.matches[0])
	}
	if sink.matches[1].Anchor != interval(20, 30) || sink.matches[1].Candidate.offset != 25 {
		t.Fatalf("second match = %+v", sink.matches[1])
	}
	if len(sink.misses) != 1 || sink.misses[0] != interval(40, 50) {
		t.Fatalf("misses = %+v, want [(40,50)]", sink.misses)
	}
}

func TestMatchIntervalToPoint_InvalidInterval(t *testing.T) {
	anchors := intervals([2]int{10, 0}) // start > end
	candidates := points(5)

	sink := &recordingPairSink[testInterval, testPoint]{}
	if err := MatchIntervalToPoint(anchors, candidates, DefaultPolicy(), sink); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestMatchIntervalToPoint_UnsortedAnchorsRejectedUnderBothSorted(t *testing.T) {
	anchors := intervals([2]int{20, 30}, [2]int{0, 10}) // not ascending
	candidates := points(5, 25)

	policy := DefaultPolicy()
	policy.InputOrdering = OrderingBothSorted

	sink := &recordingPairSink[testInterval, testPoint]{}
	if err := MatchIntervalToPoint(anchors, candidates, policy, sink); !errors.Is(err, ErrUnsortedInput) {
		t.Fatalf("expected ErrUnsortedInput, got %v", err)
	}
}

func TestMatchIntervalToPoint_Grouped(t *testing.T) {
	anchors := intervals([2]int{0, 10}, [2]int{20, 30})
	candidates := points(5, 6, 25)

	sink := &recordingGroupSink[testInterval, testPoint]{}
	if err := MatchIntervalToPointGrouped(anchors, candidates, DefaultPolicy(), sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(sink.groups))
	}
	if len(sink.groups[0].Matches) != 2 {
		t.Fatalf("first group = %+v, want 2 matches", sink.groups[0])
	}
	if len(sink.groups[1].Matches) != 1 || sink.groups[1].Matches[0].offset != 25 {
		t.Fatalf("second group = %+v", sink.groups[1])
	}
}
