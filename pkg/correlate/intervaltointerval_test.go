package correlate

import "testing"

// Allen "Meets": an anchor ending exactly where a candidate starts.
func TestMatchIntervalToInterval_Meets(t *testing.T) {
	anchors := intervals([2]int{10, 20})
	candidates := intervals([2]int{20, 30})

	sink := &recordingPairSink[testInterval, testInterval]{}
	if err := MatchIntervalToInterval(anchors, candidates, DefaultPolicy(), sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(sink.matches))
	}
	m := sink.matches[0]
	if m.Type != Interval || m.Relation == nil || *m.Relation != Meets {
		t.Fatalf("match = %+v, want Interval/Meets", m)
	}
}

// A relation mask should only emit matches for the relations it allows.
func TestMatchIntervalToInterval_FilteredRelations(t *testing.T) {
	anchors := intervals([2]int{10, 30})
	candidates := intervals([2]int{10, 30}, [2]int{15, 25}, [2]int{0, 40})

	policy := DefaultPolicy()
	policy.AllowedRelations = NewAllowedRelations(Equal, During, Contains)

	sink := &recordingPairSink[testInterval, testInterval]{}
	if err := MatchIntervalToInterval(anchors, candidates, policy, sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(sink.matches))
	}
	want := []TemporalRelation{Equal, Contains, During}
	for i, m := range sink.matches {
		if m.Relation == nil || *m.Relation != want[i] {
			t.Fatalf("match %d relation = %v, want %v", i, m.Relation, want[i])
		}
	}
	if len(sink.misses) != 0 {
		t.Fatalf("got %d misses, want 0", len(sink.misses))
	}
}

// disjointRelationsAllowed fast path must not change which pairs are
// emitted when Before/After are excluded from the mask.
func TestMatchIntervalToInterval_DisjointFastPathMatchesFullClassification(t *testing.T) {
	anchors := intervals([2]int{10, 20})
	candidates := intervals([2]int{0, 5}, [2]int{20, 30}, [2]int{12, 18}, [2]int{25, 40})

	restricted := DefaultPolicy()
	restricted.AllowedRelations = RelationAny.Without(NewAllowedRelations(Before, After))

	unrestricted := DefaultPolicy() // ANY, including Before/After

	restrictedSink := &recordingPairSink[testInterval, testInterval]{}
	unrestrictedSink := &recordingPairSink[testInterval, testInterval]{}

	if err := MatchIntervalToInterval(anchors, candidates, restricted, restrictedSink); err != nil {
		t.Fatalf("restricted: unexpected error: %v", err)
	}
	if err := MatchIntervalToInterval(anchors, candidates, unrestricted, unrestrictedSink); err != nil {
		t.Fatalf("unrestricted: unexpected error: %v", err)
	}

	// unrestricted should contain everything restricted matched, plus the
	// Before/After pairs restricted excluded.
	if len(unrestrictedSink.matches) != len(candidates) {
		t.Fatalf("unrestricted matches = %d, want %d (every candidate has some relation to the anchor)", len(unrestrictedSink.matches), len(candidates))
	}

	restrictedRelations := map[TemporalRelation]bool{}
	for _, m := range restrictedSink.matches {
		restrictedRelations[*m.Relation] = true
	}
	if restrictedRelations[Before] || restrictedRelations[After] {
		t.Fatalf("restricted mask leaked Before/After: %+v", restrictedSink.matches)
	}
}

func TestMatchIntervalToInterval_DegenerateBothSidesIsPointExact(t *testing.T) {
	anchors := intervals([2]int{10, 10})
	candidates := intervals([2]int{10, 10})

	sink := &recordingPairSink[testInterval, testInterval]{}
	if err := MatchIntervalToInterval(anchors, candidates, DefaultPolicy(), sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.matches) != 1 || sink.matches[0].Type != PointExact || sink.matches[0].Relation != nil {
		t.Fatalf("match = %+v, want a relation-free PointExact", sink.matches)
	}
}
