package correlate

import "time"

// TemporalRelation is one of Allen's thirteen basic interval relations.
type TemporalRelation int

const (
	Before TemporalRelation = iota
	Meets
	Overlaps
	FinishedBy
	Contains
	StartedBy
	Equal
	Starts
	During
	Finishes
	OverlappedBy
	MetBy
	After

	numRelations = 13
)

var relationNames = [numRelations]string{
	Before:       "Before",
	Meets:        "Meets",
	Overlaps:     "Overlaps",
	FinishedBy:   "FinishedBy",
	Contains:     "Contains",
	StartedBy:    "StartedBy",
	Equal:        "Equal",
	Starts:       "Starts",
	During:       "During",
	Finishes:     "Finishes",
	OverlappedBy: "OverlappedBy",
	MetBy:        "MetBy",
	After:        "After",
}

func (r TemporalRelation) String() string {
	if r < 0 || int(r) >= numRelations {
		return "Unknown"
	}
	return relationNames[r]
}

// inverseTable maps each relation to its Allen converse: classify(A, B) ==
// classify(B, A).Inverse().
var inverseTable = [numRelations]TemporalRelation{
	Before:       After,
	Meets:        MetBy,
	Overlaps:     OverlappedBy,
	FinishedBy:   Finishes,
	Contains:     During,
	StartedBy:    Starts,
	Equal:        Equal,
	Starts:       StartedBy,
	During:       Contains,
	Finishes:     FinishedBy,
	OverlappedBy: Overlaps,
	MetBy:        Meets,
	After:        Before,
}

// Inverse returns the converse relation: if Classify(A, B) == r then
// Classify(B, A) == r.Inverse().
func (r TemporalRelation) Inverse() TemporalRelation {
	return inverseTable[r]
}

// Classify is the total function (interval, interval) -> relation. Both
// intervals must already satisfy start <= end; the engine validates that
// at entry, not here. Decision order matches the tie-breaking rules: a
// zero-gap touch is Meets/MetBy, never Before/After.
func Classify(aStart, aEnd, bStart, bEnd time.Time) TemporalRelation {
	switch {
	case aStart.Equal(bStart) && aEnd.Equal(bEnd):
		return Equal
	case aEnd.Equal(bStart):
		return Meets
	case aStart.Equal(bEnd):
		return MetBy
	case aEnd.Before(bStart):
		return Before
	case aStart.After(bEnd):
		return After
	case aStart.Equal(bStart) && aEnd.Before(bEnd):
		return Starts
	case aStart.Equal(bStart) && aEnd.After(bEnd):
		return StartedBy
	case aEnd.Equal(bEnd) && aStart.After(bStart):
		return Finishes
	case aEnd.Equal(bEnd) && aStart.Before(bStart):
		return FinishedBy
	case aStart.After(bStart) && aEnd.Before(bEnd):
		return During
	case aStart.Before(bStart) && aEnd.After(bEnd):
		return Contains
	case aStart.Before(bStart) && aEnd.Before(bEnd):
		return Overlaps
	case aStart.After(bStart) && aEnd.After(bEnd):
		return OverlappedBy
	default:
		// Every well-formed pair of intervals falls into one of the
		// cases above; reaching here means a start > end invariant was
		// violated upstream without being caught.
		panic("correlate: allen classification is not total for the given bounds")
	}
}
