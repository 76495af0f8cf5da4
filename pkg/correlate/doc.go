// Package correlate implements a temporal correlation engine: given an
// anchor sequence and a candidate sequence of points or intervals, it
// reports which candidates stand in a configured Allen-relation to each
// anchor under a tolerance-expanded, relation-filtered match policy.
//
// The package is split along the six components of the design: temporal
// primitives (primitives.go), tolerance expansion (tolerance.go), the
// Allen classifier (relation.go), the relation filter (filter.go), the
// matching strategies (pointtopoint.go, pointtointerval.go,
// intervaltopoint.go, intervaltointerval.go), and the output sinks
// (sink.go, emitter.go).
//
// The engine holds no state between calls and borrows its inputs read-only
// for the call's duration. The inner loop of every public Match* function
// allocates nothing for PointExact and PointInInterval matches; each
// Interval match allocates one heap copy of its TemporalRelation, which
// MatchPair.Relation points to.
package correlate
