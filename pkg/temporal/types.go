package temporal

import "time"

const (
	// Workflow ID prefixes.
	CorrelationWorkflowIDPrefix = "correlate-"
	StreamWorkflowIDPrefix      = "correlate-stream-"

	// Signal names.
	AnchorEventSignalName    = "anchor-event-signal"
	CandidateEventSignalName = "candidate-event-signal"
	RunNowSignalName         = "run-now-signal"

	// Activity names.
	LoadEventsActivityName            = "load-events"
	AppendAnchorEventsActivityName    = "append-anchor-events"
	AppendCandidateEventsActivityName = "append-candidate-events"
	RunCorrelationActivityName        = "run-correlation"
	RecordJobRunActivityName          = "record-job-run"

	// DefaultContinueAsNewThreshold bounds a streaming workflow's history
	// before it rolls over via ContinueAsNew.
	DefaultContinueAsNewThreshold = 5000
)

// EntityKind selects which correlate.Match* family a JobSpec's anchor or
// candidate side belongs to.
type EntityKind string

const (
	PointKind    EntityKind = "point"
	IntervalKind EntityKind = "interval"
)

// TimeRange bounds an event load by timestamp.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ToleranceSpec is the wire form of correlate.TimeTolerance.
type ToleranceSpec struct {
	Before time.Duration `json:"before"`
	After  time.Duration `json:"after"`
}

// JobSpec is the durable, serializable description of one correlation run,
// decoded from HCL or JSON and passed as a workflow argument.
type JobSpec struct {
	JobID  string `json:"job_id"`
	Anchor struct {
		Source string     `json:"source"`
		Kind   EntityKind `json:"kind"`
	} `json:"anchor"`
	Candidate struct {
		Source string     `json:"source"`
		Kind   EntityKind `json:"kind"`
	} `json:"candidate"`
	AnchorTolerance    ToleranceSpec `json:"anchor_tolerance"`
	CandidateTolerance ToleranceSpec `json:"candidate_tolerance"`
	AllowedRelations   []string      `json:"allowed_relations,omitempty"`
	InputOrdering      string        `json:"input_ordering,omitempty"`
	TimeRange          *TimeRange    `json:"time_range,omitempty"`
}

// JobEvent is one anchor or candidate record, decoded from a source-agnostic
// JSON payload. Interval events carry a non-nil End; point events do not.
type JobEvent struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	End       *time.Time     `json:"end,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// MatchRecord is one emitted (anchor, candidate) pair, flattened for
// storage and JSON transport.
type MatchRecord struct {
	AnchorID    string `json:"anchor_id"`
	CandidateID string `json:"candidate_id"`
	MatchType   string `json:"match_type"`
	Relation    string `json:"relation,omitempty"`
}

// JobResult is the outcome of one correlation run.
type JobResult struct {
	JobID      string        `json:"job_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Matches    []MatchRecord `json:"matches"`
	MatchCount int           `json:"match_count"`
	MissCount  int           `json:"miss_count"`
}

// GenerateCorrelationWorkflowID builds a workflow ID for a batch
// correlation run.
func GenerateCorrelationWorkflowID(jobID string) string {
	return CorrelationWorkflowIDPrefix + jobID
}

// GenerateStreamWorkflowID builds a workflow ID for a streaming
// correlation run.
func GenerateStreamWorkflowID(jobID string) string {
	return StreamWorkflowIDPrefix + jobID
}
