package hcl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leowmjw/tempocorrelate/pkg/temporal"
)

// AssertJobSpecsEqual compares two JobSpec values, tolerating timezone
// differences in TimeRange the way the HCL decode path naturally produces
// them.
func AssertJobSpecsEqual(t *testing.T, expected, actual *temporal.JobSpec) {
	t.Helper()

	assert.Equal(t, expected.JobID, actual.JobID)
	assert.Equal(t, expected.Anchor, actual.Anchor)
	assert.Equal(t, expected.Candidate, actual.Candidate)
	assert.Equal(t, expected.AnchorTolerance, actual.AnchorTolerance)
	assert.Equal(t, expected.CandidateTolerance, actual.CandidateTolerance)
	assert.Equal(t, expected.AllowedRelations, actual.AllowedRelations)
	assert.Equal(t, expected.InputOrdering, actual.InputOrdering)

	if expected.TimeRange != nil && actual.TimeRange != nil {
		assert.Equal(t, expected.TimeRange.Start.UTC().Format(time.RFC3339), actual.TimeRange.Start.UTC().Format(time.RFC3339))
		assert.Equal(t, expected.TimeRange.End.UTC().Format(time.RFC3339), actual.TimeRange.End.UTC().Format(time.RFC3339))
	} else {
		assert.Equal(t, expected.TimeRange == nil, actual.TimeRange == nil)
	}
}
