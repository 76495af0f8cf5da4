// Package hcl decodes correlation job specifications from HCL, the
// operator-facing configuration format for tempocorrelate jobs.
package hcl

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/leowmjw/tempocorrelate/pkg/temporal"
)

// jobBlock mirrors one `job "id" { ... }` block.
type jobBlock struct {
	JobID            string           `hcl:"id,label"`
	Anchor           entityBlock      `hcl:"anchor,block"`
	Candidate        entityBlock      `hcl:"candidate,block"`
	Tolerance        *toleranceBlock  `hcl:"tolerance,block"`
	AllowedRelations []string         `hcl:"allowed_relations,optional"`
	InputOrdering    *string          `hcl:"input_ordering,optional"`
	TimeRange        *timeRangeBlock  `hcl:"time_range,block"`
}

type entityBlock struct {
	Source string `hcl:"source"`
	Kind   string `hcl:"kind"`
}

type toleranceBlock struct {
	AnchorBefore    *string `hcl:"anchor_before,optional"`
	AnchorAfter     *string `hcl:"anchor_after,optional"`
	CandidateBefore *string `hcl:"candidate_before,optional"`
	CandidateAfter  *string `hcl:"candidate_after,optional"`
}

type timeRangeBlock struct {
	Start string `hcl:"start"`
	End   string `hcl:"end"`
}

// jobFile is the root of a job spec file: one or more `job` blocks, so a
// single file (or a merged directory) can declare a whole pipeline.
type jobFile struct {
	Jobs []jobBlock `hcl:"job,block"`
}

// ParseJobSpecs decodes every job block in content. filename's extension
// selects the HCL native syntax or HCL's JSON syntax; an empty filename
// defaults to native HCL.
func ParseJobSpecs(content string, filename string) ([]*temporal.JobSpec, error) {
	if filename == "" {
		filename = "job.hcl"
	}

	parser := hclparse.NewParser()
	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.HasSuffix(filename, ".json") {
		file, diags = parser.ParseJSON([]byte(content), filename)
	} else {
		file, diags = parser.ParseHCL([]byte(content), filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("hcl: parse %q: %s", filename, diags.Error())
	}

	return decodeJobFile(file)
}

func decodeJobFile(file *hcl.File) ([]*temporal.JobSpec, error) {
	var decoded jobFile
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return nil, fmt.Errorf("hcl: decode body: %s", diags.Error())
	}

	specs := make([]*temporal.JobSpec, 0, len(decoded.Jobs))
	for _, job := range decoded.Jobs {
		spec, err := convertJobBlock(job)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", job.JobID, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseJobSpec decodes content, requiring exactly one job block.
func ParseJobSpec(content string, filename string) (*temporal.JobSpec, error) {
	specs, err := ParseJobSpecs(content, filename)
	if err != nil {
		return nil, err
	}
	if len(specs) != 1 {
		return nil, fmt.Errorf("hcl: expected exactly one job block, found %d", len(specs))
	}
	return specs[0], nil
}

func convertJobBlock(job jobBlock) (*temporal.JobSpec, error) {
	spec := &temporal.JobSpec{
		JobID:            job.JobID,
		AllowedRelations: job.AllowedRelations,
	}
	spec.Anchor.Source = job.Anchor.Source
	spec.Anchor.Kind = temporal.EntityKind(job.Anchor.Kind)
	spec.Candidate.Source = job.Candidate.Source
	spec.Candidate.Kind = temporal.EntityKind(job.Candidate.Kind)

	if job.InputOrdering != nil {
		spec.InputOrdering = *job.InputOrdering
	}

	if job.Tolerance != nil {
		anchorBefore, err := parseOptionalDuration(job.Tolerance.AnchorBefore)
		if err != nil {
			return nil, fmt.Errorf("tolerance.anchor_before: %w", err)
		}
		anchorAfter, err := parseOptionalDuration(job.Tolerance.AnchorAfter)
		if err != nil {
			return nil, fmt.Errorf("tolerance.anchor_after: %w", err)
		}
		candidateBefore, err := parseOptionalDuration(job.Tolerance.CandidateBefore)
		if err != nil {
			return nil, fmt.Errorf("tolerance.candidate_before: %w", err)
		}
		candidateAfter, err := parseOptionalDuration(job.Tolerance.CandidateAfter)
		if err != nil {
			return nil, fmt.Errorf("tolerance.candidate_after: %w", err)
		}
		spec.AnchorTolerance = temporal.ToleranceSpec{Before: anchorBefore, After: anchorAfter}
		spec.CandidateTolerance = temporal.ToleranceSpec{Before: candidateBefore, After: candidateAfter}
	}

	if job.TimeRange != nil {
		start, err := time.Parse(time.RFC3339, job.TimeRange.Start)
		if err != nil {
			return nil, fmt.Errorf("time_range.start: %w", err)
		}
		end, err := time.Parse(time.RFC3339, job.TimeRange.End)
		if err != nil {
			return nil, fmt.Errorf("time_range.end: %w", err)
		}
		spec.TimeRange = &temporal.TimeRange{Start: start, End: end}
	}

	return spec, nil
}

func parseOptionalDuration(s *string) (time.Duration, error) {
	if s == nil {
		return 0, nil
	}
	return time.ParseDuration(*s)
}

// IsHCL reports whether content parses as syntactically valid HCL.
func IsHCL(content []byte) bool {
	_, err := hclsyntax.ParseConfig(content, "", hcl.Pos{Line: 1, Column: 1})
	return err == nil
}
