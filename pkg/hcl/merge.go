package hcl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/leowmjw/tempocorrelate/pkg/temporal"
)

// MergeHCLFiles combines multiple HCL files into a single HCL file body,
// mimicking how Terraform loads every .tf file in a directory as one
// configuration.
func MergeHCLFiles(filePaths []string) (*bytes.Buffer, error) {
	var merged bytes.Buffer
	for _, path := range filePaths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("hcl: read %q: %w", path, err)
		}
		merged.Write(content)
		merged.WriteString("\n")
	}
	return &merged, nil
}

func findHCLFiles(dirPath string) ([]string, error) {
	var files []string
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && IsHCLBasedOnExtension(info.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hcl: walk %q: %w", dirPath, err)
	}
	return files, nil
}

// ParseJobSpecsFromDirectory merges every .hcl/.tf file in dirPath and
// decodes the job blocks they declare.
func ParseJobSpecsFromDirectory(dirPath string) ([]*temporal.JobSpec, error) {
	files, err := findHCLFiles(dirPath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("hcl: no HCL files found in %q", dirPath)
	}

	merged, err := MergeHCLFiles(files)
	if err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(merged.Bytes(), filepath.Join(dirPath, "merged.hcl"))
	if diags.HasErrors() {
		return nil, fmt.Errorf("hcl: parse merged content: %s", diags.Error())
	}

	return decodeJobFile(file)
}

// ParseJobSpecFromPath loads a single job spec from either a file or a
// directory of HCL fragments.
func ParseJobSpecFromPath(path string) (*temporal.JobSpec, error) {
	specs, err := ParseJobSpecsFromPath(path)
	if err != nil {
		return nil, err
	}
	if len(specs) != 1 {
		return nil, fmt.Errorf("hcl: expected exactly one job block at %q, found %d", path, len(specs))
	}
	return specs[0], nil
}

// ParseJobSpecsFromPath loads every job spec declared at path, which may be
// a single HCL file or a directory of them.
func ParseJobSpecsFromPath(path string) ([]*temporal.JobSpec, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("hcl: stat %q: %w", path, err)
	}

	if info.IsDir() {
		return ParseJobSpecsFromDirectory(path)
	}

	if !IsHCLBasedOnExtension(path) && !strings.HasSuffix(path, ".json") {
		return nil, fmt.Errorf("hcl: %q has neither an HCL nor a JSON extension", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hcl: read %q: %w", path, err)
	}

	return ParseJobSpecs(string(content), path)
}
