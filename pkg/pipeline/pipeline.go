// Package pipeline runs the depmap pipeline: load → decode → build → render.
//
// The CLI, the HTTP server and the Neo4j exporter all go through this package
// so that module detection, defaults and logging behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(golist.Runner{Dir: "."}, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Dir: "."})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
//
// # Module Detection
//
// When [Options.Module] is empty the runner reads the module path from go.mod
// in [Options.Dir]. If that fails and the input is a captured stream, the
// path of the first record whose module is marked Main is used instead.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/depmap/pkg/depgraph"
	"github.com/matzehuels/depmap/pkg/errors"
	"github.com/matzehuels/depmap/pkg/golist"
	"github.com/matzehuels/depmap/pkg/report"
)

// DefaultThirdPartyCap is the third-party listing cap used when none is set.
const DefaultThirdPartyCap = report.DefaultThirdPartyCap

// Format constants for report output.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ValidFormats is the set of supported report formats.
var ValidFormats = map[string]bool{
	FormatMarkdown: true,
	FormatJSON:     true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: markdown, json)", format)
	}
	return nil
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Module is the module path that scopes the graph. Detected when empty.
	Module string `json:"module,omitempty"`

	// ThirdPartyCap limits third-party entries per report section.
	// Zero means DefaultThirdPartyCap; a negative value disables the cap.
	ThirdPartyCap int `json:"third_party_cap,omitempty"`

	// Dir is the module directory go list runs in.
	Dir string `json:"dir,omitempty"`

	// Patterns are the go list package patterns. Defaults to ./...
	Patterns []string `json:"patterns,omitempty"`

	// Format selects the report output format. Defaults to markdown.
	Format string `json:"format,omitempty"`

	// Input, when set, supplies captured `go list -deps -json` output
	// instead of running go list.
	Input io.Reader `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Module = strings.TrimRight(strings.TrimSpace(o.Module), "/")
	if o.Module != "" {
		if err := errors.ValidateGoModulePath(o.Module); err != nil {
			return err
		}
	}
	if o.ThirdPartyCap == 0 {
		o.ThirdPartyCap = DefaultThirdPartyCap
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	if len(o.Patterns) == 0 {
		o.Patterns = slices.Clone(golist.DefaultPatterns)
	}
	if o.Format == "" {
		o.Format = FormatMarkdown
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Module is the module path the graph was scoped to.
	Module string

	// Records are the decoded go list records.
	Records []golist.PackageRecord

	// Graph is the classified dependency graph.
	Graph *depgraph.Graph

	// Report is the render-ready report.
	Report *report.Report

	// Output is the rendered report in the requested format.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputBytes int
	Records    int
	Packages   int
	Summary    report.Summary
	LoadTime   time.Duration
	DecodeTime time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}
