package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depmap/pkg/depgraph"
	"github.com/matzehuels/depmap/pkg/errors"
	"github.com/matzehuels/depmap/pkg/golist"
	"github.com/matzehuels/depmap/pkg/observability"
	"github.com/matzehuels/depmap/pkg/report"
)

// Runner executes the pipeline.
//
// The Runner holds no per-run state. Multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	GoList golist.Runner
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, a discarding logger is used.
func NewRunner(gl golist.Runner, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{GoList: gl, Logger: logger}
}

// Load returns the raw `go list -deps -json` output for opts, reading
// opts.Input when set and running go list in opts.Dir otherwise.
func (r *Runner) Load(ctx context.Context, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Input != nil {
		buf, err := io.ReadAll(opts.Input)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
		}
		return buf, nil
	}

	gl := r.GoList
	gl.Dir = opts.Dir
	r.Logger.Debug("running go list", "dir", gl.Dir, "args", gl.Args(opts.Patterns...))
	return gl.Run(ctx, opts.Patterns...)
}

// Execute runs load → decode → build → render.
// Each stage is reported to the registered observability hooks.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	start := time.Now()
	hooks.OnStageStart(ctx, observability.StageLoad)
	buf, err := r.Load(ctx, opts)
	result.Stats.LoadTime = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageLoad, len(buf), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Stats.InputBytes = len(buf)
	r.Logger.Debug("loaded package metadata", "bytes", len(buf), "duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Decode
	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageDecode)
	records, err := decode(buf)
	result.Stats.DecodeTime = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageDecode, len(records), result.Stats.DecodeTime, err)
	if err != nil {
		return nil, err
	}
	result.Records = records
	result.Stats.Records = len(records)
	r.Logger.Info("decoded records", "count", len(records), "duration", result.Stats.DecodeTime)

	module, err := r.resolveModule(opts, records)
	if err != nil {
		return nil, err
	}
	result.Module = module

	// Stage 3: Build
	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageBuild)
	g := depgraph.Build(records, module)
	result.Graph = g
	result.Stats.Packages = g.NodeCount()
	result.Stats.BuildTime = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageBuild, g.NodeCount(), result.Stats.BuildTime, nil)
	if g.NodeCount() == 0 {
		r.Logger.Warn("no packages in scope", "module", module)
	}
	r.Logger.Info("built graph", "module", module, "packages", g.NodeCount(), "duration", result.Stats.BuildTime)

	// Stage 4: Render
	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageRender)
	output, err := r.render(g, opts, result)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageRender, len(output), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Output = output
	r.Logger.Info("rendered report",
		"format", opts.Format,
		"sections", len(result.Report.Sections),
		"truncated", result.Stats.Summary.Truncated,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// render fills result.Report and result.Stats.Summary and returns the
// report encoded in opts.Format.
func (r *Runner) render(g *depgraph.Graph, opts Options, result *Result) ([]byte, error) {
	rep := report.Build(g, opts.ThirdPartyCap)
	result.Report = rep
	result.Stats.Summary = report.Summarize(g, opts.ThirdPartyCap)
	if opts.Format == FormatJSON {
		data, err := rep.JSON()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json report")
		}
		return append(data, '\n'), nil
	}
	return []byte(rep.Markdown()), nil
}

// Graph runs load → decode → build without rendering.
func (r *Runner) Graph(ctx context.Context, opts Options) (*depgraph.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	buf, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := decode(buf)
	if err != nil {
		return nil, err
	}
	module, err := r.resolveModule(opts, records)
	if err != nil {
		return nil, err
	}
	return depgraph.Build(records, module), nil
}

// resolveModule picks the module path: explicit option, then go.mod in
// opts.Dir, then the first main-module record.
func (r *Runner) resolveModule(opts Options, records []golist.PackageRecord) (string, error) {
	if opts.Module != "" {
		return opts.Module, nil
	}
	if opts.Input == nil {
		module, err := golist.ModulePath(opts.Dir)
		if err == nil {
			r.Logger.Debug("detected module from go.mod", "module", module)
			return module, nil
		}
		r.Logger.Debug("go.mod lookup failed", "dir", opts.Dir, "error", err)
	}
	if module := mainModule(records); module != "" {
		r.Logger.Debug("detected module from records", "module", module)
		return module, nil
	}
	return "", errors.New(errors.ErrCodeInvalidModule, "module path not set and could not be detected in %s", opts.Dir)
}

func mainModule(records []golist.PackageRecord) string {
	for _, rec := range records {
		if rec.Module != nil && rec.Module.Main && rec.Module.Path != "" {
			return rec.Module.Path
		}
	}
	return ""
}

func decode(buf []byte) ([]golist.PackageRecord, error) {
	records, err := golist.Decode(buf)
	if err != nil {
		var de *golist.DecodeError
		if stderrors.As(err, &de) {
			return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode go list output at offset %d", de.Offset)
		}
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode go list output")
	}
	return records, nil
}
