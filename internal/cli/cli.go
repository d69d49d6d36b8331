package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depmap/pkg/buildinfo"
	"github.com/matzehuels/depmap/pkg/config"
	"github.com/matzehuels/depmap/pkg/errors"
	"github.com/matzehuels/depmap/pkg/golist"
	"github.com/matzehuels/depmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "depmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flag values.
	configPath string
	module     string
	dir        string
	input      string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "depmap maps the package dependencies of a Go module",
		Long: `depmap runs go list over a Go module and writes a dependency map: for every
package in the module it lists internal imports, third-party imports and the
number of standard library packages it pulls in.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	pf.StringVarP(&c.module, "module", "m", "", "module path to scope to (default: from go.mod)")
	pf.StringVar(&c.dir, "dir", ".", "module directory to run go list in")
	pf.StringVar(&c.input, "input", "", "read captured `go list -deps -json` output from file (- for stdin)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings
// =============================================================================

// loadConfig reads --config, or the nearest project file above --dir, and
// applies the persistent flags on top.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	logger := loggerFromContext(cmd.Context())

	path := c.configPath
	if path == "" {
		path = config.Find(c.dir)
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("loaded config", "path", path)
	}

	if cmd.Flags().Changed("module") {
		cfg.Module = c.module
	}
	return cfg, nil
}

// pipelineOptions builds pipeline options from cfg and the persistent flags.
// The returned close function releases the input file, if any.
func (c *CLI) pipelineOptions(cmd *cobra.Command, cfg *config.Config) (pipeline.Options, func(), error) {
	opts := pipeline.Options{
		Module:        cfg.Module,
		ThirdPartyCap: cfg.ThirdPartyCap,
		Dir:           c.dir,
		Patterns:      cfg.Patterns,
		Format:        cfg.Format,
	}

	closeFn := func() {}
	switch c.input {
	case "":
	case "-":
		opts.Input = cmd.InOrStdin()
	default:
		f, err := os.Open(c.input)
		if err != nil {
			return opts, closeFn, errors.Wrap(errors.ErrCodeFileNotFound, err, "open input %s", c.input)
		}
		opts.Input = f
		closeFn = func() { f.Close() }
	}
	return opts, closeFn, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) *pipeline.Runner {
	return pipeline.NewRunner(golist.Runner{}, loggerFromContext(ctx))
}

// execute runs the pipeline with a spinner while go list is running.
func (c *CLI) execute(cmd *cobra.Command, cfg *config.Config) (*pipeline.Result, error) {
	ctx := cmd.Context()
	opts, closeInput, err := c.pipelineOptions(cmd, cfg)
	if err != nil {
		return nil, err
	}
	defer closeInput()

	stop := c.startSpinner(ctx, opts, "Running go list...")
	result, err := c.newRunner(ctx).Execute(ctx, opts)
	stop()
	return result, err
}

// startSpinner shows a spinner unless input is captured or debug logging is on.
func (c *CLI) startSpinner(ctx context.Context, opts pipeline.Options, msg string) func() {
	if opts.Input != nil || loggerFromContext(ctx).GetLevel() <= log.DebugLevel {
		return func() {}
	}
	s := newSpinner(ctx, msg)
	s.Start()
	return s.Stop
}

// =============================================================================
// Output
// =============================================================================

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-". It reports whether a file was written.
func writeOutput(cmd *cobra.Command, path string, data []byte) (bool, error) {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return false, err
	}
	if err := errors.ValidatePath(path); err != nil {
		return false, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return true, nil
}
