package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depmap/pkg/errors"
	"github.com/matzehuels/depmap/pkg/pipeline"
)

type generateFlags struct {
	output string
	format string
	cap    int
	table  bool
	check  bool
}

// generateCommand creates the gen command that writes the dependency report.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:     "gen",
		Aliases: []string{"generate"},
		Short:   "Generate the dependency map",
		Long: `Generate a markdown dependency map for every package in the module.

Each package section lists its internal imports, up to --cap third-party
imports, and the number of standard library packages it depends on.`,
		Example: `  # Print the map for the module in the current directory
  depmap gen

  # Write it to a file and show per-package counts
  depmap gen -o docs/DEPENDENCIES.md --table

  # Fail in CI when the committed map is stale
  depmap gen -o docs/DEPENDENCIES.md --check

  # Use captured go list output
  go list -deps -json ./... | depmap gen --input - -m example.com/mod`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout, or the config's output)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "report format: markdown or json")
	cmd.Flags().IntVar(&flags.cap, "cap", 0, fmt.Sprintf("third-party entries listed per package, -1 for no limit (default %d)", pipeline.DefaultThirdPartyCap))
	cmd.Flags().BoolVar(&flags.table, "table", false, "print per-package dependency counts")
	cmd.Flags().BoolVar(&flags.check, "check", false, "compare with the existing output file instead of writing it")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, flags generateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = flags.output
	}
	if cmd.Flags().Changed("format") {
		if err := pipeline.ValidateFormat(flags.format); err != nil {
			return err
		}
		cfg.Format = flags.format
	}
	if cmd.Flags().Changed("cap") {
		cfg.ThirdPartyCap = flags.cap
	}

	prog := newProgress(logger)
	result, err := c.execute(cmd, cfg)
	if err != nil {
		return err
	}

	if flags.check {
		return checkOutput(cfg.Output, result)
	}

	wrote, err := writeOutput(cmd, cfg.Output, result.Output)
	if err != nil {
		return err
	}
	prog.done("Generated dependency map")

	if wrote {
		printSuccess("Wrote dependency map for %s", StyleHighlight.Render(result.Module))
		printFile(cfg.Output)
		printStats(result.Stats.Summary)
	}
	if flags.table {
		fmt.Fprintln(uiOut, renderSectionTable(result.Report))
	}
	if result.Stats.Summary.Truncated > 0 {
		printWarning("%d packages have truncated third-party lists (see --cap)", result.Stats.Summary.Truncated)
	}
	return nil
}

// checkOutput compares the generated report with the file at path.
func checkOutput(path string, result *pipeline.Result) error {
	if path == "" || path == "-" {
		return errors.New(errors.ErrCodeInvalidInput, "--check needs an output file (-o or config output)")
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s does not exist", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	if !bytes.Equal(existing, result.Output) {
		printError("%s is out of date", path)
		printNextStep("Regenerate with", "depmap gen -o "+path)
		return errors.New(errors.ErrCodeInvalidInput, "%s is out of date", path)
	}
	printSuccess("%s is up to date", path)
	return nil
}
