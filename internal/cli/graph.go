package cli

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depmap/pkg/dag"
	"github.com/matzehuels/depmap/pkg/dag/transform"
	"github.com/matzehuels/depmap/pkg/depgraph"
	"github.com/matzehuels/depmap/pkg/errors"
	graphio "github.com/matzehuels/depmap/pkg/io"
	"github.com/matzehuels/depmap/pkg/render"
	"github.com/matzehuels/depmap/pkg/render/nodelink"
)

// Graph output formats.
const (
	graphFormatDOT  = "dot"
	graphFormatSVG  = "svg"
	graphFormatPDF  = "pdf"
	graphFormatPNG  = "png"
	graphFormatJSON = "json"
)

var validGraphFormats = map[string]bool{
	graphFormatDOT:  true,
	graphFormatSVG:  true,
	graphFormatPDF:  true,
	graphFormatPNG:  true,
	graphFormatJSON: true,
}

type graphFlags struct {
	output     string
	format     string
	thirdParty bool
	stdlib     bool
	reduce     bool
	detailed   bool
	rankDir    string
	scale      float64
	fromJSON   string
}

// graphCommand creates the graph command that exports the package graph.
func (c *CLI) graphCommand() *cobra.Command {
	var flags graphFlags

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the package graph as DOT, SVG, PDF, PNG or JSON",
		Long: `Export the module's package graph.

go list reports every package's full dependency closure, so by default edges
implied by a longer path are removed (--reduce). Third-party and stdlib
packages are left out unless requested.

--from-json re-renders a graph saved earlier with --format json instead of
running go list; the package filters of the saved graph are kept.`,
		Example: `  # Internal packages only, as SVG
  depmap graph -f svg -o deps.svg

  # Include third-party packages in DOT
  depmap graph --third-party > deps.dot

  # Save once, render later without go list
  depmap graph -f json -o deps.json
  depmap graph --from-json deps.json -f svg -o deps.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", graphFormatDOT, "output format: dot, svg, pdf, png, json")
	cmd.Flags().BoolVar(&flags.thirdParty, "third-party", false, "include third-party packages")
	cmd.Flags().BoolVar(&flags.stdlib, "stdlib", false, "include standard library packages")
	cmd.Flags().BoolVar(&flags.reduce, "reduce", true, "remove transitive edges")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "show class and import counts in node labels")
	cmd.Flags().StringVar(&flags.rankDir, "rankdir", "LR", "Graphviz rank direction (LR, TB, RL, BT)")
	cmd.Flags().Float64Var(&flags.scale, "scale", 2.0, "PNG scale factor")
	cmd.Flags().StringVar(&flags.fromJSON, "from-json", "", "render a graph previously exported with --format json")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, flags graphFlags) error {
	if !validGraphFormats[flags.format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, pdf, png, json)", flags.format)
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var d *dag.DAG
	var err error
	if flags.fromJSON != "" {
		d, err = readGraphFile(flags.fromJSON)
	} else {
		d, err = c.loadGraph(cmd, flags)
	}
	if err != nil {
		return err
	}

	if flags.reduce {
		removed := transform.TransitiveReduction(d)
		logger.Debug("removed transitive edges", "count", removed)
	}
	logger.Info("built package graph",
		"nodes", d.NodeCount(),
		"edges", d.EdgeCount(),
		"roots", len(d.Sources()),
		"leaves", len(d.Sinks()))

	data, err := encodeGraph(cmd, d, flags)
	if err != nil {
		return err
	}
	wrote, err := writeOutput(cmd, flags.output, data)
	if err != nil {
		return err
	}
	if wrote {
		printSuccess("Wrote %s graph (%d packages, %d edges)", flags.format, d.NodeCount(), d.EdgeCount())
		printFile(flags.output)
	}
	return nil
}

// loadGraph runs the pipeline and converts the result into a DAG with the
// requested external packages.
func (c *CLI) loadGraph(cmd *cobra.Command, flags graphFlags) (*dag.DAG, error) {
	ctx := cmd.Context()
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	opts, closeInput, err := c.pipelineOptions(cmd, cfg)
	if err != nil {
		return nil, err
	}
	defer closeInput()

	stop := c.startSpinner(ctx, opts, "Running go list...")
	g, err := c.newRunner(ctx).Graph(ctx, opts)
	stop()
	if err != nil {
		return nil, err
	}
	return g.ToDAG(depgraph.DAGOptions{ThirdParty: flags.thirdParty, StdLib: flags.stdlib}), nil
}

// readGraphFile loads a graph written by `depmap graph --format json`.
func readGraphFile(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open graph %s", path)
	}
	defer f.Close()

	d, err := graphio.ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "read graph %s", path)
	}
	return d, nil
}

func encodeGraph(cmd *cobra.Command, d *dag.DAG, flags graphFlags) ([]byte, error) {
	ctx := cmd.Context()
	if flags.format == graphFormatJSON {
		var buf bytes.Buffer
		if err := graphio.WriteJSON(d, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
		}
		return buf.Bytes(), nil
	}

	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: flags.detailed, RankDir: flags.rankDir})
	if flags.format == graphFormatDOT {
		return []byte(dot), nil
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	switch flags.format {
	case graphFormatPDF:
		return render.ToPDF(ctx, svg)
	case graphFormatPNG:
		return render.ToPNG(ctx, svg, flags.scale)
	}
	return svg, nil
}
