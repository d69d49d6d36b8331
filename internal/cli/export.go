package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depmap/pkg/config"
	"github.com/matzehuels/depmap/pkg/depgraph"
	"github.com/matzehuels/depmap/pkg/errors"
	"github.com/matzehuels/depmap/pkg/sink/neo4j"
)

// exportCommand groups commands that push the graph to external stores.
func (c *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the package graph to external stores",
	}
	cmd.AddCommand(c.exportNeo4jCommand())
	return cmd
}

type neo4jFlags struct {
	uri        string
	user       string
	password   string
	clean      bool
	thirdParty bool
	stdlib     bool
	batchSize  int
}

// exportNeo4jCommand creates the `export neo4j` command.
func (c *CLI) exportNeo4jCommand() *cobra.Command {
	var flags neo4jFlags

	cmd := &cobra.Command{
		Use:   "neo4j",
		Short: "Load the package graph into Neo4j",
		Long: `Load the package graph into Neo4j as DepPackage nodes joined by
DEPENDS_ON relationships. Both carry a class property (internal, stdlib or
third-party). Connection settings default to the [neo4j] table of the config
file; the password is required.`,
		Example: `  NEO4J_PASSWORD=secret depmap export neo4j --password "$NEO4J_PASSWORD" --third-party --clean`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExportNeo4j(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.uri, "uri", "", "Neo4j bolt URI (default from config, bolt://localhost:7687)")
	cmd.Flags().StringVar(&flags.user, "user", "", "Neo4j username (default from config, neo4j)")
	cmd.Flags().StringVar(&flags.password, "password", "", "Neo4j password")
	cmd.Flags().BoolVar(&flags.clean, "clean", false, "delete previously loaded packages first")
	cmd.Flags().BoolVar(&flags.thirdParty, "third-party", false, "include third-party packages")
	cmd.Flags().BoolVar(&flags.stdlib, "stdlib", false, "include standard library packages")
	cmd.Flags().IntVar(&flags.batchSize, "batch-size", neo4j.DefaultBatchSize, "rows per UNWIND statement")

	return cmd
}

// applyNeo4jFlags overrides cfg's connection settings with flags that were set.
func applyNeo4jFlags(cmd *cobra.Command, cfg *config.Config, flags neo4jFlags) error {
	if cmd.Flags().Changed("uri") {
		cfg.Neo4j.URI = flags.uri
	}
	if cmd.Flags().Changed("user") {
		cfg.Neo4j.User = flags.user
	}
	if cmd.Flags().Changed("password") {
		cfg.Neo4j.Password = flags.password
	}
	if cfg.Neo4j.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "neo4j uri is required")
	}
	if cfg.Neo4j.Password == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "neo4j password is required (--password or [neo4j] password in %s)", config.FileName)
	}
	return nil
}

func (c *CLI) runExportNeo4j(cmd *cobra.Command, flags neo4jFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyNeo4jFlags(cmd, cfg, flags); err != nil {
		return err
	}

	opts, closeInput, err := c.pipelineOptions(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeInput()

	stop := c.startSpinner(ctx, opts, "Running go list...")
	g, err := c.newRunner(ctx).Graph(ctx, opts)
	stop()
	if err != nil {
		return err
	}
	d := g.ToDAG(depgraph.DAGOptions{ThirdParty: flags.thirdParty, StdLib: flags.stdlib})

	prog := newProgress(logger)
	loader, err := neo4j.Connect(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, logger)
	if err != nil {
		return err
	}
	defer loader.Close(ctx)
	loader.BatchSize = flags.batchSize

	if err := loader.Load(ctx, d, neo4j.LoadOptions{Clean: flags.clean}); err != nil {
		return err
	}
	prog.done("Loaded package graph into Neo4j")

	printSuccess("Exported %d packages and %d dependencies", d.NodeCount(), d.EdgeCount())
	printKeyValue("Neo4j", cfg.Neo4j.URI)
	printNextStep("Explore with", "MATCH (p:DepPackage)-[r:DEPENDS_ON]->(q) RETURN p, r, q LIMIT 100")
	return nil
}
