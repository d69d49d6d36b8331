package neo4j

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	driver "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/matzehuels/depmap/pkg/dag"
	"github.com/matzehuels/depmap/pkg/errors"
	"github.com/matzehuels/depmap/pkg/observability"
)

// DefaultBatchSize is the number of rows sent per UNWIND statement.
const DefaultBatchSize = 1000

const (
	cleanQuery = "MATCH (n:DepPackage) DETACH DELETE n"

	indexQuery = "CREATE INDEX dep_pkg_path IF NOT EXISTS FOR (n:DepPackage) ON (n.import_path)"

	packagesQuery = `UNWIND $batch AS row
MERGE (n:DepPackage {import_path: row.path})
SET n.class = row.class, n.module = row.module`

	edgesQuery = `UNWIND $batch AS row
MATCH (a:DepPackage {import_path: row.from}), (b:DepPackage {import_path: row.to})
MERGE (a)-[r:DEPENDS_ON]->(b)
SET r.class = row.class`
)

// Executor runs one Cypher statement.
type Executor interface {
	Execute(ctx context.Context, cypher string, params map[string]any) error
}

// driverExecutor runs statements through a Neo4j driver.
type driverExecutor struct {
	driver driver.DriverWithContext
}

func (e driverExecutor) Execute(ctx context.Context, cypher string, params map[string]any) error {
	_, err := driver.ExecuteQuery(ctx, e.driver, cypher, params, driver.EagerResultTransformer)
	if err != nil && driver.IsRetryable(err) {
		return &RetryableError{Err: err}
	}
	return err
}

// Loader writes package graphs to Neo4j.
type Loader struct {
	exec   Executor
	closer func(context.Context) error

	BatchSize int

	// Attempts and RetryDelay control retries of transient failures.
	Attempts   int
	RetryDelay time.Duration

	Logger *log.Logger
}

// NewLoader returns a Loader that runs statements through exec.
func NewLoader(exec Executor, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Loader{
		exec:       exec,
		BatchSize:  DefaultBatchSize,
		Attempts:   DefaultAttempts,
		RetryDelay: DefaultRetryDelay,
		Logger:     logger,
	}
}

// Connect opens a driver for uri with basic auth and verifies connectivity.
func Connect(ctx context.Context, uri, user, password string, logger *log.Logger) (*Loader, error) {
	d, err := driver.NewDriverWithContext(uri, driver.BasicAuth(user, password, ""))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "create neo4j driver for %s", uri)
	}
	if err := d.VerifyConnectivity(ctx); err != nil {
		_ = d.Close(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to neo4j at %s", uri)
	}
	l := NewLoader(driverExecutor{driver: d}, logger)
	l.closer = d.Close
	return l, nil
}

// Close releases the underlying driver, if any.
func (l *Loader) Close(ctx context.Context) error {
	if l.closer == nil {
		return nil
	}
	return l.closer(ctx)
}

// Clean removes every DepPackage node and its relationships.
func (l *Loader) Clean(ctx context.Context) error {
	l.Logger.Info("cleaning existing package graph")
	return l.run(ctx, cleanQuery, nil)
}

// CreateIndexes ensures the import_path index exists.
func (l *Loader) CreateIndexes(ctx context.Context) error {
	l.Logger.Debug("creating indexes")
	return l.run(ctx, indexQuery, nil)
}

// LoadPackages upserts one DepPackage node per DAG node.
func (l *Loader) LoadPackages(ctx context.Context, g *dag.DAG) error {
	rows := PackageRows(g)
	l.Logger.Info("loading packages", "count", len(rows))
	return l.runBatches(ctx, packagesQuery, rows)
}

// LoadEdges upserts one DEPENDS_ON relationship per DAG edge.
// Packages must be loaded first.
func (l *Loader) LoadEdges(ctx context.Context, g *dag.DAG) error {
	rows := EdgeRows(g)
	l.Logger.Info("loading dependencies", "count", len(rows))
	return l.runBatches(ctx, edgesQuery, rows)
}

// LoadOptions controls [Loader.Load].
type LoadOptions struct {
	// Clean deletes previously loaded packages first.
	Clean bool
}

// Load runs Clean (optionally), CreateIndexes, LoadPackages and LoadEdges.
func (l *Loader) Load(ctx context.Context, g *dag.DAG, opts LoadOptions) error {
	if opts.Clean {
		if err := l.Clean(ctx); err != nil {
			return err
		}
	}
	if err := l.CreateIndexes(ctx); err != nil {
		return err
	}
	if err := l.LoadPackages(ctx, g); err != nil {
		return err
	}
	return l.LoadEdges(ctx, g)
}

func (l *Loader) runBatches(ctx context.Context, cypher string, rows []map[string]any) error {
	for _, batch := range Batches(rows, l.BatchSize) {
		start := time.Now()
		err := l.run(ctx, cypher, map[string]any{"batch": batch})
		observability.Sink().OnBatch(ctx, "neo4j", len(batch), time.Since(start), err)
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) run(ctx context.Context, cypher string, params map[string]any) error {
	err := retry(ctx, l.Attempts, l.RetryDelay, func() error {
		return l.exec.Execute(ctx, cypher, params)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "neo4j query failed")
	}
	return nil
}
