// Package neo4j loads classified package graphs into a Neo4j database.
//
// Packages become DepPackage nodes keyed by import path and imports become
// DEPENDS_ON relationships. Both carry a class property ("internal",
// "stdlib" or "third-party"):
//
//	(:DepPackage {import_path, class, module})-[:DEPENDS_ON {class}]->(:DepPackage)
//
// Writes are batched with UNWIND so a whole module loads in a handful of
// round trips:
//
//	loader, err := neo4j.Connect(ctx, "bolt://localhost:7687", "neo4j", password)
//	if err != nil {
//	    return err
//	}
//	defer loader.Close(ctx)
//	err = loader.Load(ctx, g.ToDAG(depgraph.DAGOptions{ThirdParty: true}), neo4j.LoadOptions{Clean: true})
//
// All statements use MERGE, so loading the same graph twice is a no-op.
package neo4j
