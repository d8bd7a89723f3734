// Package workflow is the graph construction core: artifact registry,
// naming-chain resolver, transformation catalog, job node builder,
// dependency inference, clustering policy, and the graph assembler.
//
// Construction is a pure, single-threaded transformation from (raw artifact
// list, naming chains, job type catalog) to one immutable Graph value. The
// package knows nothing about job execution; scheduling, staging, and
// dispatch belong to the external engine that receives the Graph.
package workflow
