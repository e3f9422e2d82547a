// Package nodes keeps the simulation's node set and the migration links
// between nodes.
//
// Every node has two identities:
//
//   - ExternalID: the 32-bit id used by input files (demographics, migration
//     binaries). Stable across runs.
//   - SUID: a dense, process-local id assigned in registration order,
//     starting at 1. NilSUID (0) means "no node".
//
// Registry maps between them and records, per source node, the set of
// destinations it can migrate to. Walk runs a breadth-first search over
// those links, which backs reachability reports and fortress detection
// (nodes without any outgoing migration link).
//
// All Registry methods are safe for concurrent use; reads take a shared
// lock, writes an exclusive one.
//
// Complexity (V = nodes, E = links)
//
//   - Add, SUIDOf, ExternalOf, SetLinks: O(1) amortized (SetLinks O(deg)).
//   - Walk: O(V + E).
package nodes
