// Package epiroute holds the contact and movement core of an agent-based
// epidemic model: who pairs with whom, and where travelers go next.
//
// The module is organized in small packages, lowest layer first:
//
//	rng/          Source interface, seeded PCG streams, scripted Replay for tests
//	rates/        age-indexed rate tables, CDF normalization and inversion
//	population/   individuals, genders, relationship types, property registry
//	nodes/        external id ↔ SUID registry, migration links, reachability walk
//	lattice/      wrap-around grid with eight-neighbor ids
//	assort/       assortative partner selection driven by a weighting matrix
//	migration/    migration files, per-node strategies and their factories
//	stats/        Prometheus counters for selections and migration decisions
//	config/       YAML simulation configuration and logger setup
//	cmd/epiroute  command-line front end
//
// Everything that draws random numbers takes an rng.Source, so a run is
// reproducible from its seed. Setup-time registries are safe for concurrent
// use; engines and strategies are owned by one goroutine at a time.
package epiroute
