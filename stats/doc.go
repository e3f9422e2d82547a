// Package stats exports partner-selection and migration decisions as
// Prometheus metrics.
//
// A Recorder registers its collectors on the Registerer it is given, so
// several recorders can coexist in tests by using private registries:
//
//	reg := prometheus.NewRegistry()
//	rec := stats.NewRecorder(reg)
//	engine, _ := assort.New(rel, cfg, assort.WithObserver(rec))
//	factory, _ := migration.NewFactory(p, resolve, migration.WithObserver(rec))
//
// All methods are safe for concurrent use.
package stats
