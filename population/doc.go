// Package population defines the individual-level collaborators of the
// engines: genders, relationship types, the Individual record with its
// per-relationship category-index cache, and the property Registry that
// knows each named property's legal value set.
//
// The engines never depend on *Individual directly; they consume small
// interfaces (assort.Partner, migration.Traveler) that Individual satisfies.
package population
