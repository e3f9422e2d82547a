// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/epiroute/assort"
	"github.com/katalvlaran/epiroute/migration"
	"github.com/katalvlaran/epiroute/population"
	"github.com/katalvlaran/epiroute/rng"
)

// PropertyRegistry registers every configured property.
func (s *Simulation) PropertyRegistry() (*population.Registry, error) {
	reg := population.NewRegistry()
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := reg.Define(k, s.Properties[k]...); err != nil {
			return nil, fmt.Errorf("config: properties: %w", err)
		}
	}
	return reg, nil
}

// Assortivities builds one engine per relationship type. Types absent from
// the configuration get NO_GROUP. Each engine draws from its own stream
// derived from Seed, and is advanced to BaseYear. opts are appended to the
// ones derived from s.
func (s *Simulation) Assortivities(props assort.PropertyRegistry, opts ...assort.Option) (map[population.RelationshipType]*assort.Assortivity, error) {
	cfgs := make(map[population.RelationshipType]assort.Config, len(s.Relationships))
	for _, key := range s.relationshipKeys() {
		rel, err := parseRelationship(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrRelationship, key)
		}
		cfgs[rel] = s.Relationships[key]
	}

	out := make(map[population.RelationshipType]*assort.Assortivity, len(population.RelationshipTypes()))
	for _, rel := range population.RelationshipTypes() {
		base := []assort.Option{
			assort.WithSimulationType(s.SimulationType),
			assort.WithRandom(rng.Derive(s.Seed, uint64(rel))),
		}
		if props != nil {
			base = append(base, assort.WithProperties(props))
		}
		e, err := assort.New(rel, cfgs[rel], append(base, opts...)...)
		if err != nil {
			return nil, err
		}
		e.Update(s.BaseYear)
		out[rel] = e
	}
	return out, nil
}

// MigrationFactory builds the migration factory, searching FilePaths for
// rate files. opts are appended to the derived ones.
func (s *Simulation) MigrationFactory(resolve migration.Resolver, opts ...migration.Option) (migration.Factory, error) {
	base := []migration.Option{migration.WithSearchPaths(s.FilePaths...)}
	return migration.NewFactory(s.Migration, resolve, append(base, opts...)...)
}

func (s *Simulation) relationshipKeys() []string {
	keys := make([]string, 0, len(s.Relationships))
	for k := range s.Relationships {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// parseRelationship accepts the exact upper-case names only.
func parseRelationship(key string) (population.RelationshipType, error) {
	rel, err := population.ParseRelationshipType(key)
	if err != nil || rel.String() != key {
		return 0, fmt.Errorf("%q: %w", key, population.ErrUnknownRelationshipType)
	}
	return rel, nil
}
