// Package config loads a simulation's YAML configuration and turns it into
// ready-to-use components.
//
// Loading has two stages. Load decodes the file over Default(), rejecting
// unknown keys, and runs the struct-tag checks of go-playground/validator.
// The builders (PropertyRegistry, Assortivities, MigrationFactory) then perform
// the semantic checks by constructing the engines themselves, so every
// error a simulation would hit at start-up surfaces from the same calls.
//
// NewLogger builds the slog logger used across the module from a level and
// a format name.
package config
