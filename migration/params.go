// SPDX-License-Identifier: MIT

package migration

// Migration models.
const (
	ModelNone      = "NO_MIGRATION"
	ModelFixedRate = "FIXED_RATE_MIGRATION"
)

// Rate sources.
const (
	SourceFile  = "FILE"
	SourceTorus = "TORUS"
)

// FileParams configures one migration type.
type FileParams struct {
	Enabled    bool    `yaml:"enabled"`
	Filename   string  `yaml:"filename"`
	Multiplier float64 `yaml:"multiplier" validate:"gte=0"`
}

// Params is the migration section of a simulation configuration.
type Params struct {
	Model     string     `yaml:"model" validate:"oneof=NO_MIGRATION FIXED_RATE_MIGRATION"`
	Source    string     `yaml:"source" validate:"oneof=FILE TORUS"`
	TorusSize int        `yaml:"torus_size" validate:"required_if=Source TORUS,omitempty,min=2"`
	Local     FileParams `yaml:"local"`
	Air       FileParams `yaml:"air"`
	Regional  FileParams `yaml:"regional"`
	Sea       FileParams `yaml:"sea"`
	Family    FileParams `yaml:"family"`
}

// DefaultParams returns migration switched off with unit multipliers.
func DefaultParams() Params {
	unit := FileParams{Multiplier: 1}
	return Params{
		Model:    ModelNone,
		Source:   SourceFile,
		Local:    unit,
		Air:      unit,
		Regional: unit,
		Sea:      unit,
		Family:   unit,
	}
}

// File returns the parameters of migration type t.
func (p Params) File(t Type) FileParams {
	switch t {
	case Local:
		return p.Local
	case Air:
		return p.Air
	case Regional:
		return p.Regional
	case Sea:
		return p.Sea
	case Family:
		return p.Family
	}
	return FileParams{}
}

// Spec turns the parameters of t into a FileSpec.
func (p Params) Spec(t Type) FileSpec {
	fp := p.File(t)
	return FileSpec{Type: t, Enabled: fp.Enabled, Filename: fp.Filename, Multiplier: fp.Multiplier}
}
