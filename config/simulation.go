// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/epiroute/assort"
	"github.com/katalvlaran/epiroute/migration"
)

// Simulation is the top-level configuration document.
type Simulation struct {
	SimulationType string                   `yaml:"simulation_type" validate:"oneof=GENERIC_SIM STI_SIM HIV_SIM"`
	IDReference    string                   `yaml:"id_reference" validate:"required"`
	Seed           uint64                   `yaml:"seed"`
	BaseYear       float64                  `yaml:"base_year" validate:"gte=1900,lte=2200"`
	FilePaths      []string                 `yaml:"file_paths" validate:"min=1,dive,required"`
	Properties     map[string][]string      `yaml:"properties" validate:"omitempty,dive,keys,required,endkeys,min=1,unique,dive,required"`
	Migration      migration.Params         `yaml:"migration"`
	Relationships  map[string]assort.Config `yaml:"relationships"`
}

// Default returns a generic simulation without migration whose
// relationships all use NO_GROUP.
func Default() Simulation {
	return Simulation{
		SimulationType: assort.SimulationGeneric,
		IDReference:    "Default",
		BaseYear:       2000,
		FilePaths:      []string{"."},
		Migration:      migration.DefaultParams(),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and decodes path. See Parse.
func Load(path string) (*Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes one YAML document from r over Default() and validates it.
// Unknown keys are errors. An empty document yields Default().
func Parse(r io.Reader) (*Simulation, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate runs the struct-tag checks and verifies the relationships keys.
func (s *Simulation) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for _, key := range s.relationshipKeys() {
		if _, err := parseRelationship(key); err != nil {
			return fmt.Errorf("%w: %q", ErrRelationship, key)
		}
	}
	return nil
}
