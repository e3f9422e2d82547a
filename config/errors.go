// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrRead indicates the configuration file could not be read.
	ErrRead = errors.New("config: cannot read file")

	// ErrDecode indicates malformed YAML or an unknown key.
	ErrDecode = errors.New("config: cannot decode YAML")

	// ErrInvalid indicates a failed struct-tag check.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrRelationship indicates a relationships key that names no
	// relationship type.
	ErrRelationship = errors.New("config: unknown relationship type key")

	// ErrLogLevel indicates an unrecognized log level.
	ErrLogLevel = errors.New("config: unknown log level")

	// ErrLogFormat indicates a log format other than text or json.
	ErrLogFormat = errors.New("config: unknown log format")
)
