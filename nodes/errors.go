// SPDX-License-Identifier: MIT

package nodes

import "errors"

// Sentinel errors for node registry operations.
var (
	// ErrZeroExternalID indicates an attempt to register external id 0,
	// which migration files reserve as "no destination".
	ErrZeroExternalID = errors.New("nodes: external id 0 is reserved")

	// ErrDuplicateNode indicates the external id is already registered.
	ErrDuplicateNode = errors.New("nodes: node already registered")

	// ErrNodeNotFound indicates an id that is not registered.
	ErrNodeNotFound = errors.New("nodes: node not found")

	// ErrNilSUID indicates NilSUID was used where a real node is required.
	ErrNilSUID = errors.New("nodes: nil suid")
)
