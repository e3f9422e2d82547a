// SPDX-License-Identifier: MIT

package nodes

import "strconv"

// SUID is the process-local node id. The zero value is NilSUID.
type SUID uint32

// NilSUID is "no node" (e.g. the destination of a non-migration step).
const NilSUID SUID = 0

// IsNil reports whether s is NilSUID.
func (s SUID) IsNil() bool { return s == NilSUID }

// String renders the numeric id, or "nil" for NilSUID.
func (s SUID) String() string {
	if s == NilSUID {
		return "nil"
	}
	return strconv.FormatUint(uint64(s), 10)
}

// Node pairs the two identities of a registered node.
type Node struct {
	// ExternalID is the id used in input files.
	ExternalID uint32

	// SUID is the id assigned at registration.
	SUID SUID
}
