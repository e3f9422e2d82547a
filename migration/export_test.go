// SPDX-License-Identifier: MIT

package migration

// NodeOffset exposes nodeOffset to the external test package.
var NodeOffset = nodeOffset
