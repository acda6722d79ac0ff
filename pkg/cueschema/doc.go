// SPDX-License-Identifier: MPL-2.0

// Package cueschema provides shared CUE validation utilities.
//
// Two entry points cover the repository's schema checks:
//
//   - ParseAndDecode compiles an embedded schema, unifies it with a
//     user-provided CUE file, validates, and decodes into a Go struct. The
//     tool configuration loader uses this.
//   - EncodeAndDecode performs the same unify/validate/decode flow starting
//     from an already-parsed Go value instead of CUE source. The descriptor
//     pipeline uses this: the resolved descriptor tree is encoded into CUE
//     and checked against the descriptor schema.
//
// Both return errors with JSON-path prefixes (e.g. "app.machines[1]") so
// diagnostics point at the offending field.
package cueschema
