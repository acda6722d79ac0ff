// SPDX-License-Identifier: MPL-2.0

// Package confdoc parses and resolves the HOCON-style configuration dialect
// used by packaging descriptors.
//
// The dialect supports nested objects, dotted keys, lists, line comments
// (`//` and `#`), `include` statements, value concatenation, and `${path}`
// substitutions (including `${env.VAR}` environment interpolation and
// self-referential list composition such as `inputs = ${app.inputs} [...]`).
//
// Parsing happens in two phases:
//
//  1. Parse produces a *Document, an ordered tree of field assignments with
//     source positions preserved for diagnostics.
//  2. Document.Resolve merges the assignments, expands substitutions with
//     cycle detection, and yields a plain Go value tree (map[string]any,
//     []any, string, int64, float64, bool) plus the set of environment
//     variables the document referenced.
//
// The two phases are split so that callers can report syntax errors and
// resolution errors separately, and so that tooling can inspect the raw
// (unresolved) assignment structure.
package confdoc
