// SPDX-License-Identifier: MPL-2.0

// Package descriptor defines the typed model, schema, and validation for
// packaging descriptor files (conveyor.conf).
//
// A descriptor declares how a desktop application is bundled and published:
// app metadata (display name, filesystem name, version, VCS URL), target
// machine identifiers, icon resources, a publishing site with an OAuth token
// reference, and per-OS input mappings from local build outputs to paths
// inside the packaged artifact.
//
// Loading is a pipeline: confdoc parses and resolves the source, the resolved
// tree is normalized (shorthand forms expanded), checked against the embedded
// CUE schema, and decoded into Descriptor. Structural checks beyond the
// schema's reach run through the Validator framework, which collects every
// diagnostic instead of stopping at the first.
package descriptor
