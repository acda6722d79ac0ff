// SPDX-License-Identifier: MPL-2.0

// Package config loads packvet's own configuration: a CUE file under the
// platform config directory, validated against an embedded schema and merged
// into Viper over defaults and PACKVET_* environment overrides.
//
// This is the tool's configuration, not the packaging descriptor being
// checked; that lives in pkg/descriptor.
package config
