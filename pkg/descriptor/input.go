// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"path"
	"strings"
)

// mappingArrow separates source and destination in the string form of an
// input mapping: "build/macos -> Contents/MacOS".
const mappingArrow = "->"

// InputMapping declares that a local build output (From) lands at a given
// path inside the packaged artifact (To). An empty To means the package root.
//
// Descriptors write mappings either as bare strings ("build/macos ->
// Contents/MacOS", or just "build/out" for the package root) or as objects
// with explicit from/to/remap fields. Normalization expands the string form
// before decoding, so the model only carries the object form.
type InputMapping struct {
	// From is the local path (file, directory, or glob) to pick up.
	From string `json:"from"`
	// To is the destination path inside the package, relative to its root.
	To string `json:"to,omitempty"`
	// Remap lists rename rules applied to matched files (glob -> glob).
	Remap []string `json:"remap,omitempty"`
}

// parseMappingString expands the string shorthand into the object form. The
// first arrow splits source from destination; validation catches leftover
// arrows in the destination.
func parseMappingString(s string) InputMapping {
	before, after, found := strings.Cut(s, mappingArrow)
	if !found {
		return InputMapping{From: strings.TrimSpace(s)}
	}
	return InputMapping{
		From: strings.TrimSpace(before),
		To:   strings.TrimSpace(after),
	}
}

// escapesRoot reports whether a destination path climbs out of the package
// root via ".." segments.
func escapesRoot(p string) bool {
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return clean == ".." || strings.HasPrefix(clean, "../")
}

// isAbsoluteDest reports whether a destination path is absolute (either
// Unix-style or a Windows drive path). Destinations must stay relative to the
// package root.
func isAbsoluteDest(p string) bool {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "\\") {
		return true
	}
	return len(p) >= 2 && p[1] == ':' &&
		(p[0] >= 'a' && p[0] <= 'z' || p[0] >= 'A' && p[0] <= 'Z')
}
