// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// Machine identifies a target platform/architecture pair as understood by the
// packaging tool, e.g. "mac.aarch64" or "linux.amd64.glibc".
type Machine string

const (
	// MachineMacAarch64 targets Apple Silicon macOS.
	MachineMacAarch64 Machine = "mac.aarch64"
	// MachineMacAmd64 targets Intel macOS.
	MachineMacAmd64 Machine = "mac.amd64"
	// MachineWindowsAmd64 targets x86-64 Windows.
	MachineWindowsAmd64 Machine = "windows.amd64"
	// MachineWindowsAarch64 targets ARM64 Windows.
	MachineWindowsAarch64 Machine = "windows.aarch64"
	// MachineLinuxAmd64Glibc targets x86-64 glibc Linux.
	MachineLinuxAmd64Glibc Machine = "linux.amd64.glibc"
	// MachineLinuxAarch64Glibc targets ARM64 glibc Linux.
	MachineLinuxAarch64Glibc Machine = "linux.aarch64.glibc"
	// MachineLinuxAmd64Muslc targets x86-64 musl Linux.
	MachineLinuxAmd64Muslc Machine = "linux.amd64.muslc"
	// MachineLinuxAarch64Muslc targets ARM64 musl Linux.
	MachineLinuxAarch64Muslc Machine = "linux.aarch64.muslc"
)

const (
	// OSMac is the operating system segment of macOS machine identifiers.
	OSMac = "mac"
	// OSWindows is the operating system segment of Windows machine identifiers.
	OSWindows = "windows"
	// OSLinux is the operating system segment of Linux machine identifiers.
	OSLinux = "linux"
)

// ErrUnknownMachine is the sentinel wrapped by UnknownMachineError.
var ErrUnknownMachine = errors.New("unknown machine identifier")

// UnknownMachineError is returned when a machine identifier is not in the
// known set. It wraps ErrUnknownMachine for errors.Is() compatibility.
type UnknownMachineError struct {
	Value Machine
}

func (e *UnknownMachineError) Error() string {
	return fmt.Sprintf("unknown machine identifier %q", string(e.Value))
}

func (e *UnknownMachineError) Unwrap() error {
	return ErrUnknownMachine
}

// machineAliases maps accepted shorthand identifiers to their canonical form.
// Bare "linux.amd64" is common in hand-written descriptors and means glibc.
var machineAliases = map[Machine]Machine{
	"linux.amd64":   MachineLinuxAmd64Glibc,
	"linux.aarch64": MachineLinuxAarch64Glibc,
}

// KnownMachines returns the canonical machine identifier set, in a stable
// display order (mac, windows, linux).
func KnownMachines() []Machine {
	return []Machine{
		MachineMacAarch64,
		MachineMacAmd64,
		MachineWindowsAmd64,
		MachineWindowsAarch64,
		MachineLinuxAmd64Glibc,
		MachineLinuxAarch64Glibc,
		MachineLinuxAmd64Muslc,
		MachineLinuxAarch64Muslc,
	}
}

// Canonical resolves aliases to their canonical identifier. Unknown values
// are returned unchanged.
func (m Machine) Canonical() Machine {
	if c, ok := machineAliases[m]; ok {
		return c
	}
	return m
}

// IsKnown reports whether the identifier (or an alias of it) is in the known
// set.
func (m Machine) IsKnown() bool {
	c := m.Canonical()
	for _, k := range KnownMachines() {
		if c == k {
			return true
		}
	}
	return false
}

// Validate returns an UnknownMachineError when the identifier is not known.
func (m Machine) Validate() error {
	if !m.IsKnown() {
		return &UnknownMachineError{Value: m}
	}
	return nil
}

// OS returns the operating system segment ("mac", "windows", "linux"), or ""
// for a malformed identifier.
func (m Machine) OS() string {
	seg, _, found := strings.Cut(string(m), ".")
	if !found {
		return ""
	}
	return seg
}

// Arch returns the architecture segment ("amd64", "aarch64"), or "" for a
// malformed identifier.
func (m Machine) Arch() string {
	parts := strings.Split(string(m), ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// LibC returns the C library segment of Linux identifiers ("glibc", "muslc"),
// or "" when not applicable.
func (m Machine) LibC() string {
	parts := strings.Split(string(m.Canonical()), ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

func (m Machine) String() string {
	return string(m)
}

// suggestMachine returns the known identifier closest to the given value, or
// "" when nothing is close enough to be a useful hint. Closeness is a simple
// shared-prefix heuristic: typos in machine identifiers are almost always in
// the trailing segments.
func suggestMachine(m Machine) Machine {
	var (
		best    Machine
		bestLen int
	)
	for _, k := range KnownMachines() {
		n := commonPrefixLen(string(m), string(k))
		if n > bestLen {
			bestLen = n
			best = k
		}
	}
	if bestLen < 3 {
		return ""
	}
	return best
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
