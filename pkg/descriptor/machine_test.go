// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"errors"
	"testing"
)

func TestMachineValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		machine Machine
		wantErr bool
	}{
		{MachineMacAarch64, false},
		{MachineMacAmd64, false},
		{MachineWindowsAmd64, false},
		{MachineWindowsAarch64, false},
		{MachineLinuxAmd64Glibc, false},
		{MachineLinuxAarch64Muslc, false},
		{"linux.amd64", false},   // alias
		{"linux.aarch64", false}, // alias
		{"windows.arm64", true},
		{"macos.aarch64", true},
		{"linux.amd64.uclibc", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.machine), func(t *testing.T) {
			t.Parallel()

			err := tt.machine.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.machine, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownMachine) {
				t.Errorf("Validate(%q) error should wrap ErrUnknownMachine, got %v", tt.machine, err)
			}
		})
	}
}

func TestMachineCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Machine
		want Machine
	}{
		{"linux.amd64", MachineLinuxAmd64Glibc},
		{"linux.aarch64", MachineLinuxAarch64Glibc},
		{MachineLinuxAmd64Glibc, MachineLinuxAmd64Glibc},
		{MachineMacAarch64, MachineMacAarch64},
		{"bogus", "bogus"},
	}

	for _, tt := range tests {
		if got := tt.in.Canonical(); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMachineSegments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		machine Machine
		os      string
		arch    string
		libc    string
	}{
		{MachineMacAarch64, "mac", "aarch64", ""},
		{MachineWindowsAmd64, "windows", "amd64", ""},
		{MachineLinuxAmd64Glibc, "linux", "amd64", "glibc"},
		{MachineLinuxAarch64Muslc, "linux", "aarch64", "muslc"},
		{"linux.amd64", "linux", "amd64", "glibc"}, // alias canonicalizes for libc
		{"malformed", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.machine), func(t *testing.T) {
			t.Parallel()

			if got := tt.machine.OS(); got != tt.os {
				t.Errorf("OS() = %q, want %q", got, tt.os)
			}
			if got := tt.machine.Arch(); got != tt.arch {
				t.Errorf("Arch() = %q, want %q", got, tt.arch)
			}
			if got := tt.machine.LibC(); got != tt.libc {
				t.Errorf("LibC() = %q, want %q", got, tt.libc)
			}
		})
	}
}

func TestSuggestMachine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Machine
		want Machine
	}{
		{"windows.arm64", MachineWindowsAmd64},
		{"mac.arm64", MachineMacAarch64},
		{"linux.amd64.musl", MachineLinuxAmd64Muslc},
		{"zz", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			t.Parallel()

			if got := suggestMachine(tt.in); got != tt.want {
				t.Errorf("suggestMachine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKnownMachinesStable(t *testing.T) {
	t.Parallel()

	ms := KnownMachines()
	if len(ms) != 8 {
		t.Fatalf("len(KnownMachines()) = %d, want 8", len(ms))
	}
	for _, m := range ms {
		if m.Canonical() != m {
			t.Errorf("known machine %q is not canonical", m)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("known machine %q fails Validate: %v", m, err)
		}
	}
}
