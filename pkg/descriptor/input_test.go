// SPDX-License-Identifier: MPL-2.0

package descriptor

import "testing"

func TestParseMappingString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want InputMapping
	}{
		{"build/dist", InputMapping{From: "build/dist"}},
		{"  build/dist  ", InputMapping{From: "build/dist"}},
		{"build/macos -> Contents/MacOS", InputMapping{From: "build/macos", To: "Contents/MacOS"}},
		{"a->b", InputMapping{From: "a", To: "b"}},
		// A second arrow stays in the destination; validation flags it.
		{"a -> b -> c", InputMapping{From: "a", To: "b -> c"}},
		{"", InputMapping{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got := parseMappingString(tt.in)
			if got.From != tt.want.From || got.To != tt.want.To {
				t.Errorf("parseMappingString(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapesRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"Contents/MacOS", false},
		{"a/../b", false},
		{"..", true},
		{"../outside", true},
		{"a/../../outside", true},
		{"..\\windows\\style", true},
	}

	for _, tt := range tests {
		if got := escapesRoot(tt.path); got != tt.want {
			t.Errorf("escapesRoot(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsAbsoluteDest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"Contents/MacOS", false},
		{"/usr/local", true},
		{`\share`, true},
		{`C:\Program Files`, true},
		{"d:stuff", true},
		{"c", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isAbsoluteDest(tt.path); got != tt.want {
			t.Errorf("isAbsoluteDest(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
