// SPDX-License-Identifier: MPL-2.0

package cueschema

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatErrorNil(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "x.conf"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := FormatError(errors.New("boom"), "x.conf")
	if err == nil || !strings.HasPrefix(err.Error(), "x.conf: ") {
		t.Errorf("error = %v, want the file name as prefix", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"app"}, "app"},
		{[]string{"app", "machines"}, "app.machines"},
		{[]string{"app", "machines", "1"}, "app.machines[1]"},
		{[]string{"app", "inputs", "0", "from"}, "app.inputs[0].from"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
