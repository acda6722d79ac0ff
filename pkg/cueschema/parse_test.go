// SPDX-License-Identifier: MPL-2.0

package cueschema

import (
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name?:  string
	count?: int & >=0
	tags?: [...string]
}
`

type testDoc struct {
	Name  string   `json:"name,omitempty"`
	Count int      `json:"count,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	res, err := ParseAndDecode[testDoc](
		[]byte(testSchema),
		[]byte(`name: "edlgen", count: 3, tags: ["a", "b"]`),
		"#Doc",
		WithFilename("doc.cue"),
	)
	if err != nil {
		t.Fatalf("ParseAndDecode() error: %v", err)
	}
	if res.Value.Name != "edlgen" || res.Value.Count != 3 {
		t.Errorf("decoded = %+v", *res.Value)
	}
	if got := len(res.Value.Tags); got != 2 {
		t.Errorf("len(Tags) = %d, want 2", got)
	}

	// The unified value keeps fields the struct does not capture.
	if !res.Unified.Exists() {
		t.Error("Unified value should exist")
	}
}

func TestParseAndDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		wantSub string
	}{
		{
			name:    "type conflict names the path",
			data:    `name: 42`,
			wantSub: "name",
		},
		{
			name:    "constraint violation",
			data:    `count: -1`,
			wantSub: "count",
		},
		{
			name:    "syntax error",
			data:    `name: "unterminated`,
			wantSub: "doc.cue",
		},
		{
			name:    "size limit",
			data:    `name: "x"`,
			opts:    []Option{WithMaxFileSize(4)},
			wantSub: "exceeds maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{WithFilename("doc.cue")}, tt.opts...)
			_, err := ParseAndDecode[testDoc]([]byte(testSchema), []byte(tt.data), "#Doc", opts...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseAndDecodeMissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testDoc]([]byte(testSchema), []byte(`name: "x"`), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Fatalf("error = %v, want an internal schema error", err)
	}
}

func TestEncodeAndDecode(t *testing.T) {
	t.Parallel()

	value := map[string]any{
		"name":  "edlgen",
		"count": int64(2),
	}
	res, err := EncodeAndDecode[testDoc]([]byte(testSchema), value, "#Doc")
	if err != nil {
		t.Fatalf("EncodeAndDecode() error: %v", err)
	}
	if res.Value.Name != "edlgen" || res.Value.Count != 2 {
		t.Errorf("decoded = %+v", *res.Value)
	}
}

func TestEncodeAndDecodeConflict(t *testing.T) {
	t.Parallel()

	value := map[string]any{"count": "three"}
	_, err := EncodeAndDecode[testDoc]([]byte(testSchema), value, "#Doc", WithFilename("in.conf"))
	if err == nil {
		t.Fatal("expected a unification error")
	}
	if !strings.Contains(err.Error(), "in.conf") || !strings.Contains(err.Error(), "count") {
		t.Errorf("error %q should carry the filename and field path", err)
	}
}

func TestConcreteValidation(t *testing.T) {
	t.Parallel()

	schema := []byte(`#Doc: { name: string }`)

	if _, err := ParseAndDecode[testDoc](schema, []byte(`name: "x"`), "#Doc", WithConcrete(true)); err != nil {
		t.Errorf("concrete check should accept a complete value: %v", err)
	}
	if _, err := ParseAndDecode[testDoc](schema, []byte(`{}`), "#Doc", WithConcrete(true)); err == nil {
		t.Error("concrete check should reject an incomplete value")
	}
}
