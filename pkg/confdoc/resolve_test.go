// SPDX-License-Identifier: MPL-2.0

package confdoc

import (
	"errors"
	"reflect"
	"testing"
)

// noEnv is an environment lookup with no variables set.
func noEnv(string) (string, bool) { return "", false }

// mustResolve parses and resolves src, failing the test on any error.
func mustResolve(t *testing.T, src string, opts ResolveOptions) map[string]any {
	t.Helper()
	if opts.Env == nil {
		opts.Env = noEnv
	}
	doc, err := Parse([]byte(src), "test.conf")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	out, _, err := doc.Resolve(opts)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return out
}

func TestResolveScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want map[string]any
	}{
		{
			name: "quoted string",
			src:  `name = "My App"`,
			want: map[string]any{"name": "My App"},
		},
		{
			name: "unquoted string",
			src:  `name = my-app`,
			want: map[string]any{"name": "my-app"},
		},
		{
			name: "integer",
			src:  `revision = 2`,
			want: map[string]any{"revision": int64(2)},
		},
		{
			name: "float",
			src:  `ratio = 2.5`,
			want: map[string]any{"ratio": 2.5},
		},
		{
			name: "booleans and null",
			src:  "a = true\nb = false\nc = null",
			want: map[string]any{"a": true, "b": false, "c": nil},
		},
		{
			name: "colon separator",
			src:  `name: "app"`,
			want: map[string]any{"name": "app"},
		},
		{
			name: "comments ignored",
			src:  "// a comment\nname = app # trailing\n# whole line",
			want: map[string]any{"name": "app"},
		},
		{
			name: "root braces optional",
			src:  `{ name = app }`,
			want: map[string]any{"name": "app"},
		},
		{
			name: "comma separated fields",
			src:  `a = 1, b = 2`,
			want: map[string]any{"a": int64(1), "b": int64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mustResolve(t, tt.src, ResolveOptions{})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolveObjects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want map[string]any
	}{
		{
			name: "dotted keys nest",
			src:  `app.site.base-url = "https://example.com"`,
			want: map[string]any{"app": map[string]any{"site": map[string]any{"base-url": "https://example.com"}}},
		},
		{
			name: "repeated objects deep-merge",
			src:  "app { x = 1 }\napp { y = 2 }",
			want: map[string]any{"app": map[string]any{"x": int64(1), "y": int64(2)}},
		},
		{
			name: "later scalar wins",
			src:  "a = 1\na = 2",
			want: map[string]any{"a": int64(2)},
		},
		{
			name: "object shorthand without separator",
			src:  "app { name = x }",
			want: map[string]any{"app": map[string]any{"name": "x"}},
		},
		{
			name: "dotted and braced forms merge",
			src:  "app.name = x\napp { version = \"1.0\" }",
			want: map[string]any{"app": map[string]any{"name": "x", "version": "1.0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mustResolve(t, tt.src, ResolveOptions{})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolveSubstitutions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want map[string]any
	}{
		{
			name: "simple path",
			src:  "a = 1\nb = ${a}",
			want: map[string]any{"a": int64(1), "b": int64(1)},
		},
		{
			name: "nested path",
			src:  "app.name = x\ntitle = ${app.name}",
			want: map[string]any{"app": map[string]any{"name": "x"}, "title": "x"},
		},
		{
			name: "forward reference",
			src:  "b = ${a}\na = 1",
			want: map[string]any{"a": int64(1), "b": int64(1)},
		},
		{
			name: "optional missing key omitted",
			src:  "a = ${?missing}\nb = 1",
			want: map[string]any{"b": int64(1)},
		},
		{
			name: "optional missing list element dropped",
			src:  "xs = [ 1, ${?missing}, 2 ]",
			want: map[string]any{"xs": []any{int64(1), int64(2)}},
		},
		{
			name: "self-referential list append",
			src:  "inputs = [ a ]\ninputs = ${inputs} [ b ]",
			want: map[string]any{"inputs": []any{"a", "b"}},
		},
		{
			name: "plus-equals append",
			src:  "xs = [ a ]\nxs += b",
			want: map[string]any{"xs": []any{"a", "b"}},
		},
		{
			name: "plus-equals on undefined key",
			src:  "xs += a",
			want: map[string]any{"xs": []any{"a"}},
		},
		{
			name: "substitution through a leaf",
			src:  "a = { x = 1 }\nb = ${a}\nc = ${b.x}",
			want: map[string]any{
				"a": map[string]any{"x": int64(1)},
				"b": map[string]any{"x": int64(1)},
				"c": int64(1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mustResolve(t, tt.src, ResolveOptions{})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolveConcatenation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want map[string]any
	}{
		{
			name: "unquoted words join with spaces",
			src:  `title = hello brave world`,
			want: map[string]any{"title": "hello brave world"},
		},
		{
			name: "adjacent parts join without a space",
			src:  "name = app\nfile = ${name}\".conf\"",
			want: map[string]any{"name": "app", "file": "app.conf"},
		},
		{
			name: "substitution inside a sentence",
			src:  "name = edlgen\ntitle = ${name} installer",
			want: map[string]any{"name": "edlgen", "title": "edlgen installer"},
		},
		{
			name: "list concatenation",
			src:  "xs = [ 1 ] [ 2, 3 ]",
			want: map[string]any{"xs": []any{int64(1), int64(2), int64(3)}},
		},
		{
			name: "object concatenation deep-merges",
			src:  "o = { a = 1 } { b = 2 }",
			want: map[string]any{"o": map[string]any{"a": int64(1), "b": int64(2)}},
		},
		{
			name: "scalars stringify in concat",
			src:  "port = 8080\nname = app\naddr = ${name}-${port}",
			want: map[string]any{"port": int64(8080), "name": "app", "addr": "app-8080"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mustResolve(t, tt.src, ResolveOptions{})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolveDescriptorListExtension(t *testing.T) {
	t.Parallel()

	src := `
app {
  inputs = [ "build/dist" ]
  site.github.oauth-token = ${env.GITHUB_TOKEN}
}
app.mac.inputs = ${app.inputs} [ "build/macos -> Contents/MacOS" ]
`
	env := func(name string) (string, bool) { return "tok", name == "GITHUB_TOKEN" }
	doc, err := Parse([]byte(src), "conveyor.conf")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	out, info, err := doc.Resolve(ResolveOptions{Env: env})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	app := out["app"].(map[string]any)
	mac := app["mac"].(map[string]any)
	want := []any{"build/dist", "build/macos -> Contents/MacOS"}
	if !reflect.DeepEqual(mac["inputs"], want) {
		t.Errorf("mac.inputs = %#v, want %#v", mac["inputs"], want)
	}
	if !reflect.DeepEqual(app["inputs"], []any{"build/dist"}) {
		t.Errorf("app.inputs = %#v, should be untouched by the extension", app["inputs"])
	}

	site := app["site"].(map[string]any)
	github := site["github"].(map[string]any)
	if github["oauth-token"] != "tok" {
		t.Errorf("oauth-token = %#v, want the interpolated value", github["oauth-token"])
	}
	if len(info.EnvRefs) != 1 || info.EnvRefs[0].Name != "GITHUB_TOKEN" || !info.EnvRefs[0].Set {
		t.Errorf("EnvRefs = %+v, want one set GITHUB_TOKEN reference", info.EnvRefs)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "undefined required substitution",
			src:     `a = ${missing}`,
			wantErr: ErrUnresolvedSubstitution,
		},
		{
			name:    "direct cycle",
			src:     "a = ${b}\nb = ${a}",
			wantErr: ErrSubstitutionCycle,
		},
		{
			name:    "self cycle without shadowed value",
			src:     `a = ${a}`,
			wantErr: ErrSubstitutionCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse([]byte(tt.src), "test.conf")
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			_, _, err = doc.Resolve(ResolveOptions{Env: noEnv})
			if err == nil {
				t.Fatal("Resolve() should fail")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve() error = %v, want errors.Is(%v)", err, tt.wantErr)
			}
		})
	}
}

func TestResolveMixedConcatFails(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`x = [ 1 ] scalar`), "test.conf")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, _, err := doc.Resolve(ResolveOptions{Env: noEnv}); err == nil {
		t.Fatal("mixing a list with a scalar in one value should fail")
	}
}

func TestResolveEnv(t *testing.T) {
	t.Parallel()

	env := func(name string) (string, bool) {
		if name == "GITHUB_TOKEN" {
			return "sekrit", true
		}
		return "", false
	}

	t.Run("set variable interpolates", func(t *testing.T) {
		t.Parallel()
		got := mustResolve(t, `token = ${env.GITHUB_TOKEN}`, ResolveOptions{Env: env})
		want := map[string]any{"token": "sekrit"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %#v, want %#v", got, want)
		}
	})

	t.Run("unset required variable fails", func(t *testing.T) {
		t.Parallel()
		doc, err := Parse([]byte(`token = ${env.MISSING}`), "test.conf")
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if _, _, err := doc.Resolve(ResolveOptions{Env: env}); !errors.Is(err, ErrUnresolvedSubstitution) {
			t.Errorf("Resolve() error = %v, want ErrUnresolvedSubstitution", err)
		}
	})

	t.Run("unset variable tolerated with AllowUnsetEnv", func(t *testing.T) {
		t.Parallel()
		got := mustResolve(t, `token = ${env.MISSING}`, ResolveOptions{Env: env, AllowUnsetEnv: true})
		want := map[string]any{"token": ""}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %#v, want %#v", got, want)
		}
	})

	t.Run("optional unset variable vanishes", func(t *testing.T) {
		t.Parallel()
		got := mustResolve(t, "token = ${?env.MISSING}\nkeep = 1", ResolveOptions{Env: env})
		want := map[string]any{"keep": int64(1)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %#v, want %#v", got, want)
		}
	})

	t.Run("bare name falls back to environment", func(t *testing.T) {
		t.Parallel()
		got := mustResolve(t, `token = ${GITHUB_TOKEN}`, ResolveOptions{Env: env})
		want := map[string]any{"token": "sekrit"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %#v, want %#v", got, want)
		}
	})

	t.Run("references recorded", func(t *testing.T) {
		t.Parallel()
		doc, err := Parse([]byte("a = ${env.GITHUB_TOKEN}\nb = ${env.MISSING}"), "test.conf")
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		_, info, err := doc.Resolve(ResolveOptions{Env: env, AllowUnsetEnv: true})
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if len(info.EnvRefs) != 2 {
			t.Fatalf("len(EnvRefs) = %d, want 2", len(info.EnvRefs))
		}
		if info.EnvRefs[0].Name != "GITHUB_TOKEN" || !info.EnvRefs[0].Set {
			t.Errorf("EnvRefs[0] = %+v, want GITHUB_TOKEN set", info.EnvRefs[0])
		}
		if info.EnvRefs[1].Name != "MISSING" || info.EnvRefs[1].Set {
			t.Errorf("EnvRefs[1] = %+v, want MISSING unset", info.EnvRefs[1])
		}
		if got, want := info.EnvNames(), []string{"GITHUB_TOKEN", "MISSING"}; !reflect.DeepEqual(got, want) {
			t.Errorf("EnvNames() = %v, want %v", got, want)
		}
		if info.EnvRefs[1].Pos.Line != 2 {
			t.Errorf("EnvRefs[1].Pos.Line = %d, want 2", info.EnvRefs[1].Pos.Line)
		}
	})
}
