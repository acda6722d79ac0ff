// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/packvet/packvet/pkg/confdoc"
	"github.com/packvet/packvet/pkg/cueschema"
)

//go:embed descriptor_schema.cue
var descriptorSchema []byte

// DefaultFileName is the conventional descriptor file name.
const DefaultFileName = "conveyor.conf"

type (
	// ParseOption configures descriptor parsing.
	ParseOption func(*parseOptions)

	parseOptions struct {
		env      func(string) (string, bool)
		includer confdoc.Includer
	}
)

// WithEnv overrides the environment used for `${env.VAR}` interpolation.
// Primarily for tests; the default is os.LookupEnv.
func WithEnv(env func(string) (string, bool)) ParseOption {
	return func(o *parseOptions) {
		o.env = env
	}
}

// WithIncluder overrides the loader for `include` statements. ParseFile
// defaults to loading relative to the descriptor's directory; ParseBytes
// defaults to treating includes as missing.
func WithIncluder(inc confdoc.Includer) ParseOption {
	return func(o *parseOptions) {
		o.includer = inc
	}
}

// ParseFile reads, resolves, and decodes a descriptor file. The returned
// error covers syntax, resolution, and schema failures; structural
// diagnostics are collected separately via Validate.
func ParseFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor at %s: %w", path, err)
	}
	return ParseBytes(data, path, WithIncluder(confdoc.FileIncluder{Dir: filepath.Dir(path)}))
}

// ParseBytes parses descriptor content from bytes. The path argument is used
// in diagnostics only.
//
// Unset environment variables do not fail the parse: interpolations resolve
// to "" and the reference is recorded in EnvRefs so validators can surface it
// as a diagnostic instead of a hard stop.
func ParseBytes(data []byte, path string, opts ...ParseOption) (*Descriptor, error) {
	options := parseOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var parseOpts []confdoc.ParseOption
	if options.includer != nil {
		parseOpts = append(parseOpts, confdoc.WithIncluder(options.includer))
	}

	doc, err := confdoc.Parse(data, path, parseOpts...)
	if err != nil {
		return nil, err
	}

	raw, info, err := doc.Resolve(confdoc.ResolveOptions{
		Env:           options.env,
		AllowUnsetEnv: true,
	})
	if err != nil {
		return nil, err
	}

	normalize(raw)

	result, err := cueschema.EncodeAndDecode[Descriptor](
		descriptorSchema,
		raw,
		"#Descriptor",
		cueschema.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	desc := result.Value
	desc.FilePath = path
	desc.Raw = raw
	desc.EnvRefs = info.EnvRefs
	return desc, nil
}
