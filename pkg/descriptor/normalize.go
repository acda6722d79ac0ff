// SPDX-License-Identifier: MPL-2.0

package descriptor

import "strconv"

// normalize expands the shorthand forms the dialect allows into the canonical
// shapes the schema expects, in place:
//
//   - `icons = "icons/icon-*.png"` becomes a single-element list
//   - string input mappings ("src -> dest") become {from, to} objects
//   - numeric versions become strings
//
// Typing mistakes (e.g. a number where a list belongs) are left untouched for
// the schema check to report.
func normalize(raw map[string]any) {
	app, ok := raw["app"].(map[string]any)
	if !ok {
		return
	}

	normalizeVersion(app)
	normalizeIcons(app)
	normalizeInputs(app)

	for _, os := range []string{OSMac, OSWindows, OSLinux} {
		sec, ok := app[os].(map[string]any)
		if !ok {
			continue
		}
		normalizeIcons(sec)
		normalizeInputs(sec)
		for _, arch := range []string{"amd64", "aarch64"} {
			if archSec, ok := sec[arch].(map[string]any); ok {
				normalizeInputs(archSec)
			}
		}
	}
}

// normalizeVersion stringifies numeric versions: `version = 1.0` resolves as
// a number, but the model carries versions as strings. Quoting the version in
// the descriptor avoids the lossy float round trip ("1.0" comes back as "1").
func normalizeVersion(app map[string]any) {
	switch v := app["version"].(type) {
	case int64:
		app["version"] = strconv.FormatInt(v, 10)
	case float64:
		app["version"] = strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func normalizeIcons(section map[string]any) {
	if s, ok := section["icons"].(string); ok {
		section["icons"] = []any{s}
	}
}

func normalizeInputs(section map[string]any) {
	list, ok := section["inputs"].([]any)
	if !ok {
		return
	}
	for i, elem := range list {
		if s, ok := elem.(string); ok {
			m := parseMappingString(s)
			obj := map[string]any{"from": m.From}
			if m.To != "" {
				obj["to"] = m.To
			}
			list[i] = obj
		}
	}
}
