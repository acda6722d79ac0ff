// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a well-known failure mode with longer-form help.
type Id int

const (
	DescriptorNotFoundId Id = iota + 1
	DescriptorParseErrorId
	UnknownMachineId
	ConfigLoadFailedId
)

// MarkdownMsg is help text in markdown, rendered with glamour for display.
type MarkdownMsg string

// Issue pairs a failure mode with its rendered help text.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render returns the issue's help text rendered for the terminal.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// render is swappable in tests.
var render = glamour.Render

var (
	descriptorNotFoundIssue = &Issue{
		id: DescriptorNotFoundId,
		mdMsg: `
# No descriptor found!

We looked for a packaging descriptor but couldn't find one.

## Search locations (in order):
1. The path given on the command line
2. ` + "`conveyor.conf`" + ` in the current directory

## Things you can try:
- Create a starter descriptor:
~~~
$ packvet init
~~~

- Or point packvet at the file explicitly:
~~~
$ packvet check path/to/conveyor.conf
~~~`,
	}

	descriptorParseErrorIssue = &Issue{
		id: DescriptorParseErrorId,
		mdMsg: `
# Failed to parse the descriptor!

The descriptor contains a syntax error or an unresolvable substitution.

## Common causes:
- Unquoted URLs — everything after ` + "`//`" + ` is a comment, so quote them
- A ` + "`${path}`" + ` substitution naming a key that doesn't exist
- Substitution cycles (a = ` + "`${b}`" + `, b = ` + "`${a}`" + `)
- Unbalanced braces or brackets

## Things you can try:
- Check the file and line in the error message above
- Render the resolved document to see what packvet sees:
~~~
$ packvet render
~~~

## Example of a minimal valid descriptor:
~~~
app {
  display-name = "My App"
  fsname = my-app
  version = "1.0.0"
  vcs-url = "https://github.com/user/my-app"
  machines = [ mac.aarch64, windows.amd64 ]
  icons = "icons/icon-*.png"
  site.github.oauth-token = ${env.GITHUB_TOKEN}
}
conveyor.compatibility-level = 18
~~~`,
	}

	unknownMachineIssue = &Issue{
		id: UnknownMachineId,
		mdMsg: `
# Unknown machine identifier!

A machine in ` + "`app.machines`" + ` is not in the known target set.

## Known identifiers:
~~~
$ packvet machines
~~~

Linux targets need a libc suffix (` + "`linux.amd64.glibc`" + `), though the
bare form is accepted as an alias for glibc.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load packvet's configuration!

Your ` + "`config.cue`" + ` could not be read or didn't validate.

## Things you can try:
- Show the effective configuration and its source:
~~~
$ packvet config show
~~~

- Check the schema error above for the offending field
- Move the file aside to fall back to defaults`,
	}
)

var issues = map[Id]*Issue{
	DescriptorNotFoundId:   descriptorNotFoundIssue,
	DescriptorParseErrorId: descriptorParseErrorIssue,
	UnknownMachineId:       unknownMachineIssue,
	ConfigLoadFailedId:     configLoadFailedIssue,
}

// Lookup returns the Issue for an Id, or nil when none is registered.
func Lookup(id Id) *Issue {
	return issues[id]
}

// All returns every registered issue, sorted by Id.
func All() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}
