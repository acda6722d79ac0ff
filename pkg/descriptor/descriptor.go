// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"github.com/packvet/packvet/pkg/confdoc"
)

type (
	// Descriptor is the fully resolved, typed packaging descriptor.
	Descriptor struct {
		// App holds the application metadata and packaging declarations.
		App App `json:"app"`
		// Conveyor holds tool-level settings, most importantly the
		// compatibility level the descriptor was written against.
		Conveyor ConveyorMeta `json:"conveyor,omitempty"`

		// FilePath is the descriptor file this was parsed from.
		FilePath string `json:"-"`
		// Raw is the resolved (but untyped) document tree, kept for checks
		// that need to see keys the typed model does not capture.
		Raw map[string]any `json:"-"`
		// EnvRefs lists the environment-variable references encountered
		// while resolving the document.
		EnvRefs []confdoc.EnvRef `json:"-"`
	}

	// ConveyorMeta carries tool-level settings.
	ConveyorMeta struct {
		// CompatibilityLevel pins the descriptor to a packaging tool schema
		// generation. Required; the tool refuses descriptors written for a
		// newer generation than it understands.
		CompatibilityLevel int `json:"compatibility-level,omitempty"`
	}

	// App is the application section of the descriptor.
	App struct {
		// DisplayName is the human-readable application name.
		DisplayName string `json:"display-name,omitempty"`
		// FSName is the name used on the filesystem: binaries, directories,
		// package file names. Lowercase letters, digits, dots and dashes.
		FSName string `json:"fsname,omitempty"`
		// Version is the release version, dotted integers.
		Version string `json:"version,omitempty"`
		// Revision distinguishes repackagings of the same version.
		Revision int `json:"revision,omitempty"`
		// VCSURL points at the source repository.
		VCSURL string `json:"vcs-url,omitempty"`
		// License is an SPDX license identifier.
		License string `json:"license,omitempty"`
		// RDNSName is the reverse-DNS identifier used by platform metadata
		// (bundle IDs, AppUserModelIDs). Derived from VCSURL when absent.
		RDNSName string `json:"rdns-name,omitempty"`
		// ContactEmail is the packager contact address.
		ContactEmail string `json:"contact-email,omitempty"`

		// Icons lists icon image paths or globs, shared by all targets
		// unless a per-OS section overrides them.
		Icons []string `json:"icons,omitempty"`
		// Machines enumerates the target machine identifiers.
		Machines []Machine `json:"machines,omitempty"`
		// Inputs maps local build outputs into the package, shared by all
		// targets; per-OS sections typically extend this list.
		Inputs []InputMapping `json:"inputs,omitempty"`

		// Site declares where packages and update metadata are published.
		Site Site `json:"site,omitempty"`

		// Mac, Windows, and Linux are per-OS overrides and extensions.
		Mac     *OSSection `json:"mac,omitempty"`
		Windows *OSSection `json:"windows,omitempty"`
		Linux   *OSSection `json:"linux,omitempty"`
	}

	// Site declares the publishing destination.
	Site struct {
		// GitHub publishes releases and update metadata to a GitHub repo.
		GitHub *GitHubSite `json:"github,omitempty"`
		// BaseURL overrides the download site URL for plain HTTP hosting.
		BaseURL string `json:"base-url,omitempty"`
		// CopyTo is an rsync-style destination for plain HTTP hosting.
		CopyTo string `json:"copy-to,omitempty"`
	}

	// GitHubSite configures GitHub-based publishing.
	GitHubSite struct {
		// OAuthToken authenticates release uploads. Descriptors reference it
		// via environment interpolation, never as a literal.
		OAuthToken string `json:"oauth-token,omitempty"`
		// PagesBranch is the branch serving the download site.
		PagesBranch string `json:"pages-branch,omitempty"`
	}

	// OSSection holds the per-OS packaging declarations.
	OSSection struct {
		// Inputs maps build outputs into the packaged layout for this OS,
		// e.g. `build/macos` into `Contents/MacOS` inside the app bundle.
		Inputs []InputMapping `json:"inputs,omitempty"`
		// Icons overrides the app-level icon set for this OS.
		Icons []string `json:"icons,omitempty"`
		// Amd64 and Aarch64 narrow inputs further per architecture.
		Amd64   *ArchSection `json:"amd64,omitempty"`
		Aarch64 *ArchSection `json:"aarch64,omitempty"`
	}

	// ArchSection holds per-architecture input mappings within an OS section.
	ArchSection struct {
		Inputs []InputMapping `json:"inputs,omitempty"`
	}
)

// Section returns the per-OS section for an OS segment ("mac", "windows",
// "linux"), or nil when the descriptor has none.
func (a *App) Section(os string) *OSSection {
	switch os {
	case OSMac:
		return a.Mac
	case OSWindows:
		return a.Windows
	case OSLinux:
		return a.Linux
	}
	return nil
}

// TargetOSes returns the distinct OS segments of the declared machines, in
// first-appearance order.
func (a *App) TargetOSes() []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range a.Machines {
		os := m.OS()
		if os == "" || seen[os] {
			continue
		}
		seen[os] = true
		out = append(out, os)
	}
	return out
}

// InputsFor returns the effective input mappings for an OS: the shared
// app-level inputs followed by the per-OS ones. Descriptors that extend the
// shared list via `${app.inputs} [...]` already carry the concatenation in
// the per-OS section; this helper is for descriptors that rely on implicit
// inheritance instead.
func (a *App) InputsFor(os string) []InputMapping {
	sec := a.Section(os)
	if sec == nil {
		return a.Inputs
	}
	if len(sec.Inputs) > 0 {
		return sec.Inputs
	}
	return a.Inputs
}
