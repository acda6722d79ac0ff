// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error presentation: ActionableError
// wraps failures with the operation, resource, and fix suggestions, and the
// Issue registry renders longer-form help for well-known failure modes as
// markdown in the terminal.
package issue
