// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error presentation: structured
// ActionableError values with operation/resource/suggestion context, and a
// catalog of known issues rendered as markdown cards.
package issue
