// SPDX-License-Identifier: MPL-2.0

// Package modinfo reads the identity of a mod project from its info.json.
//
// Only the two fields needed to name an artifact are extracted: "name" and
// "version". Both are used verbatim; the version is not parsed as semver.
package modinfo
