// SPDX-License-Identifier: MPL-2.0

// Package modpack packages a mod project directory into a versioned zip artifact.
//
// A build reads the project's identity (see package modinfo), prepares the
// destination path, walks the project tree, and streams every entry that
// survives the exclusion policy into a deflate-compressed zip. Every entry
// lives under a single top-level directory named {name}_{version}:
//
//	b := modpack.NewBuilder(projectDir, modpack.WithLogger(logger))
//	artifact, err := b.Build(filepath.Join(projectDir, modpack.LocalOutputDir))
//
// Builds are synchronous and abort on the first failure. Rebuilding replaces
// any previous artifact at the same path rather than merging into it.
package modpack
