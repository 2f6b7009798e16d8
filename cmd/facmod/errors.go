// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/facmod/facmod/internal/issue"
	"github.com/facmod/facmod/internal/scaffold"
	"github.com/facmod/facmod/pkg/modinfo"
	"github.com/facmod/facmod/pkg/modpack"
	"github.com/facmod/facmod/pkg/types"
)

// issueFor maps a failure to its issue catalog entry, or 0 when none applies.
func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.IssueID != 0 {
		return ae.IssueID
	}

	switch {
	case errors.Is(err, modinfo.ErrManifestMissing):
		return issue.ManifestMissingId
	case errors.Is(err, modinfo.ErrManifestMalformed):
		return issue.ManifestMalformedId
	case errors.Is(err, modinfo.ErrManifestFieldInvalid):
		return issue.ManifestFieldInvalidId
	case errors.Is(err, modpack.ErrDestinationUnwritable),
		errors.Is(err, modpack.ErrStaleArtifactRemovalFailed):
		return issue.DestinationUnwritableId
	case errors.Is(err, modpack.ErrArtifactCreateFailed),
		errors.Is(err, modpack.ErrEntryWriteFailed),
		errors.Is(err, modpack.ErrArchiveFinalizeFailed):
		return issue.ArchiveWriteFailedId
	case errors.Is(err, modpack.ErrLaunchFailed):
		return issue.LaunchFailedId
	case errors.Is(err, scaffold.ErrInvalidName),
		errors.Is(err, scaffold.ErrInvalidVersion),
		errors.Is(err, scaffold.ErrTargetExists):
		return issue.ScaffoldFailedId
	default:
		return 0
	}
}

// buildFailure wraps a packaging error for display and exit code 2.
func buildFailure(err error, projectDir string) error {
	ctx := issue.NewErrorContext().
		WithOperation("build mod").
		WithResource(projectDir).
		WithIssue(issueFor(err)).
		Wrap(err)

	switch {
	case errors.Is(err, modinfo.ErrManifestMissing):
		ctx.WithSuggestion("Run facmod from the mod directory, next to info.json")
	case errors.Is(err, modinfo.ErrManifestMalformed), errors.Is(err, modinfo.ErrManifestFieldInvalid):
		ctx.WithSuggestion(`info.json needs string "name" and "version" fields`)
	case errors.Is(err, modpack.ErrDestinationUnwritable), errors.Is(err, modpack.ErrStaleArtifactRemovalFailed):
		ctx.WithSuggestion("Check permissions on the destination directory")
	case errors.Is(err, modpack.ErrEntryWriteFailed):
		ctx.WithSuggestion("Look for unreadable files or broken symbolic links")
	}

	return &ExitError{Code: types.ExitBuildFailed, Err: ctx.BuildError()}
}

// launchFailure wraps a launch error for display and exit code 3.
func launchFailure(err error, target string) error {
	return &ExitError{
		Code: types.ExitLaunchFailed,
		Err: issue.NewErrorContext().
			WithOperation("launch Factorio").
			WithResource(target).
			WithSuggestions(
				"The mod is installed; start Factorio manually",
				"Set factorio.launch.command in the config file to use a different launcher",
			).
			WithIssue(issue.LaunchFailedId).
			Wrap(err).
			BuildError(),
	}
}
