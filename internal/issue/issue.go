// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a registered Issue.
type Id int

const (
	ManifestMissingId Id = iota + 1
	ManifestMalformedId
	ManifestFieldInvalidId
	DestinationUnwritableId
	ArchiveWriteFailedId
	LaunchFailedId
	ConfigLoadFailedId
	ScaffoldFailedId
	ArchiveUnreadableId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue as terminal-styled Markdown. stylePath is a glamour
// style name ("dark", "light", "notty") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	manifestMissingIssue = &Issue{
		id: ManifestMissingId,
		mdMsg: `
# No info.json found!

Every Factorio mod needs an ` + "`info.json`" + ` manifest in its root directory.
facmod looks for it in the current working directory.

## Things you can try:
- Change into the mod directory before building:
~~~
$ cd path/to/my_mod
$ facmod build
~~~

- Or scaffold a new mod:
~~~
$ facmod new my_mod
~~~`,
		extLinks: []HttpLink{"https://wiki.factorio.com/Tutorial:Mod_structure#info.json"},
	}

	manifestMalformedIssue = &Issue{
		id: ManifestMalformedId,
		mdMsg: `
# info.json is not valid JSON!

The manifest could not be parsed, or its top level is not an object.

## Things you can try:
- Look for trailing commas or missing quotes near the reported position
- Make sure the file starts with ` + "`{`" + ` and ends with ` + "`}`" + `

## Minimal valid manifest:
~~~json
{
  "name": "my_mod",
  "version": "0.1.0",
  "title": "My Mod",
  "author": "me",
  "factorio_version": "2.0"
}
~~~`,
		extLinks: []HttpLink{"https://wiki.factorio.com/Tutorial:Mod_structure#info.json"},
	}

	manifestFieldInvalidIssue = &Issue{
		id: ManifestFieldInvalidId,
		mdMsg: `
# info.json is missing a required field!

Both ` + "`name`" + ` and ` + "`version`" + ` must be present and must be strings.
They are used verbatim to name the artifact ` + "`{name}_{version}.zip`" + `.

## Things you can try:
- Quote the version: ` + "`\"version\": \"1.0.0\"`" + `, not ` + "`\"version\": 1.0`" + `
- Check the field names for typos`,
	}

	destinationUnwritableIssue = &Issue{
		id: DestinationUnwritableId,
		mdMsg: `
# Cannot write the mod archive!

The output directory could not be created, or a stale artifact could not be removed.

## Things you can try:
- Check the permissions of the destination directory
- Close Factorio if it is holding the previous archive open
- Point ` + "`--mods-dir`" + ` at a directory you own`,
	}

	archiveWriteFailedIssue = &Issue{
		id: ArchiveWriteFailedId,
		mdMsg: `
# Packaging failed!

A file in the mod directory could not be read or added to the archive.
The partial archive was removed.

## Things you can try:
- Look for broken symbolic links in the mod directory
- Check that every file is readable
- Make sure the disk is not full`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# The mod was installed, but Factorio did not start!

The archive is in place; only the launch step failed.

## Things you can try:
- Start Factorio yourself, the mod is already in the mods directory
- Set a custom launch command:
~~~
$ export FACMOD_TARGET="/opt/factorio/bin/x64/factorio"
~~~

- Or configure it permanently in config.cue:
~~~cue
factorio: launch: command: "/opt/factorio/bin/x64/factorio"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The config file contains invalid CUE or values that do not match the schema.

## Things you can try:
- Show the effective configuration:
~~~
$ facmod config show
~~~

- Regenerate a default config file:
~~~
$ facmod config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	scaffoldFailedIssue = &Issue{
		id: ScaffoldFailedId,
		mdMsg: `
# Could not create the mod skeleton!

## Things you can try:
- Pick a directory name that does not exist yet
- Use only letters, digits, ` + "`_`" + ` and ` + "`-`" + ` in the mod name
- Pass a semantic version such as ` + "`--version 0.1.0`",
	}

	archiveUnreadableIssue = &Issue{
		id: ArchiveUnreadableId,
		mdMsg: `
# Cannot read the archive!

The file does not exist or is not a zip archive.

## Things you can try:
- Build the mod first:
~~~
$ facmod build
$ facmod inspect build/my_mod_0.1.0.zip
~~~`,
	}

	issues = map[Id]*Issue{
		manifestMissingIssue.Id():       manifestMissingIssue,
		manifestMalformedIssue.Id():     manifestMalformedIssue,
		manifestFieldInvalidIssue.Id():  manifestFieldInvalidIssue,
		destinationUnwritableIssue.Id(): destinationUnwritableIssue,
		archiveWriteFailedIssue.Id():    archiveWriteFailedIssue,
		launchFailedIssue.Id():          launchFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		scaffoldFailedIssue.Id():        scaffoldFailedIssue,
		archiveUnreadableIssue.Id():     archiveUnreadableIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
