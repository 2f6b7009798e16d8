// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/facmod/facmod/pkg/modinfo"

	"github.com/charmbracelet/log"
)

type (
	// Builder runs the packaging pipeline for one project directory.
	// A Builder is not safe for concurrent use against the same destination
	// unless a LockFunc is configured.
	Builder struct {
		projectDir string
		logger     *log.Logger
		lock       LockFunc
		modTime    time.Time
	}

	// Option configures a Builder.
	Option func(*Builder)

	// LockFunc acquires exclusive access to an artifact path for the duration
	// of a build and returns the function releasing it.
	LockFunc func(artifactPath string) (release func(), err error)

	// Launcher starts the game after a deploy. Implementations must not wait
	// for the started process.
	Launcher interface {
		Launch(target string) error
	}

	// Artifact describes a finished build.
	Artifact struct {
		// Path is the absolute path of the zip file.
		Path string
		// Name is the artifact file name, {name}_{version}.zip.
		Name string
		// Root is the top-level archive directory, {name}_{version}.
		Root string
		// Files and Dirs count the entries written below Root.
		Files int
		Dirs  int
		// Size is the artifact size in bytes.
		Size int64
		// Replaced is true when a previous artifact was removed first.
		Replaced bool
	}
)

// WithLogger sets the logger used for progress output.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithLock serialises builds targeting the same artifact path.
func WithLock(fn LockFunc) Option {
	return func(b *Builder) {
		b.lock = fn
	}
}

// WithModTime stamps every archive entry with t.
func WithModTime(t time.Time) Option {
	return func(b *Builder) {
		b.modTime = t
	}
}

// NewBuilder returns a Builder for the project rooted at projectDir.
func NewBuilder(projectDir string, opts ...Option) *Builder {
	b := &Builder{
		projectDir: projectDir,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LocalDestination returns the local cache directory of the project.
func (b *Builder) LocalDestination() string {
	return filepath.Join(b.projectDir, LocalOutputDir)
}

// Build packages the project into destDir/{name}_{version}.zip.
// The manifest is read before anything on disk is touched. Any failure aborts
// the build and is returned unchanged.
func (b *Builder) Build(destDir string) (*Artifact, error) {
	manifest, err := modinfo.Read(b.projectDir)
	if err != nil {
		return nil, err
	}

	artifactName := manifest.ArtifactName()
	b.logger.Debug("read manifest", "name", manifest.Name, "version", manifest.Version)

	if b.lock != nil {
		target, absErr := filepath.Abs(filepath.Join(destDir, artifactName))
		if absErr != nil {
			return nil, newError(ErrDestinationUnwritable, destDir, absErr)
		}
		release, lockErr := b.lock(target)
		if lockErr != nil {
			return nil, newError(ErrDestinationUnwritable, target, lockErr)
		}
		defer release()
	}

	out, err := ResolveOutput(destDir, artifactName)
	if err != nil {
		return nil, err
	}
	if out.Existed {
		b.logger.Info("removed previous artifact", "path", out.Path)
	}

	var archiveOpts []ArchiveOption
	if !b.modTime.IsZero() {
		archiveOpts = append(archiveOpts, WithArchiveModTime(b.modTime))
	}
	w, err := CreateArchive(out.Path, archiveOpts...)
	if err != nil {
		return nil, err
	}

	if err := b.writeTree(w, manifest.ArchiveRoot(), artifactName); err != nil {
		w.Abort()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	artifact := &Artifact{
		Path:     out.Path,
		Name:     artifactName,
		Root:     manifest.ArchiveRoot(),
		Files:    w.Files(),
		Dirs:     w.Dirs() - 1,
		Replaced: out.Existed,
	}
	if info, statErr := os.Stat(out.Path); statErr == nil {
		artifact.Size = info.Size()
	}

	b.logger.Debug("artifact written", "path", artifact.Path, "files", artifact.Files, "dirs", artifact.Dirs, "size", artifact.Size)
	return artifact, nil
}

// writeTree emits the versioned root marker, then walks the project in
// lexical order writing every entry that survives Exclude.
func (b *Builder) writeTree(w *ArchiveWriter, root, artifactName string) error {
	// Versioned {name}_{version}/ prefix directory; the traversal root itself never gets an entry.
	if err := w.WriteEntry(Entry{Kind: EntryDir, Source: b.projectDir, Path: root}); err != nil {
		return err
	}

	return filepath.WalkDir(b.projectDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return newError(ErrEntryWriteFailed, path, walkErr)
		}

		isRoot := path == b.projectDir
		if Exclude(d.Name(), isRoot, artifactName) {
			b.logger.Debug("excluded", "path", path)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(b.projectDir, path)
		if err != nil {
			return newError(ErrEntryWriteFailed, path, err)
		}
		archivePath, ok := ArchivePath(root, rel)
		if !ok {
			return nil
		}

		kind, err := entryKind(path, d)
		if err != nil {
			return err
		}

		b.logger.Debug("adding", "kind", kind, "entry", archivePath)
		return w.WriteEntry(Entry{Kind: kind, Source: path, Path: archivePath})
	})
}

// entryKind classifies a walked entry. Symlinks are classified by their
// target and never descended into.
func entryKind(path string, d fs.DirEntry) (EntryKind, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		if d.IsDir() {
			return EntryDir, nil
		}
		return EntryFile, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, newError(ErrEntryWriteFailed, path, fmt.Errorf("resolve symlink: %w", err))
	}
	if info.IsDir() {
		return EntryDir, nil
	}
	return EntryFile, nil
}

// Deploy builds into destDir and then asks l to start target. A launch
// failure is reported alongside the finished artifact, which is kept.
func (b *Builder) Deploy(destDir string, l Launcher, target string) (*Artifact, error) {
	artifact, err := b.Build(destDir)
	if err != nil {
		return nil, err
	}

	if l == nil {
		return artifact, nil
	}
	b.logger.Debug("launching", "target", target)
	if err := l.Launch(target); err != nil {
		return artifact, newError(ErrLaunchFailed, target, err)
	}
	return artifact, nil
}

// IsLaunchFailure reports whether err came from the launch step of a deploy.
func IsLaunchFailure(err error) bool {
	return errors.Is(err, ErrLaunchFailed)
}
