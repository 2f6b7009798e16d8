// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// Entry kinds.
const (
	EntryFile EntryKind = iota + 1
	EntryDir
)

type (
	// EntryKind discriminates file entries from directory markers.
	EntryKind int

	// Entry is one record to be written into the artifact.
	Entry struct {
		Kind EntryKind
		// Source is the filesystem path read for file entries.
		Source string
		// Path is the archive path, without a trailing slash for directories.
		Path string
	}

	// ArchiveWriter streams entries into a zip file. It owns the output file
	// handle from CreateArchive until Close or Abort.
	ArchiveWriter struct {
		path    string
		file    *os.File
		zw      *zip.Writer
		modTime time.Time
		files   int
		dirs    int
		closed  bool
	}

	// ArchiveOption configures an ArchiveWriter.
	ArchiveOption func(*ArchiveWriter)
)

// String returns the kind name.
func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDir:
		return "dir"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// WithArchiveModTime stamps every entry with t instead of the source
// modification time, so rebuilding an unchanged tree yields identical bytes.
func WithArchiveModTime(t time.Time) ArchiveOption {
	return func(w *ArchiveWriter) {
		w.modTime = t
	}
}

// CreateArchive creates the artifact file at path and prepares a zip writer on it.
func CreateArchive(path string, opts ...ArchiveOption) (*ArchiveWriter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, newError(ErrArtifactCreateFailed, path, err)
	}

	w := &ArchiveWriter{
		path: path,
		file: f,
		zw:   zip.NewWriter(f),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// WriteEntry appends e to the archive. File contents are streamed from disk.
func (w *ArchiveWriter) WriteEntry(e Entry) error {
	if w.closed {
		return newError(ErrEntryWriteFailed, e.Path, fs.ErrClosed)
	}
	if e.Path == "" {
		return nil
	}

	switch e.Kind {
	case EntryDir:
		return w.writeDir(e)
	case EntryFile:
		return w.writeFile(e)
	default:
		return newError(ErrEntryWriteFailed, e.Path, fmt.Errorf("unknown entry kind %s", e.Kind))
	}
}

func (w *ArchiveWriter) writeDir(e Entry) error {
	header := &zip.FileHeader{
		Name:   e.Path + "/",
		Method: zip.Store,
	}
	header.SetMode(fs.ModeDir | 0o755)
	if !w.modTime.IsZero() {
		header.Modified = w.modTime
	} else if e.Source != "" {
		if info, err := os.Stat(e.Source); err == nil {
			header.Modified = info.ModTime()
		}
	}

	if _, err := w.zw.CreateHeader(header); err != nil {
		return newError(ErrEntryWriteFailed, e.Path, err)
	}
	w.dirs++
	return nil
}

func (w *ArchiveWriter) writeFile(e Entry) (err error) {
	src, err := os.Open(e.Source)
	if err != nil {
		return newError(ErrEntryWriteFailed, e.Source, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = newError(ErrEntryWriteFailed, e.Source, closeErr)
		}
	}()

	info, err := src.Stat()
	if err != nil {
		return newError(ErrEntryWriteFailed, e.Source, err)
	}
	if !info.Mode().IsRegular() {
		return newError(ErrEntryWriteFailed, e.Source, fmt.Errorf("not a regular file (mode %s)", info.Mode()))
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return newError(ErrEntryWriteFailed, e.Source, err)
	}
	header.Name = e.Path
	header.Method = zip.Deflate
	if !w.modTime.IsZero() {
		header.Modified = w.modTime
	}

	dst, err := w.zw.CreateHeader(header)
	if err != nil {
		return newError(ErrEntryWriteFailed, e.Path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return newError(ErrEntryWriteFailed, e.Source, err)
	}

	w.files++
	return nil
}

// Files returns the number of file entries written so far.
func (w *ArchiveWriter) Files() int { return w.files }

// Dirs returns the number of directory markers written so far.
func (w *ArchiveWriter) Dirs() int { return w.dirs }

// Close writes the zip central directory and closes the output file.
func (w *ArchiveWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	zipErr := w.zw.Close()
	fileErr := w.file.Close()
	if zipErr != nil {
		return newError(ErrArchiveFinalizeFailed, w.path, zipErr)
	}
	if fileErr != nil {
		return newError(ErrArchiveFinalizeFailed, w.path, fileErr)
	}
	return nil
}

// Abort releases the output file after a failed write. The partial artifact
// stays on disk; the next build clears it.
func (w *ArchiveWriter) Abort() {
	if w.closed {
		return
	}
	w.closed = true
	_ = w.file.Close() // best-effort: the build already failed
}
