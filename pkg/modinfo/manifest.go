// SPDX-License-Identifier: MPL-2.0

package modinfo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileName is the fixed name of the manifest at the project root.
const FileName = "info.json"

var (
	// ErrManifestMissing is returned when info.json cannot be opened.
	ErrManifestMissing = errors.New("manifest missing")
	// ErrManifestMalformed is returned when info.json is not a JSON object.
	ErrManifestMalformed = errors.New("manifest malformed")
	// ErrManifestFieldInvalid is returned when "name" or "version" is absent or not a string.
	ErrManifestFieldInvalid = errors.New("manifest field invalid")
)

type (
	// Manifest is the identity of a mod project.
	Manifest struct {
		// Name is the packaging identifier, used verbatim in paths and file names.
		Name string
		// Version is used verbatim and never parsed.
		Version string
	}

	// ManifestError describes a failure to read the manifest.
	// It unwraps to both its Kind sentinel and the underlying cause.
	ManifestError struct {
		Kind  error
		Path  string
		Field string
		Err   error
	}
)

// ArchiveRoot returns the top-level directory name used inside the artifact.
func (m *Manifest) ArchiveRoot() string {
	return m.Name + "_" + m.Version
}

// ArtifactName returns the file name of the artifact produced for this manifest.
func (m *Manifest) ArtifactName() string {
	return m.ArchiveRoot() + ".zip"
}

// Read loads dir/info.json and extracts the name and version fields.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)

	f, err := os.Open(path)
	if err != nil {
		return nil, &ManifestError{Kind: ErrManifestMissing, Path: path, Err: err}
	}
	defer f.Close()

	var doc map[string]any
	dec := json.NewDecoder(f)
	if err := dec.Decode(&doc); err != nil {
		return nil, &ManifestError{Kind: ErrManifestMalformed, Path: path, Err: err}
	}
	// The document must be a single JSON value; only whitespace may follow.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &ManifestError{Kind: ErrManifestMalformed, Path: path, Err: fmt.Errorf("unexpected content after JSON value at offset %d", dec.InputOffset())}
	}
	if doc == nil {
		return nil, &ManifestError{Kind: ErrManifestMalformed, Path: path, Err: errors.New("document is null")}
	}

	name, err := stringField(doc, path, "name")
	if err != nil {
		return nil, err
	}
	version, err := stringField(doc, path, "version")
	if err != nil {
		return nil, err
	}

	return &Manifest{Name: name, Version: version}, nil
}

func stringField(doc map[string]any, path, field string) (string, error) {
	raw, ok := doc[field]
	if !ok {
		return "", &ManifestError{Kind: ErrManifestFieldInvalid, Path: path, Field: field, Err: errors.New("field is missing")}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ManifestError{Kind: ErrManifestFieldInvalid, Path: path, Field: field, Err: fmt.Errorf("expected string, got %s", jsonType(raw))}
	}
	return s, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Error implements the error interface.
func (e *ManifestError) Error() string {
	msg := e.Kind.Error() + ": " + e.Path
	if e.Field != "" {
		msg += ": field " + fmt.Sprintf("%q", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the kind sentinel and the cause for errors.Is/As.
func (e *ManifestError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
