// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/template"
	"time"

	"github.com/facmod/facmod/pkg/modinfo"
	"github.com/facmod/facmod/pkg/platform"

	"github.com/go-git/go-git/v5"
	"golang.org/x/mod/semver"
)

const (
	// DefaultVersion is the version of a freshly scaffolded mod.
	DefaultVersion = "0.1.0"
	// DefaultFactorioVersion is the game version written to info.json.
	DefaultFactorioVersion = "2.0"
	// DefaultAuthor is used when no author is configured.
	DefaultAuthor = "unknown"

	// changelogDateLayout is the dd.mm.yyyy date Factorio changelogs use.
	changelogDateLayout = "02.01.2006"
)

var (
	// ErrInvalidName is returned for names Factorio or the filesystem rejects.
	ErrInvalidName = errors.New("invalid mod name")
	// ErrInvalidVersion is returned for versions that are not MAJOR.MINOR.PATCH.
	ErrInvalidVersion = errors.New("invalid mod version")
	// ErrTargetExists is returned when the mod directory already exists.
	ErrTargetExists = errors.New("target directory already exists")

	namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	//go:embed templates/*.tmpl
	templateFS embed.FS

	templates = template.Must(template.New("").
			Funcs(template.FuncMap{"json": jsonString}).
			ParseFS(templateFS, "templates/*.tmpl"))

	// files maps template names to the paths they render to, in creation order.
	files = []struct {
		template string
		path     string
	}{
		{"info.json.tmpl", modinfo.FileName},
		{"changelog.txt.tmpl", "changelog.txt"},
		{"data.lua.tmpl", "data.lua"},
		{"control.lua.tmpl", "control.lua"},
		{"gitignore.tmpl", ".gitignore"},
	}
)

type (
	// Options describes the mod to create.
	Options struct {
		// Name is the mod's internal name and directory name.
		Name string
		// Title defaults to Name.
		Title string
		// Author defaults to DefaultAuthor.
		Author string
		// Description defaults to Name.
		Description string
		// Version defaults to DefaultVersion.
		Version string
		// FactorioVersion defaults to DefaultFactorioVersion.
		FactorioVersion string
		// ParentDir is where the mod directory is created. Defaults to ".".
		ParentDir string
		// GitInit initialises a git repository in the new directory.
		GitInit bool
		// Now stamps the changelog. Defaults to time.Now.
		Now func() time.Time
	}

	// Result reports what Create produced.
	Result struct {
		// Dir is the absolute path of the new mod directory.
		Dir string
		// Files lists the created files relative to Dir, in creation order.
		Files []string
		// GitInitialized is true when a repository was created.
		GitInitialized bool
	}

	templateData struct {
		Name            string
		Title           string
		Author          string
		Description     string
		Version         string
		FactorioVersion string
		Date            string
	}
)

// ValidateName checks name against the characters Factorio accepts in a mod
// name and against names Windows cannot store.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w %q: use only letters, digits, '_' and '-'", ErrInvalidName, name)
	}
	if platform.IsWindowsReservedName(name) {
		return fmt.Errorf("%w %q: reserved file name on Windows", ErrInvalidName, name)
	}
	return nil
}

// ValidateVersion checks that version is a plain MAJOR.MINOR.PATCH triple.
func ValidateVersion(version string) error {
	v := "v" + version
	if !semver.IsValid(v) || semver.Canonical(v) != v || semver.Prerelease(v) != "" {
		return fmt.Errorf("%w %q: expected MAJOR.MINOR.PATCH", ErrInvalidVersion, version)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = o.Name
	}
	if o.Description == "" {
		o.Description = o.Name
	}
	if o.Author == "" {
		o.Author = DefaultAuthor
	}
	if o.Version == "" {
		o.Version = DefaultVersion
	}
	if o.FactorioVersion == "" {
		o.FactorioVersion = DefaultFactorioVersion
	}
	if o.ParentDir == "" {
		o.ParentDir = "."
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Create scaffolds a new mod in ParentDir/Name. It refuses to touch an
// existing directory. When a later step fails the partially created
// directory is removed.
func Create(opts Options) (result *Result, err error) {
	opts = opts.withDefaults()

	if err := ValidateName(opts.Name); err != nil {
		return nil, err
	}
	if err := ValidateVersion(opts.Version); err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(filepath.Join(opts.ParentDir, opts.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mod directory: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrTargetExists, dir)
		}
		return nil, fmt.Errorf("failed to create mod directory: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(dir)
		}
	}()

	if err := os.Mkdir(filepath.Join(dir, "prototypes"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create prototypes directory: %w", err)
	}

	data := templateData{
		Name:            opts.Name,
		Title:           opts.Title,
		Author:          opts.Author,
		Description:     opts.Description,
		Version:         opts.Version,
		FactorioVersion: opts.FactorioVersion,
		Date:            opts.Now().Format(changelogDateLayout),
	}

	result = &Result{Dir: dir}
	for _, f := range files {
		if err := renderFile(filepath.Join(dir, f.path), f.template, data); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, f.path)
	}

	if opts.GitInit {
		if _, err := git.PlainInit(dir, false); err != nil {
			return nil, fmt.Errorf("failed to initialise git repository: %w", err)
		}
		result.GitInitialized = true
	}

	return result, nil
}

func renderFile(path, name string, data templateData) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func jsonString(s string) (string, error) {
	b, err := json.Marshal(s)
	return string(b), err
}
