// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/facmod/facmod/internal/testutil"
	"github.com/facmod/facmod/pkg/modinfo"
	"github.com/facmod/facmod/pkg/modpack"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
}

func TestCreate_Layout(t *testing.T) {
	parent := t.TempDir()

	res, err := Create(Options{Name: "my_mod", ParentDir: parent, Now: fixedNow})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	if res.Dir != filepath.Join(parent, "my_mod") {
		t.Errorf("Dir = %q", res.Dir)
	}
	wantFiles := []string{"info.json", "changelog.txt", "data.lua", "control.lua", ".gitignore"}
	if !slices.Equal(res.Files, wantFiles) {
		t.Errorf("Files = %v, want %v", res.Files, wantFiles)
	}
	for _, f := range wantFiles {
		if _, err := os.Stat(filepath.Join(res.Dir, f)); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}
	if info, err := os.Stat(filepath.Join(res.Dir, "prototypes")); err != nil || !info.IsDir() {
		t.Errorf("prototypes/ missing: %v", err)
	}
	if res.GitInitialized {
		t.Error("git repository should not be created unless requested")
	}
}

func TestCreate_ManifestContent(t *testing.T) {
	parent := t.TempDir()

	res, err := Create(Options{
		Name:        "quoted-mod",
		Title:       `The "Quoted" Mod`,
		Author:      "engineer",
		Description: "Line one\nline two",
		Version:     "1.2.3",
		ParentDir:   parent,
		Now:         fixedNow,
	})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	m, err := modinfo.Read(res.Dir)
	if err != nil {
		t.Fatalf("scaffolded manifest does not read back: %v", err)
	}
	if m.Name != "quoted-mod" || m.Version != "1.2.3" {
		t.Errorf("manifest = %+v", m)
	}

	data, err := os.ReadFile(filepath.Join(res.Dir, "info.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("info.json is not valid JSON: %v\n%s", err, data)
	}
	if doc["title"] != `The "Quoted" Mod` {
		t.Errorf("title = %v", doc["title"])
	}
	if doc["author"] != "engineer" {
		t.Errorf("author = %v", doc["author"])
	}
	if doc["factorio_version"] != DefaultFactorioVersion {
		t.Errorf("factorio_version = %v", doc["factorio_version"])
	}
}

func TestCreate_Defaults(t *testing.T) {
	res, err := Create(Options{Name: "plain", ParentDir: t.TempDir(), Now: fixedNow})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(res.Dir, "info.json"))
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["title"] != "plain" || doc["description"] != "plain" {
		t.Errorf("title/description should default to the name: %v", doc)
	}
	if doc["author"] != DefaultAuthor {
		t.Errorf("author = %v, want %q", doc["author"], DefaultAuthor)
	}
	if doc["version"] != DefaultVersion {
		t.Errorf("version = %v, want %q", doc["version"], DefaultVersion)
	}
}

func TestCreate_ChangelogDate(t *testing.T) {
	res, err := Create(Options{Name: "dated", ParentDir: t.TempDir(), Now: fixedNow})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dir, "changelog.txt"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Version: 0.1.0", "Date: 07.03.2024"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("changelog missing %q:\n%s", want, data)
		}
	}
}

func TestCreate_RefusesExistingDirectory(t *testing.T) {
	parent := t.TempDir()
	existing := filepath.Join(parent, "taken")
	testutil.MustWriteFile(t, filepath.Join(existing, "keep.txt"), "mine")

	_, err := Create(Options{Name: "taken", ParentDir: parent})
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(existing, "keep.txt"))
	if err != nil || string(data) != "mine" {
		t.Error("existing directory content was modified")
	}
	if _, err := os.Stat(filepath.Join(existing, "info.json")); !os.IsNotExist(err) {
		t.Error("info.json should not be written into an existing directory")
	}
}

func TestCreate_GitInit(t *testing.T) {
	res, err := Create(Options{Name: "versioned", ParentDir: t.TempDir(), GitInit: true})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}
	if !res.GitInitialized {
		t.Error("GitInitialized should be true")
	}
	if info, err := os.Stat(filepath.Join(res.Dir, ".git")); err != nil || !info.IsDir() {
		t.Errorf(".git directory missing: %v", err)
	}
}

func TestCreate_BuildsCleanly(t *testing.T) {
	res, err := Create(Options{Name: "roundtrip", ParentDir: t.TempDir(), GitInit: true, Now: fixedNow})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	b := modpack.NewBuilder(res.Dir)
	artifact, err := b.Build(b.LocalDestination())
	if err != nil {
		t.Fatalf("Build() returned error: %v", err)
	}

	got := testutil.ZipEntries(t, artifact.Path)
	want := []string{
		"roundtrip_0.1.0/",
		"roundtrip_0.1.0/changelog.txt",
		"roundtrip_0.1.0/control.lua",
		"roundtrip_0.1.0/data.lua",
		"roundtrip_0.1.0/info.json",
		"roundtrip_0.1.0/prototypes/",
	}
	if !slices.Equal(got, want) {
		t.Errorf("archive entries = %v, want %v", got, want)
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"my_mod", false},
		{"Mod-2", false},
		{"", true},
		{"has space", true},
		{"dot.name", true},
		{"../escape", true},
		{"con", true},
		{"LPT1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("error should wrap ErrInvalidName: %v", err)
			}
		})
	}
}

func TestValidateVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		wantErr bool
	}{
		{"0.1.0", false},
		{"10.20.30", false},
		{"1.0", true},
		{"1", true},
		{"v1.0.0", true},
		{"1.0.0-beta", true},
		{"1.0.0+build", true},
		{"01.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			err := ValidateVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidVersion) {
				t.Errorf("error should wrap ErrInvalidVersion: %v", err)
			}
		})
	}
}

func TestCreate_InvalidInputCreatesNothing(t *testing.T) {
	parent := t.TempDir()

	if _, err := Create(Options{Name: "bad name", ParentDir: parent}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := Create(Options{Name: "good", Version: "1.0", ParentDir: parent}); !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}

	entries, _ := os.ReadDir(parent)
	if len(entries) != 0 {
		t.Errorf("parent directory should stay empty, found %d entries", len(entries))
	}
}
