// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/facmod/facmod/pkg/modinfo"
)

const testManifest = `{"name":"test_mod","version":"1.0.0","title":"Test mod"}`

type recordingLauncher struct {
	targets []string
	err     error
}

func (l *recordingLauncher) Launch(target string) error {
	l.targets = append(l.targets, target)
	return l.err
}

// createProject writes files (slash-separated relative paths) under a new
// temporary project root. Paths ending in "/" become empty directories.
func createProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// readArchive returns entry name -> content for the zip at path.
func readArchive(t *testing.T, path string) map[string][]byte {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer r.Close()

	out := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = data
	}
	return out
}

func entryNames(entries map[string][]byte) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func TestBuild_ExampleProject(t *testing.T) {
	t.Parallel()

	root := createProject(t, map[string]string{
		"info.json":          testManifest,
		"data.lua":           "-- data",
		"control.lua":        "-- control",
		".git/HEAD":          "ref: refs/heads/main\n",
		".gitignore":         "build/\n",
		"build/stale.zip":    "old",
		"build/test_mod.txt": "old",
	})

	b := NewBuilder(root)
	artifact, err := b.Build(b.LocalDestination())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	wantPath := filepath.Join(root, "build", "test_mod_1.0.0.zip")
	if artifact.Path != wantPath {
		t.Errorf("artifact.Path = %q, want %q", artifact.Path, wantPath)
	}
	if artifact.Name != "test_mod_1.0.0.zip" || artifact.Root != "test_mod_1.0.0" {
		t.Errorf("artifact = %+v", artifact)
	}
	if artifact.Files != 3 || artifact.Dirs != 0 {
		t.Errorf("Files=%d Dirs=%d, want 3 and 0", artifact.Files, artifact.Dirs)
	}
	if artifact.Size == 0 {
		t.Error("artifact.Size = 0")
	}

	got := entryNames(readArchive(t, artifact.Path))
	want := []string{
		"test_mod_1.0.0/",
		"test_mod_1.0.0/control.lua",
		"test_mod_1.0.0/data.lua",
		"test_mod_1.0.0/info.json",
	}
	if !slices.Equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestBuild_EntrySetMatchesTree(t *testing.T) {
	t.Parallel()

	root := createProject(t, map[string]string{
		"info.json":                     testManifest,
		"prototypes/item.lua":           "item",
		"prototypes/recipes/recipe.lua": "recipe",
		"graphics/":                     "",
		"locale/en/strings.cfg":         "[mod-name]\ntest_mod=Test\n",
	})

	artifact, err := NewBuilder(root).Build(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	got := entryNames(readArchive(t, artifact.Path))
	want := []string{
		"test_mod_1.0.0/",
		"test_mod_1.0.0/graphics/",
		"test_mod_1.0.0/info.json",
		"test_mod_1.0.0/locale/",
		"test_mod_1.0.0/locale/en/",
		"test_mod_1.0.0/locale/en/strings.cfg",
		"test_mod_1.0.0/prototypes/",
		"test_mod_1.0.0/prototypes/item.lua",
		"test_mod_1.0.0/prototypes/recipes/",
		"test_mod_1.0.0/prototypes/recipes/recipe.lua",
	}
	if !slices.Equal(got, want) {
		t.Errorf("entries = %v\nwant %v", got, want)
	}
}

func TestBuild_ExcludesHiddenAndBuildAtAnyDepth(t *testing.T) {
	t.Parallel()

	root := createProject(t, map[string]string{
		"info.json":                   testManifest,
		"src/.hidden/secret.lua":      "x",
		"src/.env":                    "x",
		"src/build/generated.lua":     "x",
		"src/deep/build/nested.lua":   "x",
		"src/deep/kept.lua":           "kept",
		"assets/test_mod_1.0.0.zip":   "self",
		"assets/test_mod_0.1.0.zip":   "older",
		".vscode/settings.json":       "{}",
		"src/deep/.DS_Store":          "x",
		"src/deep/builder/helper.lua": "kept",
	})

	artifact, err := NewBuilder(root).Build(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	for _, name := range entryNames(readArchive(t, artifact.Path)) {
		rel := strings.TrimPrefix(name, "test_mod_1.0.0/")
		for _, seg := range strings.Split(strings.TrimSuffix(rel, "/"), "/") {
			if strings.HasPrefix(seg, ".") || seg == "build" || seg == "test_mod_1.0.0.zip" {
				t.Errorf("excluded segment %q packaged in %q", seg, name)
			}
		}
	}

	entries := readArchive(t, artifact.Path)
	for _, name := range []string{
		"test_mod_1.0.0/src/deep/kept.lua",
		"test_mod_1.0.0/src/deep/builder/helper.lua",
		"test_mod_1.0.0/assets/test_mod_0.1.0.zip",
	} {
		if _, ok := entries[name]; !ok {
			t.Errorf("missing entry %q", name)
		}
	}
}

func TestBuild_RoundTripFidelity(t *testing.T) {
	t.Parallel()

	binary := make([]byte, 64*1024)
	for i := range binary {
		binary[i] = byte(i * 31)
	}
	files := map[string]string{
		"info.json":            testManifest,
		"graphics/icon.png":    string(binary),
		"locale/en/locale.cfg": "[item-name]\nwidget=Widget\n",
		"empty.lua":            "",
	}
	root := createProject(t, files)

	artifact, err := NewBuilder(root).Build(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	entries := readArchive(t, artifact.Path)
	for rel, content := range files {
		got, ok := entries["test_mod_1.0.0/"+rel]
		if !ok {
			t.Errorf("missing %s", rel)
			continue
		}
		if !bytes.Equal(got, []byte(content)) {
			t.Errorf("%s: content differs after round trip (%d vs %d bytes)", rel, len(got), len(content))
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	root := createProject(t, map[string]string{
		"info.json":     testManifest,
		"data.lua":      "-- data",
		"prototypes/a":  "a",
		"prototypes/b/": "",
	})
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := NewBuilder(root, WithModTime(stamp))

	first, err := b.Build(b.LocalDestination())
	if err != nil {
		t.Fatalf("first Build() error: %v", err)
	}
	firstBytes, err := os.ReadFile(first.Path)
	if err != nil {
		t.Fatal(err)
	}
	firstEntries := readArchive(t, first.Path)

	second, err := b.Build(b.LocalDestination())
	if err != nil {
		t.Fatalf("second Build() error: %v", err)
	}
	if !second.Replaced {
		t.Error("second build did not report replacing the first artifact")
	}
	secondBytes, err := os.ReadFile(second.Path)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(entryNames(firstEntries), entryNames(readArchive(t, second.Path))) {
		t.Error("entry sets differ between builds")
	}
	if !bytes.Equal(firstBytes, secondBytes) {
		t.Error("artifacts with a fixed modification time differ between builds")
	}
}

func TestBuild_ReplacesStaleArtifact(t *testing.T) {
	t.Parallel()

	t.Run("stale file", func(t *testing.T) {
		t.Parallel()

		root := createProject(t, map[string]string{"info.json": testManifest, "data.lua": "new"})
		dest := t.TempDir()
		if err := os.WriteFile(filepath.Join(dest, "test_mod_1.0.0.zip"), []byte("garbage"), 0o644); err != nil {
			t.Fatal(err)
		}

		artifact, err := NewBuilder(root).Build(dest)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if !artifact.Replaced {
			t.Error("Replaced = false")
		}
		if got := readArchive(t, artifact.Path)["test_mod_1.0.0/data.lua"]; string(got) != "new" {
			t.Errorf("data.lua = %q", got)
		}
	})

	t.Run("stale directory", func(t *testing.T) {
		t.Parallel()

		root := createProject(t, map[string]string{"info.json": testManifest})
		dest := t.TempDir()
		staleDir := filepath.Join(dest, "test_mod_1.0.0.zip", "leftover")
		if err := os.MkdirAll(staleDir, 0o755); err != nil {
			t.Fatal(err)
		}

		artifact, err := NewBuilder(root).Build(dest)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		info, err := os.Stat(artifact.Path)
		if err != nil || !info.Mode().IsRegular() {
			t.Fatalf("artifact is not a regular file: %v", err)
		}
		for name := range readArchive(t, artifact.Path) {
			if strings.Contains(name, "leftover") {
				t.Errorf("stale entry %q leaked into the artifact", name)
			}
		}
	})
}

func TestBuild_ManifestErrorsTouchNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{name: "missing manifest", files: map[string]string{"data.lua": "x"}, wantErr: modinfo.ErrManifestMissing},
		{name: "malformed manifest", files: map[string]string{"info.json": "{"}, wantErr: modinfo.ErrManifestMalformed},
		{name: "missing version", files: map[string]string{"info.json": `{"name":"x"}`}, wantErr: modinfo.ErrManifestFieldInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := createProject(t, tt.files)
			locked := false
			b := NewBuilder(root, WithLock(func(string) (func(), error) {
				locked = true
				return func() {}, nil
			}))

			_, err := b.Build(b.LocalDestination())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
			if _, statErr := os.Lstat(b.LocalDestination()); !os.IsNotExist(statErr) {
				t.Errorf("destination created despite manifest failure: %v", statErr)
			}
			if locked {
				t.Error("lock acquired despite manifest failure")
			}
		})
	}
}

func TestBuild_BrokenSymlinkAborts(t *testing.T) {
	t.Parallel()

	root := createProject(t, map[string]string{"info.json": testManifest})
	if err := os.Symlink(filepath.Join(root, "does-not-exist"), filepath.Join(root, "dangling.lua")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := NewBuilder(root).Build(filepath.Join(t.TempDir(), "out"))
	if !errors.Is(err, ErrEntryWriteFailed) {
		t.Fatalf("Build() error = %v, want ErrEntryWriteFailed", err)
	}
	var pe *Error
	if !errors.As(err, &pe) || !strings.HasSuffix(pe.Path, "dangling.lua") {
		t.Errorf("error does not name the failing entry: %v", err)
	}
}

func TestBuild_SymlinkedFileIsPackagedByContent(t *testing.T) {
	t.Parallel()

	root := createProject(t, map[string]string{"info.json": testManifest})
	target := filepath.Join(t.TempDir(), "shared.lua")
	if err := os.WriteFile(target, []byte("shared"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, filepath.Join(root, "shared.lua")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	artifact, err := NewBuilder(root).Build(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := readArchive(t, artifact.Path)["test_mod_1.0.0/shared.lua"]; string(got) != "shared" {
		t.Errorf("shared.lua = %q, want %q", got, "shared")
	}
}

func TestBuild_LockWrapsResolution(t *testing.T) {
	t.Parallel()

	root := createProject(t, map[string]string{"info.json": testManifest})
	dest := t.TempDir()

	var lockedPath string
	released := false
	b := NewBuilder(root, WithLock(func(p string) (func(), error) {
		lockedPath = p
		return func() { released = true }, nil
	}))
	if _, err := b.Build(dest); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if lockedPath != filepath.Join(dest, "test_mod_1.0.0.zip") {
		t.Errorf("locked %q", lockedPath)
	}
	if !released {
		t.Error("lock not released")
	}

	failing := NewBuilder(root, WithLock(func(string) (func(), error) {
		return nil, errors.New("busy")
	}))
	if _, err := failing.Build(dest); !errors.Is(err, ErrDestinationUnwritable) {
		t.Errorf("Build() with failing lock error = %v, want ErrDestinationUnwritable", err)
	}
}

func TestDeploy(t *testing.T) {
	t.Parallel()

	t.Run("launches after build", func(t *testing.T) {
		t.Parallel()

		root := createProject(t, map[string]string{"info.json": testManifest})
		mods := filepath.Join(t.TempDir(), "factorio", "mods")
		l := &recordingLauncher{}

		artifact, err := NewBuilder(root).Deploy(mods, l, "steam://rungameid/427520")
		if err != nil {
			t.Fatalf("Deploy() error: %v", err)
		}
		if filepath.Dir(artifact.Path) != mods {
			t.Errorf("artifact written to %q, want inside %q", artifact.Path, mods)
		}
		if !slices.Equal(l.targets, []string{"steam://rungameid/427520"}) {
			t.Errorf("launched %v", l.targets)
		}
	})

	t.Run("launch failure keeps the artifact", func(t *testing.T) {
		t.Parallel()

		root := createProject(t, map[string]string{"info.json": testManifest})
		mods := t.TempDir()
		l := &recordingLauncher{err: errors.New("no handler")}

		artifact, err := NewBuilder(root).Deploy(mods, l, "factorio")
		if !IsLaunchFailure(err) {
			t.Fatalf("Deploy() error = %v, want launch failure", err)
		}
		if artifact == nil {
			t.Fatal("artifact is nil after launch failure")
		}
		if _, statErr := os.Stat(artifact.Path); statErr != nil {
			t.Errorf("artifact removed after launch failure: %v", statErr)
		}
	})

	t.Run("build failure skips launch", func(t *testing.T) {
		t.Parallel()

		root := createProject(t, map[string]string{"data.lua": "x"})
		l := &recordingLauncher{}

		_, err := NewBuilder(root).Deploy(t.TempDir(), l, "factorio")
		if !errors.Is(err, modinfo.ErrManifestMissing) {
			t.Fatalf("Deploy() error = %v, want ErrManifestMissing", err)
		}
		if IsLaunchFailure(err) {
			t.Error("build failure reported as launch failure")
		}
		if len(l.targets) != 0 {
			t.Errorf("launcher called after failed build: %v", l.targets)
		}
	})
}
