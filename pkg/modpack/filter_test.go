// SPDX-License-Identifier: MPL-2.0

package modpack

import "testing"

func TestExclude(t *testing.T) {
	t.Parallel()

	const artifact = "test_mod_1.0.0.zip"

	tests := []struct {
		name   string
		entry  string
		isRoot bool
		want   bool
	}{
		{name: "regular file", entry: "data.lua", want: false},
		{name: "regular directory", entry: "prototypes", want: false},
		{name: "artifact itself", entry: artifact, want: true},
		{name: "other zip", entry: "test_mod_0.9.0.zip", want: false},
		{name: "git directory", entry: ".git", want: true},
		{name: "dotfile", entry: ".gitignore", want: true},
		{name: "root marker", entry: ".", isRoot: true, want: false},
		{name: "hidden root directory name", entry: ".workspace", isRoot: true, want: false},
		{name: "local output directory", entry: "build", want: true},
		{name: "build prefix is kept", entry: "builder.lua", want: false},
		{name: "dot inside name", entry: "info.json", want: false},
		{name: "dot dot is hidden", entry: "..", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Exclude(tt.entry, tt.isRoot, artifact); got != tt.want {
				t.Errorf("Exclude(%q, %v) = %v, want %v", tt.entry, tt.isRoot, got, tt.want)
			}
		})
	}
}
