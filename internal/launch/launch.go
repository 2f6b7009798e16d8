// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/facmod/facmod/pkg/platform"

	"mvdan.cc/sh/v3/shell"
)

// TargetEnv is the variable a launch command can reference to receive the
// launch target, e.g. "factorio --mod-directory $FACMOD_TARGET".
const TargetEnv = "FACMOD_TARGET"

// ErrEmptyCommand is returned when a launch command has no words.
var ErrEmptyCommand = errors.New("launch command is empty")

type (
	// StartFunc starts a process without waiting for it.
	StartFunc func(name string, args ...string) error

	// URILauncher hands the target URI to the operating system's URI handler.
	URILauncher struct {
		goos  string
		start StartFunc
	}

	// CommandLauncher runs a user-configured command line.
	CommandLauncher struct {
		command string
		getenv  func(string) string
		start   StartFunc
	}

	// NopLauncher does nothing. Used when launching is disabled.
	NopLauncher struct{}
)

// NewURILauncher returns a launcher for the current platform.
func NewURILauncher() *URILauncher {
	return &URILauncher{goos: runtime.GOOS, start: StartDetached}
}

// Launch asks the OS to open target.
func (l *URILauncher) Launch(target string) error {
	name, args := OpenerCommand(l.goos, target)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("open %s with %s: %w", target, name, err)
	}
	return nil
}

// OpenerCommand returns the program and arguments that open uri on goos.
func OpenerCommand(goos, uri string) (string, []string) {
	switch goos {
	case platform.Windows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", uri}
	case platform.Darwin:
		return "open", []string{uri}
	default:
		return "xdg-open", []string{uri}
	}
}

// NewCommandLauncher returns a launcher for command. The command is split
// into words with POSIX shell rules; $FACMOD_TARGET expands to the target and
// other variables come from the environment.
func NewCommandLauncher(command string) *CommandLauncher {
	return &CommandLauncher{command: command, getenv: os.Getenv, start: StartDetached}
}

// Launch runs the configured command.
func (l *CommandLauncher) Launch(target string) error {
	argv, err := l.Argv(target)
	if err != nil {
		return err
	}
	if err := l.start(argv[0], argv[1:]...); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	return nil
}

// Argv expands the command line for target.
func (l *CommandLauncher) Argv(target string) ([]string, error) {
	argv, err := shell.Fields(l.command, func(name string) string {
		if name == TargetEnv {
			return target
		}
		return l.getenv(name)
	})
	if err != nil {
		return nil, fmt.Errorf("parse launch command %q: %w", l.command, err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}

// Launch implements the launcher interface and never fails.
func (NopLauncher) Launch(string) error { return nil }

// StartDetached starts name and releases the process handle without waiting.
func StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
