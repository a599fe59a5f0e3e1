// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package completion

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/napalu/dispatch/errs"
)

func ensurePermission(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if runtime.GOOS == "windows" {
		return nil
	}

	if actual := info.Mode().Perm(); actual != perm {
		if err := os.Chmod(path, perm); err != nil {
			return fmt.Errorf("failed to set permissions on %s from %o to %o: %w", path, actual, perm, err)
		}
	}

	return nil
}

func isPowerShellCore() bool {
	_, err := exec.LookPath("pwsh")
	return err == nil
}

// shellPaths returns the user-level completion directories of shell on goos, relative to home
func shellPaths(goos, home, shell string) (Paths, error) {
	switch shell {
	case "bash":
		return Paths{
			Primary:  filepath.Join(home, ".local", "share", "bash-completion", "completions"),
			Fallback: filepath.Join(home, ".bash_completion.d"),
			Comment:  "user-local bash-completion directory",
		}, nil
	case "zsh":
		return Paths{
			Primary:  filepath.Join(home, ".zsh", "completion"),
			Fallback: filepath.Join(home, ".zfunc"),
			Comment:  "user-local zsh fpath directory",
		}, nil
	case "fish":
		return Paths{
			Primary:   filepath.Join(home, ".config", "fish", "completions"),
			Fallback:  filepath.Join(home, ".local", "share", "fish", "completions"),
			Extension: ".fish",
			Comment:   "fish user completions directory",
		}, nil
	case "powershell":
		p := Paths{Extension: ".ps1", Comment: "PowerShell user completions directory"}
		switch goos {
		case "windows":
			dir := "WindowsPowerShell"
			if isPowerShellCore() {
				dir = "PowerShell"
			}
			p.Primary = filepath.Join(home, "Documents", dir, "Completions")
			p.Fallback = filepath.Join(home, ".config", dir, "Completions")
		case "darwin":
			p.Primary = filepath.Join(home, "Library", "PowerShell", "Completions")
			p.Fallback = filepath.Join(home, ".config", "powershell", "Completions")
		default:
			p.Primary = filepath.Join(home, ".config", "powershell", "Completions")
			p.Fallback = filepath.Join(home, ".local", "share", "powershell", "Completions")
		}
		return p, nil
	}

	return Paths{}, errs.ErrUnsupportedShell.WithArgs(shell)
}

func completionPaths(shell string) (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("couldn't get user home directory: %w", err)
	}
	return shellPaths(runtime.GOOS, home, shell)
}

// fileInfo returns the file naming convention of shell
func fileInfo(shell string) FileInfo {
	switch shell {
	case "zsh":
		return FileInfo{Prefix: "_", Comment: "zsh completion files start with _ (e.g. _git)"}
	case "fish":
		return FileInfo{Extension: ".fish", Comment: "fish completion files end in .fish"}
	case "powershell":
		return FileInfo{Extension: ".ps1", Comment: "PowerShell completion files end in .ps1"}
	}
	return FileInfo{Comment: "bash completion files are named after the command"}
}
