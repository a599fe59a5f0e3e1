// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package completion

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/napalu/dispatch/errs"
)

// Manager generates the completion script of a program and installs it for one shell
type Manager struct {
	Shell       string
	ProgramName string
	Paths       Paths
	generator   Generator
	script      string
}

// NewManager creates a manager installing into the user-level completion directory of shell
func NewManager(shell, programName string) (*Manager, error) {
	generator, err := GetGenerator(shell)
	if err != nil {
		return nil, err
	}
	paths, err := completionPaths(shell)
	if err != nil {
		return nil, fmt.Errorf("failed to get completion paths: %w", err)
	}

	return &Manager{
		Shell:       shell,
		ProgramName: filepath.Base(programName),
		Paths:       paths,
		generator:   generator,
	}, nil
}

// Accept generates and stores the completion script for data
func (m *Manager) Accept(data Data) {
	m.script = m.generator.Generate(m.ProgramName, data)
}

// Script returns the script generated by Accept
func (m *Manager) Script() string {
	return m.script
}

// Save writes the generated script and returns the file written
func (m *Manager) Save() (string, error) {
	if m.script == "" {
		return "", errs.ErrNoCompletionScript
	}

	dir, err := m.ensureDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, m.FileName())
	if err := os.WriteFile(path, []byte(m.script), 0644); err != nil {
		return "", fmt.Errorf("failed to write completion file: %w", err)
	}

	return path, ensurePermission(path, 0644)
}

// FileName returns the script file name the shell expects
func (m *Manager) FileName() string {
	conv := fileInfo(m.Shell)
	return conv.Prefix + m.ProgramName + conv.Extension
}

// ensureDir creates the primary directory, falling back to the secondary one
func (m *Manager) ensureDir() (string, error) {
	perm := os.FileMode(0755)
	primaryErr := os.MkdirAll(m.Paths.Primary, perm)
	if primaryErr == nil {
		if primaryErr = ensurePermission(m.Paths.Primary, perm); primaryErr == nil {
			return m.Paths.Primary, nil
		}
	}

	if m.Paths.Fallback == "" {
		return "", fmt.Errorf("failed to create completion directory: %w", primaryErr)
	}
	if err := os.MkdirAll(m.Paths.Fallback, perm); err != nil {
		return "", fmt.Errorf("failed to create fallback completion directory: %w", err)
	}
	return m.Paths.Fallback, ensurePermission(m.Paths.Fallback, perm)
}
