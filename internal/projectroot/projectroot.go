// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projectroot locates the repository a command runs in.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no marker exists in start or its parents.
var ErrNotFound = errors.New("project root not found")

// markers identify a repository root, checked in order at each level.
var markers = []string{".git", "go.mod"}

// Find walks up from start and returns the first directory holding a marker.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w from %s", ErrNotFound, start)
		}
		dir = parent
	}
}
