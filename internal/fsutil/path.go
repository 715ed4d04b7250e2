// Package fsutil holds generic filesystem precondition checks shared by
// commands that read or write files.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckPath validates a path before it is used. With mustExist true the path
// has to point at an existing regular file; with mustExist false the path
// must not exist yet, so an existing file is never overwritten. A non-empty
// extension (including the dot) is enforced in both modes.
func CheckPath(path string, mustExist bool, extension string) error {
	info, err := os.Stat(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	if mustExist && !exists {
		return fmt.Errorf("path %s does not exist", path)
	}
	if !mustExist && exists {
		return fmt.Errorf("path %s already exists", path)
	}
	if extension != "" && filepath.Ext(path) != extension {
		return fmt.Errorf("path %s must have the %s extension", path, extension)
	}
	if mustExist && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}
