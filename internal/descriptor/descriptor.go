// Package descriptor locates the compose descriptor file that defines the
// stack. Only the file's existence matters here; its content is owned by the
// orchestration CLI and never parsed.
package descriptor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultNames are the descriptor file names probed when the config does not
// override them.
var DefaultNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// ErrNotFound is returned when no descriptor exists in the start directory
// or its parent.
var ErrNotFound = errors.New("descriptor file not found")

// Descriptor identifies a located compose file. Dir is the directory the
// orchestration CLI must run in; it is threaded through explicitly instead
// of changing the process working directory.
type Descriptor struct {
	Path string // absolute path to the compose file
	Dir  string // directory containing the file
	Name string // bare file name
}

// Locate searches startDir and then its parent for any of the given file
// names. The lookup checks exactly those two directories; there is no
// recursive walk. An empty names slice falls back to DefaultNames.
func Locate(startDir string, names []string) (Descriptor, error) {
	if len(names) == 0 {
		names = DefaultNames
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return Descriptor{}, fmt.Errorf("resolve start dir %s: %w", startDir, err)
	}
	dirs := []string{abs}
	if parent := filepath.Dir(abs); parent != abs {
		dirs = append(dirs, parent)
	}
	for _, dir := range dirs {
		for _, name := range names {
			p := filepath.Join(dir, name)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return Descriptor{Path: p, Dir: dir, Name: name}, nil
			}
		}
	}
	return Descriptor{}, fmt.Errorf("%w in %s or its parent", ErrNotFound, abs)
}
