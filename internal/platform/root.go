package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/silt/pkg/core"
)

// ConfigFileName is the project configuration file looked up by FindConfig.
const ConfigFileName = ".silt.yaml"

// ErrConfigNotFound is returned by FindConfig when no configuration file
// exists in startDir or any of its parents.
var ErrConfigNotFound = errors.New("config not found")

// FindConfig looks upwards from startDir for a .silt.yaml file and returns
// its absolute path.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if path := filepath.Join(dir, ConfigFileName); isFile(path) {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrConfigNotFound
}

// ResolveConfig loads the configuration at path, or the one discovered from
// startDir when path is empty. Without either, the defaults are returned.
func ResolveConfig(path, startDir string) (core.Config, error) {
	if path == "" {
		found, err := FindConfig(startDir)
		if errors.Is(err, ErrConfigNotFound) {
			return core.DefaultConfig(), nil
		}
		if err != nil {
			return core.Config{}, err
		}
		path = found
	}
	return core.LoadConfig(path)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
