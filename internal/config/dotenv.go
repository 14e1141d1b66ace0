package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// dotEnvFiles 우선순위 순 (.env.local > .env)
var dotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads the .env files present in dir and returns the ones applied.
// godotenv never overwrites a set variable, so OS env wins over .env.local,
// which wins over .env. A malformed file is skipped and reported in the error.
func LoadDotEnv(dir string) ([]string, error) {
	var loaded []string
	var errs []error
	for _, name := range dotEnvFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", path, err))
			continue
		}
		loaded = append(loaded, path)
	}
	return loaded, errors.Join(errs...)
}
