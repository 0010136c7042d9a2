// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package envfile loads KEY=VALUE files (".env") into the process
// environment so viper's environment binding sees them.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads each file in paths and exports every key that is not already
// set in the environment. Variables set by the caller's shell win, and an
// earlier file wins over a later one. A missing file is not an error. Load
// returns the exported keys, sorted.
func Load(paths ...string) ([]string, error) {
	var exported []string
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading env file %s: %w", path, err)
		}

		for key, value := range values {
			if _, set := os.LookupEnv(key); set {
				continue
			}
			if strings.TrimSpace(value) == "" {
				continue
			}
			if err := os.Setenv(key, value); err != nil {
				return nil, fmt.Errorf("setting %s: %w", key, err)
			}
			exported = append(exported, key)
		}
	}

	sort.Strings(exported)
	return exported, nil
}
