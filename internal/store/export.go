// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every stored record to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string) (int, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(recs)
	if err != nil {
		return 0, fmt.Errorf("marshaling YAML: %w", err)
	}
	return len(recs), writeExport(path, data)
}

// ExportJSON writes every stored record to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) (int, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("querying for export: %w", err)
	}

	data, err := sonic.ConfigStd.MarshalIndent(recs, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshaling JSON: %w", err)
	}
	return len(recs), writeExport(path, data)
}

func writeExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
