package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsjohal14/quickspot/internal/scope/record"
	"gopkg.in/yaml.v3"
)

// FileSource reads a JSON or YAML dataset from disk
type FileSource struct {
	path string
}

// NewFileSource creates a source for the file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.path
}

// Load decodes the file. .yaml and .yml files are read as YAML, everything
// else as JSON.
func (s *FileSource) Load(ctx context.Context) (record.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var ds record.Dataset
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ds)
	default:
		err = json.Unmarshal(data, &ds)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", s.path, err)
	}

	return ds, nil
}
