// Package proxy serves the precomputed SOC analysis dataset over HTTP and
// fetches it back for the aggregation view.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/honeycarbs/occupation-insights/internal/domain"
)

var (
	// ErrResultsNotFound is returned when the dataset has not been generated
	ErrResultsNotFound = domain.ErrResultsNotFound
	// ErrResultsUnavailable covers every other failure to obtain the dataset
	ErrResultsUnavailable = errors.New("proxy: results unavailable")
)

// Source provides the dataset
type Source interface {
	Load(ctx context.Context) (*domain.AllSOCResults, error)
}

// FileSource reads the dataset from a JSON file on every call
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) (*domain.AllSOCResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("proxy: read %s: %w", s.path, ErrResultsNotFound)
		}
		return nil, fmt.Errorf("proxy: read %s: %w", s.path, err)
	}

	results, err := domain.ParseAllSOCResults(data)
	if err != nil {
		return nil, fmt.Errorf("proxy: parse %s: %w", s.path, err)
	}

	return results, nil
}

var _ Source = (*FileSource)(nil)
