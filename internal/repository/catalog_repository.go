package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"

	"github.com/apex-supplements/store-api/internal/models"
)

var (
	// ErrCatalogUnavailable means the trusted catalog could not be read or decoded.
	// It is a server-side configuration failure, never a client error.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// CatalogRepository provides snapshots of the trusted store catalog.
type CatalogRepository interface {
	Load(ctx context.Context) (*models.Catalog, error)
}

// FileCatalogRepository reads the catalog from a data file on every Load.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
type FileCatalogRepository struct {
	path string
}

// NewFileCatalogRepository creates a repository backed by the file at path.
func NewFileCatalogRepository(path string) *FileCatalogRepository {
	return &FileCatalogRepository{path: path}
}

// Path returns the backing file.
func (r *FileCatalogRepository) Path() string {
	return r.path
}

// Load reads and decodes the catalog file.
func (r *FileCatalogRepository) Load(ctx context.Context) (*models.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Errorf("%w: read %s: %w", ErrCatalogUnavailable, filepath.Base(r.path), err)
	}

	catalog, err := DecodeCatalog(data, isYAML(r.path))
	if err != nil {
		return nil, errors.Errorf("%w: decode %s: %w", ErrCatalogUnavailable, filepath.Base(r.path), err)
	}
	return catalog, nil
}

// DecodeCatalog parses catalog data. YAML input is normalised to JSON first
// so ids and prices follow exactly the same decoding rules in both formats.
func DecodeCatalog(data []byte, fromYAML bool) (*models.Catalog, error) {
	if fromYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "parse yaml")
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "convert yaml")
		}
		data = converted
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, errors.New("empty catalog document")
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "parse json")
	}
	return &catalog, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
