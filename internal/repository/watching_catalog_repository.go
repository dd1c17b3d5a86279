package repository

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-faster/errors"

	"github.com/apex-supplements/store-api/internal/models"
)

// WatchingCatalogRepository caches the catalog of a FileCatalogRepository and
// drops the cached snapshot whenever the backing file changes on disk.
// The next Load after a change reads the file again.
type WatchingCatalogRepository struct {
	source *FileCatalogRepository
	log    *slog.Logger

	mu       sync.RWMutex
	snapshot *models.Catalog
	reloads  int

	watcher *fsnotify.Watcher
}

// NewWatchingCatalogRepository creates a caching repository over source.
// Call Run to start invalidation; until then the cache is never invalidated.
func NewWatchingCatalogRepository(source *FileCatalogRepository, log *slog.Logger) (*WatchingCatalogRepository, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create catalog watcher")
	}

	// Watch the directory rather than the file: editors and deploy tools
	// usually replace the file, which would silently end a file watch.
	if err := watcher.Add(filepath.Dir(source.Path())); err != nil {
		_ = watcher.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(source.Path()))
	}

	return &WatchingCatalogRepository{
		source:  source,
		log:     log,
		watcher: watcher,
	}, nil
}

// Load returns the cached snapshot, reading the file if there is none.
func (r *WatchingCatalogRepository) Load(ctx context.Context) (*models.Catalog, error) {
	r.mu.RLock()
	snapshot := r.snapshot
	r.mu.RUnlock()
	if snapshot != nil {
		return snapshot, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot != nil {
		return r.snapshot, nil
	}

	catalog, err := r.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	r.snapshot = catalog
	r.reloads++
	return catalog, nil
}

// Reloads reports how many times the file has been read.
func (r *WatchingCatalogRepository) Reloads() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reloads
}

// Invalidate drops the cached snapshot.
func (r *WatchingCatalogRepository) Invalidate() {
	r.mu.Lock()
	r.snapshot = nil
	r.mu.Unlock()
}

// Run processes file system events until ctx is cancelled, then releases the
// watcher. It returns nil on cancellation.
func (r *WatchingCatalogRepository) Run(ctx context.Context) error {
	defer r.watcher.Close()

	target := filepath.Clean(r.source.Path())
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			r.Invalidate()
			r.log.Info("catalog file changed, cache invalidated", "path", event.Name, "op", event.Op.String())

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			// A lost event could leave a stale snapshot behind.
			r.Invalidate()
			r.log.Error("catalog watcher error", "error", err)
		}
	}
}
