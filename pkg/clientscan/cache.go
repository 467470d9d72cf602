package clientscan

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/getmockd/seedmock/pkg/logging"
)

// Cache holds scanned packages keyed by their cleaned directory.
type Cache struct {
	mu       sync.RWMutex
	packages map[string]*Package
	scanner  *Scanner
	log      *slog.Logger
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		packages: make(map[string]*Package),
		scanner:  NewScanner(),
		log:      logging.Nop(),
	}
}

// SetLogger sets the logger for the cache and its scanner.
func (c *Cache) SetLogger(log *slog.Logger) {
	if log == nil {
		log = logging.Nop()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = log
	c.scanner.SetLogger(log)
}

// Load returns the package at dir, scanning it on first use.
func (c *Cache) Load(dir string) (*Package, error) {
	key := filepath.Clean(dir)

	c.mu.RLock()
	pkg, ok := c.packages[key]
	c.mu.RUnlock()
	if ok {
		return pkg, nil
	}

	pkg, err := c.scanner.ScanFS(os.DirFS(key))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Concurrent scans of the same directory produce equal packages.
	if existing, ok := c.packages[key]; ok {
		return existing, nil
	}
	c.packages[key] = pkg
	c.log.Info("client package loaded", "dir", key, "models", len(pkg.Models), "endpoints", len(pkg.Endpoints))
	return pkg, nil
}

// Len returns the number of cached packages.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.packages)
}

// Reset drops every cached package.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packages = make(map[string]*Package)
}
