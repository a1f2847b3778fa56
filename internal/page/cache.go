package page

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Cache serves built pages. In per-request mode every Get runs a new render
// pass. Otherwise the last successful page is reused until Invalidate is
// called, either directly or by the file watcher started with Watch.
type Cache struct {
	builder    *Builder
	perRequest bool
	log        *slog.Logger

	mu   sync.Mutex
	page *Page

	watcher *fsnotify.Watcher
	watched map[string]bool
	done    chan struct{}
}

func NewCache(b *Builder, perRequest bool, log *slog.Logger) *Cache {
	return &Cache{
		builder:    b,
		perRequest: perRequest,
		log:        log,
	}
}

// Get returns the current page, building it if needed. Failed builds are not
// cached.
func (c *Cache) Get() (*Page, error) {
	if c.perRequest {
		return c.builder.Build()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.page != nil {
		return c.page, nil
	}
	p, err := c.builder.Build()
	if err != nil {
		return nil, err
	}
	c.page = p
	return p, nil
}

// Invalidate drops the cached page so the next Get rebuilds it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.page = nil
	c.mu.Unlock()
}

func (c *Cache) cached() *Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Watch invalidates the cache whenever the document or logo changes on disk.
// The parent directories are watched so editors that replace files by rename
// are still seen.
func (c *Cache) Watch() error {
	if c.perRequest || c.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	spec := c.builder.Spec()
	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range []string{spec.DocumentPath, spec.Logo.Path} {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	c.watcher = watcher
	c.watched = watched
	c.done = make(chan struct{})
	go c.watchLoop()
	return nil
}

func (c *Cache) watchLoop() {
	defer close(c.done)
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !c.watched[abs] {
				continue
			}
			c.log.Info("source changed, invalidating page", "path", abs, "op", event.Op.String())
			c.Invalidate()
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.log.Warn("file watcher error", "error", err)
		}
	}
}

// Close stops the file watcher, if any.
func (c *Cache) Close() error {
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	<-c.done
	return err
}
