package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/readmepage/internal/config"
	"github.com/dgallion1/readmepage/internal/page"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// siteConfig lays out a logo and, when readme is non-empty, a README.md.
func siteConfig(t *testing.T, readme string) config.Config {
	t.Helper()
	dir := t.TempDir()
	logo := filepath.Join(dir, "assets", "images", "logo.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(logo), 0o755))
	require.NoError(t, os.WriteFile(logo, pngHeader, 0o644))
	doc := filepath.Join(dir, "README.md")
	if readme != "" {
		require.NoError(t, os.WriteFile(doc, []byte(readme), 0o644))
	}
	return config.Config{
		Port:            "0",
		Title:           "PT Hackathon",
		Icon:            "💻",
		Layout:          "centered",
		Sidebar:         "auto",
		LogoPath:        logo,
		LogoSize:        "large",
		DocumentPath:    doc,
		ReloadMode:      config.ReloadWatch,
		TerminalWidth:   80,
		ShutdownTimeout: time.Second,
	}
}

// syncBuffer is a bytes.Buffer safe to share between the server goroutine
// and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_MissingReadmeFails(t *testing.T) {
	cfg := siteConfig(t, "")

	err := run(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "expected fs.ErrNotExist, got %v", err)
	assert.Contains(t, err.Error(), "render page")
}

func TestRun_MissingLogoFails(t *testing.T) {
	cfg := siteConfig(t, "# Hello")
	require.NoError(t, os.Remove(cfg.LogoPath))

	err := run(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "display logo")
}

func TestRun_InvalidConfigFails(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"reload mode", func(c *config.Config) { c.ReloadMode = "never" }, nil},
		{"layout", func(c *config.Config) { c.Layout = "full" }, page.ErrInvalidConfig},
		{"logo size", func(c *config.Config) { c.LogoSize = "huge" }, page.ErrInvalidConfig},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := siteConfig(t, "# Hello")
			tc.mutate(&cfg)

			err := run(context.Background(), cfg, discardLogger())
			require.Error(t, err)
			if tc.want != nil {
				assert.True(t, errors.Is(err, tc.want), "expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	cfg := siteConfig(t, "# Hello\nWorld")
	var buf syncBuffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, log) }()

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "starting readmepage")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	assert.Contains(t, buf.String(), "page rendered")
	assert.Contains(t, buf.String(), "shutting down...")
	assert.NotContains(t, buf.String(), "level=WARN")
}
