package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Reload modes control how often the page is rebuilt.
const (
	ReloadWatch   = "watch"
	ReloadRequest = "request"
)

type Config struct {
	Port string

	// Page configuration
	Title   string
	Icon    string
	Layout  string
	Sidebar string

	// Logo asset
	LogoPath string
	LogoSize string
	LogoLink string

	// Document
	DocumentPath string

	// Rendering
	ReloadMode    string
	SanitizeHTML  bool
	TerminalWidth int

	ShutdownTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8501"),

		Title:   envOr("PAGE_TITLE", "PT Hackathon"),
		Icon:    envOr("PAGE_ICON", "💻"),
		Layout:  envOr("PAGE_LAYOUT", "centered"),
		Sidebar: envOr("PAGE_SIDEBAR", "auto"),

		LogoPath: envOr("LOGO_PATH", "assets/images/logo.png"),
		LogoSize: envOr("LOGO_SIZE", "large"),
		LogoLink: os.Getenv("LOGO_LINK"),

		DocumentPath: envOr("DOCUMENT_PATH", "README.md"),

		ReloadMode:    envOr("RELOAD_MODE", ReloadWatch),
		SanitizeHTML:  envBool("SANITIZE_HTML", false),
		TerminalWidth: envInt("TERMINAL_WIDTH", 80),

		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.TerminalWidth <= 0 {
		cfg.TerminalWidth = 80
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

// Validate checks the settings the program itself owns. Page options are
// validated by the page package when the page is initialized.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.DocumentPath == "" {
		return fmt.Errorf("DOCUMENT_PATH is required")
	}
	if c.LogoPath == "" {
		return fmt.Errorf("LOGO_PATH is required")
	}
	switch c.ReloadMode {
	case ReloadWatch, ReloadRequest:
	default:
		return fmt.Errorf("RELOAD_MODE must be %q or %q, got %q", ReloadWatch, ReloadRequest, c.ReloadMode)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
