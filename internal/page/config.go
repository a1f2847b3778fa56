package page

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when page options are missing or out of range.
var ErrInvalidConfig = errors.New("invalid page configuration")

// Layout controls the width of the page body.
type Layout string

const (
	LayoutCentered Layout = "centered"
	LayoutWide     Layout = "wide"
)

// SidebarState is the initial state of the navigation sidebar.
type SidebarState string

const (
	SidebarAuto      SidebarState = "auto" // expanded on wide screens, collapsed on narrow ones
	SidebarExpanded  SidebarState = "expanded"
	SidebarCollapsed SidebarState = "collapsed"
)

// Config is the page display configuration applied once per render pass.
type Config struct {
	Title   string
	Icon    string // Emoji shown as the favicon
	Layout  Layout
	Sidebar SidebarState
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Icon) == "" {
		return fmt.Errorf("%w: icon is required", ErrInvalidConfig)
	}
	switch c.Layout {
	case LayoutCentered, LayoutWide:
	default:
		return fmt.Errorf("%w: layout must be %q or %q, got %q", ErrInvalidConfig, LayoutCentered, LayoutWide, c.Layout)
	}
	switch c.Sidebar {
	case SidebarAuto, SidebarExpanded, SidebarCollapsed:
	default:
		return fmt.Errorf("%w: sidebar state must be %q, %q or %q, got %q",
			ErrInvalidConfig, SidebarAuto, SidebarExpanded, SidebarCollapsed, c.Sidebar)
	}
	return nil
}

// InitializePage validates cfg and returns the configuration the page shell
// will be rendered with.
func InitializePage(cfg Config) (Config, error) {
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
