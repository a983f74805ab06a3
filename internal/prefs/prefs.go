// Package prefs persists small UI preferences between runs.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mmcdole/syllabus/internal/config"
	toml "github.com/pelletier/go-toml/v2"
)

// Tab names accepted in the prefs file.
const (
	TabCatalog  = "catalog"
	TabCourses  = "courses"
	TabWishlist = "wishlist"
)

var tabs = []string{TabCatalog, TabCourses, TabWishlist}

// Prefs holds the user's UI preferences.
type Prefs struct {
	Tab string `toml:"tab"`
}

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{Tab: TabCatalog}
}

// Load reads preferences from path. Missing, unreadable, or malformed
// files yield defaults; only the reason is logged.
func Load(path string, logger *slog.Logger) Prefs {
	if logger == nil {
		logger = slog.Default()
	}
	prefs := Default()

	resolved, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil || resolved == "" {
		return prefs
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("prefs unreadable, using defaults", "path", resolved, "error", err)
		}
		return prefs
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		logger.Warn("prefs malformed, using defaults", "path", resolved, "error", err)
		return Default()
	}

	if !slices.Contains(tabs, prefs.Tab) {
		prefs.Tab = TabCatalog
	}
	return prefs
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if resolved == "" {
		return errors.New("prefs path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
