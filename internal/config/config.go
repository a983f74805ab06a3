package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/syllabus/internal/enrollment"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Store      StoreConfig      `mapstructure:"store"`
	Enrollment EnrollmentConfig `mapstructure:"enrollment"`
	UI         UIConfig         `mapstructure:"ui"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// StoreConfig holds the snapshot database location
type StoreConfig struct {
	Path string `mapstructure:"path"` // "" = memory only
}

// EnrollmentConfig holds deferred-removal and progress-simulation timing
type EnrollmentConfig struct {
	UndoWindow          time.Duration `mapstructure:"undo_window"`
	ProgressMinDelay    time.Duration `mapstructure:"progress_min_delay"`
	ProgressMaxDelay    time.Duration `mapstructure:"progress_max_delay"`
	MaxLessonsPerUpdate int           `mapstructure:"max_lessons_per_update"`
	Seed                uint64        `mapstructure:"seed"` // 0 = seed from clock
}

// UIConfig holds UI configuration
type UIConfig struct {
	ToastLimit int    `mapstructure:"toast_limit"`
	PrefsFile  string `mapstructure:"prefs_file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	eng := enrollment.DefaultConfig()
	return &Config{
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "syllabus.db"),
		},
		Enrollment: EnrollmentConfig{
			UndoWindow:          eng.UndoWindow,
			ProgressMinDelay:    eng.ProgressMinDelay,
			ProgressMaxDelay:    eng.ProgressMaxDelay,
			MaxLessonsPerUpdate: eng.MaxLessonsPerUpdate,
		},
		UI: UIConfig{
			ToastLimit: 3,
			PrefsFile:  filepath.Join(defaultConfigPath(), "prefs.toml"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "syllabus.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "syllabus")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "syllabus")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "syllabus")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "syllabus")
	}
}

// Load reads configuration from file and environment. An empty file
// searches the default locations; a missing file there is fine.
func Load(file string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (SYLLABUS_LOGGING_LEVEL, ...)
	v.SetEnvPrefix("SYLLABUS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("enrollment.undo_window", cfg.Enrollment.UndoWindow)
	v.SetDefault("enrollment.progress_min_delay", cfg.Enrollment.ProgressMinDelay)
	v.SetDefault("enrollment.progress_max_delay", cfg.Enrollment.ProgressMaxDelay)
	v.SetDefault("enrollment.max_lessons_per_update", cfg.Enrollment.MaxLessonsPerUpdate)
	v.SetDefault("enrollment.seed", cfg.Enrollment.Seed)
	v.SetDefault("ui.toast_limit", cfg.UI.ToastLimit)
	v.SetDefault("ui.prefs_file", cfg.UI.PrefsFile)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate rejects timing that the engine cannot honour.
func (c *Config) Validate() error {
	e := c.Enrollment
	if e.UndoWindow <= 0 {
		return fmt.Errorf("enrollment.undo_window must be positive, got %s", e.UndoWindow)
	}
	if e.ProgressMinDelay <= 0 {
		return fmt.Errorf("enrollment.progress_min_delay must be positive, got %s", e.ProgressMinDelay)
	}
	if e.ProgressMinDelay > e.ProgressMaxDelay {
		return fmt.Errorf("enrollment.progress_min_delay (%s) exceeds progress_max_delay (%s)",
			e.ProgressMinDelay, e.ProgressMaxDelay)
	}
	if e.MaxLessonsPerUpdate <= 0 {
		return fmt.Errorf("enrollment.max_lessons_per_update must be positive, got %d", e.MaxLessonsPerUpdate)
	}
	return nil
}

// EngineConfig converts the enrollment section for the engine.
func (c *Config) EngineConfig() enrollment.Config {
	return enrollment.Config{
		UndoWindow:          c.Enrollment.UndoWindow,
		ProgressMinDelay:    c.Enrollment.ProgressMinDelay,
		ProgressMaxDelay:    c.Enrollment.ProgressMaxDelay,
		MaxLessonsPerUpdate: c.Enrollment.MaxLessonsPerUpdate,
	}
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
