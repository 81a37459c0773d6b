package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Engine  EngineConfig
	Viewer  ViewerConfig
	UI      UIConfig
	Actions ActionsConfig
	History HistoryConfig
	Log     LogConfig
}

// EngineConfig selects the rendering backend.
type EngineConfig struct {
	Name string `mapstructure:"name"`
}

// ViewerConfig holds presentation settings.
type ViewerConfig struct {
	// SinglePage shows one page at a time instead of continuous scroll.
	SinglePage bool `mapstructure:"single_page"`
	// TextWidth caps the rendered column width; 0 fits the window.
	TextWidth int `mapstructure:"text_width"`
}

// UIConfig holds chrome settings.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// ActionsConfig holds share, export, and print settings.
type ActionsConfig struct {
	// ShareCommand overrides the system opener used for share handoff.
	ShareCommand string `mapstructure:"share_command"`
	PrintSpooler string `mapstructure:"print_spooler"`
	Printer      string `mapstructure:"printer"`
	ExportDir    string `mapstructure:"export_dir"`
}

// HistoryConfig holds recently-opened settings.
type HistoryConfig struct {
	Path  string `mapstructure:"path"`
	Limit int    `mapstructure:"limit"`
}

// LogConfig holds log sink settings. Logs go to a file because stdout
// belongs to the terminal UI.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix PDFVIEWER_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "pdfviewer")

	// default values
	v.SetDefault("engine.name", "fitz")
	v.SetDefault("viewer.single_page", false)
	v.SetDefault("viewer.text_width", 0)
	v.SetDefault("ui.theme", "mocha")
	v.SetDefault("actions.share_command", "")
	v.SetDefault("actions.print_spooler", "lp")
	v.SetDefault("actions.printer", "")
	v.SetDefault("actions.export_dir", filepath.Join(os.Getenv("HOME"), "Documents"))
	v.SetDefault("history.path", filepath.Join(dataDir, "history.db"))
	v.SetDefault("history.limit", 20)
	v.SetDefault("log.path", filepath.Join(dataDir, "pdfviewer.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PDFVIEWER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pdfviewer"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PDFVIEWER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// Used by the viewer to persist presentation toggles between runs.
func Save(cfg Config) error {
	path := os.Getenv("PDFVIEWER_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "pdfviewer", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("engine.name", cfg.Engine.Name)
	v.Set("viewer.single_page", cfg.Viewer.SinglePage)
	v.Set("viewer.text_width", cfg.Viewer.TextWidth)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("actions.share_command", cfg.Actions.ShareCommand)
	v.Set("actions.print_spooler", cfg.Actions.PrintSpooler)
	v.Set("actions.printer", cfg.Actions.Printer)
	v.Set("actions.export_dir", cfg.Actions.ExportDir)
	v.Set("history.path", cfg.History.Path)
	v.Set("history.limit", cfg.History.Limit)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
