package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/peek/internal/logging"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	Indent       int
	ThemeName    string
	NoColor      bool
	Colors       string
	MaxDepth     int
	ColorProfile string
	Debug        bool

	// Flags to track if they were explicitly set by the user
	IndentSet   bool
	NoColorSet  bool
	MaxDepthSet bool
	DebugSet    bool
}

// AppConfig represents the contents of a peek config file.
type AppConfig struct {
	Indent       *int                           `yaml:"indent" toml:"indent"`
	Theme        string                         `yaml:"theme" toml:"theme"`
	NoColor      bool                           `yaml:"no_color" toml:"no_color"`
	Colors       string                         `yaml:"colors" toml:"colors"`
	ColorProfile string                         `yaml:"color_profile" toml:"color_profile"`
	MaxDepth     int                            `yaml:"max_depth" toml:"max_depth"`
	Debug        bool                           `yaml:"debug" toml:"debug"`
	Palette      map[string][]string            `yaml:"palette" toml:"palette"`
	Themes       map[string]map[string][]string `yaml:"themes" toml:"themes"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// File names searched in the working directory, in order.
var localConfigNames = []string{".peek.yaml", ".peek.yml", ".peek.toml"}

// File names searched under the XDG config directories, in order.
var xdgConfigNames = []string{"peek/config.yaml", "peek/config.yml", "peek/config.toml"}

// LoadConfig loads the first config file found, or returns defaults when
// there is none. Unreadable files are reported and ignored.
func LoadConfig() *AppConfig {
	logger := logging.Get("config")

	path := getConfigPath()
	if path == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return &AppConfig{}
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Ignoring config file")
		return &AppConfig{}
	}
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return cfg
}

// LoadConfigFile reads one config file. The format follows the extension:
// .toml files are TOML, anything else is YAML.
func LoadConfigFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg AppConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path
	return &cfg, nil
}

// getConfigPath tries to find a peek configuration file.
// It checks the local directory first, then the XDG config directories.
func getConfigPath() string {
	logger := logging.Get("config")

	for _, name := range localConfigNames {
		if _, err := os.Stat(name); err == nil {
			logger.Debug().Str("path", name).Msg("Using local config file")
			return name
		}
	}

	for _, name := range xdgConfigNames {
		path, err := xdg.SearchConfigFile(name)
		if err == nil {
			logger.Debug().Str("path", path).Msg("Using XDG config file")
			return path
		}
		if !errors.Is(err, os.ErrNotExist) {
			logger.Debug().Err(err).Str("name", name).Msg("XDG config lookup failed")
		}
	}
	return ""
}
