package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

type mergeOverlay struct {
	Bindings []BindingConfig `toml:"bindings"`
}

func getConfigFilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv("DOCBOOK_CONFIG_DIR"); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, "config.toml")
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		xdgConfigDir := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigDir != "" {
			configDirs = append(configDirs, xdgConfigDir)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		configPath := filepath.Join(dir, "docbook", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	if len(configDirs) > 0 {
		return filepath.Join(configDirs[0], "docbook", "config.toml")
	}
	return ""
}

// LoadDefault returns a fresh copy of the embedded configuration.
func LoadDefault() (*Config, error) {
	data, err := configFS.ReadFile("default/config.toml")
	if err != nil {
		return nil, fmt.Errorf("no embedded default config found: %w", err)
	}

	config := &Config{}
	if err := config.Load(string(data)); err != nil {
		return nil, fmt.Errorf("failed to load embedded default config: %w", err)
	}
	return config, nil
}

// Load overlays data onto c. Scalars and colors are replaced key by key,
// bindings are merged with the shadow rules in merge.go.
func (c *Config) Load(data string) error {
	baseBindings := append([]BindingConfig(nil), c.Bindings...)

	metadata, err := toml.Decode(data, c)
	if err != nil {
		return err
	}

	// Decode only merge-managed arrays into a fresh struct so they are always
	// read from file content, without carrying prior state.
	overlay := &mergeOverlay{}
	if _, err := toml.Decode(data, overlay); err != nil {
		return err
	}

	if metadata.IsDefined("bindings") {
		c.Bindings = mergeBindings(baseBindings, overlay.Bindings)
	}

	return c.Validate()
}

// LoadFile overlays the file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := c.Load(string(data)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadConfigFile reads the user's config file. A missing file is not an
// error; found reports whether anything was read.
func LoadConfigFile() (data []byte, configPath string, found bool, err error) {
	configPath = getConfigFilePath()
	if configPath == "" {
		return nil, "", false, nil
	}
	data, err = os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, configPath, false, nil
		}
		return nil, configPath, false, err
	}
	return data, configPath, true, nil
}

// Resolve builds the effective configuration: embedded defaults, then either
// the explicit file (which must exist) or the discovered user file.
func Resolve(explicitPath string) (*Config, string, error) {
	config, err := LoadDefault()
	if err != nil {
		return nil, "", err
	}

	if explicitPath != "" {
		if err := config.LoadFile(explicitPath); err != nil {
			return nil, explicitPath, fmt.Errorf("loading config: %w", err)
		}
		return config, explicitPath, nil
	}

	data, configPath, found, err := LoadConfigFile()
	if err != nil {
		return nil, configPath, fmt.Errorf("reading config: %w", err)
	}
	if !found {
		return config, "", nil
	}
	if err := config.Load(string(data)); err != nil {
		return nil, configPath, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return config, configPath, nil
}
