package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "engines.yaml"

// Load loads the engine configuration.
// Search order: customPath -> ~/.bcengines/configs/engines.yaml -> ./configs/engines.yaml -> embedded default.
// Found documents are validated against the schema and overlaid on the
// embedded defaults, so a file only needs the keys it changes.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	return Defaults(), nil
}

// Parse validates a configuration document and overlays it on the defaults.
func Parse(data []byte) (Config, error) {
	if err := Validate(data); err != nil {
		return Config{}, err
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: cannot decode: %w", err)
	}
	if err := overlayKinds(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// overlayKinds decodes every kinds entry of the document onto the default
// of that kind. Map entries are otherwise decoded from zero values, which
// would drop the defaults of fields the entry omits.
func overlayKinds(data []byte, cfg *Config) error {
	var doc struct {
		Kinds map[string]yaml.Node `yaml:"kinds"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: cannot decode kinds: %w", err)
	}
	if len(doc.Kinds) == 0 {
		return nil
	}

	defaults := Defaults().Kinds
	if cfg.Kinds == nil {
		cfg.Kinds = make(map[string]KindConfig, len(doc.Kinds))
	}
	for id, node := range doc.Kinds {
		kc := defaults[id]
		if err := node.Decode(&kc); err != nil {
			return fmt.Errorf("config: cannot decode kind %q: %w", id, err)
		}
		cfg.Kinds[id] = kc
	}
	return nil
}

// Defaults decodes the embedded default document.
func Defaults() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultEnginesYAML, &cfg); err != nil {
		return DefaultConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bcengines", "configs", filename)
}
