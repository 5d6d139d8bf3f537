package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/headerguard/headerguard/pkg/errors"
	"github.com/headerguard/headerguard/pkg/logging"
)

// envKeyMap translates HEADERGUARD_* variables to config keys. Only
// top-level scalars are overridable from the environment.
var envKeyMap = map[string]string{
	"headerpath": "headerPath",
	"jobs":       "jobs",
}

// Load reads the layered configuration. explicitPath is the --config
// value; when empty, DefaultFileNames are probed in root. overrides is
// the highest-precedence layer, used for CLI flag values. The returned
// config is fully validated: template loaded, globs compiled, language
// table built.
func Load(explicitPath, root string, overrides map[string]any) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file
	configPath, err := resolveConfigPath(explicitPath, root)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), parserFor(configPath)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse config %s", configPath)
		}
		logger.Debug().Str("path", configPath).Msg("Loaded config file")
	}

	// 3. Environment overrides
	err = k.Load(env.Provider("HEADERGUARD_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "HEADERGUARD_"))
		if mapped, ok := envKeyMap[key]; ok {
			return mapped
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. CLI flag overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Validate and resolve. Relative headerPath is anchored at the
	// config file's directory, or the scan root when config came only
	// from defaults and environment.
	baseDir := root
	if configPath != "" {
		baseDir = filepath.Dir(configPath)
	}
	if err := cfg.validate(baseDir); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("excludes", len(cfg.Excludes)).
		Int("properties", len(cfg.Properties)).
		Int("languages", len(cfg.Languages)).
		Msg("Configuration loaded")

	return &cfg, nil
}

// resolveConfigPath picks the config file: an explicit path must exist,
// probed defaults may all be absent.
func resolveConfigPath(explicitPath, root string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad,
				"config file %s not found", explicitPath)
		}
		return explicitPath, nil
	}
	for _, name := range DefaultFileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return toml.Parser()
	}
}
