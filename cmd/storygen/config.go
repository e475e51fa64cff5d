package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gnana997/storygen/pkg/fixture"
	"github.com/gnana997/storygen/pkg/generator"
	"github.com/gnana997/storygen/pkg/parser"
)

const (
	configName      = ".storygen"
	configType      = "yaml"
	envPrefix       = "STORYGEN"
	envKeySeparator = "_"
)

// Config is the merged result of defaults, .storygen.yaml, STORYGEN_*
// environment variables and command-line flags, in increasing precedence.
type Config struct {
	ComponentsDir  string      `mapstructure:"components_dir"`
	StorySuffix    string      `mapstructure:"story_suffix"`
	Pattern        string      `mapstructure:"pattern"`
	Exclude        []string    `mapstructure:"exclude"`
	HeuristicsFile string      `mapstructure:"heuristics_file"`
	NoColor        bool        `mapstructure:"no_color"`
	Log            LogConfig   `mapstructure:"log"`
	Watch          WatchConfig `mapstructure:"watch"`
	MCP            MCPConfig   `mapstructure:"mcp"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type WatchConfig struct {
	DebounceMs int `mapstructure:"debounce_ms"`
}

type MCPConfig struct {
	LogFile string `mapstructure:"log_file"`
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"dir":        "components_dir",
	"suffix":     "story_suffix",
	"pattern":    "pattern",
	"exclude":    "exclude",
	"heuristics": "heuristics_file",
	"no-color":   "no_color",
	"log-level":  "log.level",
	"log-format": "log.format",
	"debounce":   "watch.debounce_ms",
	"log-file":   "mcp.log_file",
}

// LoadConfig loads configuration. An explicit configPath must exist; without
// one, .storygen.yaml is looked up in the working directory and then $HOME,
// and a missing file is not an error. flags may be nil.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag --%s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "validate config"),
			"check .storygen.yaml, STORYGEN_* variables and flags")
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("components_dir", generator.DefaultDir)
	v.SetDefault("story_suffix", fixture.DefaultSuffix)
	v.SetDefault("pattern", generator.DefaultPattern)
	v.SetDefault("exclude", []string{})
	v.SetDefault("heuristics_file", "")
	v.SetDefault("no_color", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch.debounce_ms", 200)
	v.SetDefault("mcp.log_file", "")
}

// Validate rejects settings no command can work with.
func (c *Config) Validate() error {
	if c.ComponentsDir == "" {
		return errors.New("components_dir must not be empty")
	}
	if !strings.HasPrefix(c.StorySuffix, ".") {
		return errors.Newf("story_suffix %q must start with a dot", c.StorySuffix)
	}
	if parser.DetectLanguage("x"+c.StorySuffix) == parser.LanguageUnknown {
		return errors.Newf("story_suffix %q must end in a source extension", c.StorySuffix)
	}
	if c.Pattern == "" {
		return errors.New("pattern must not be empty")
	}
	if c.Watch.DebounceMs < 0 {
		return errors.Newf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs)
	}
	return nil
}

// GeneratorOptions converts the config for pkg/generator.
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Dir:     c.ComponentsDir,
		Suffix:  c.StorySuffix,
		Pattern: c.Pattern,
		Exclude: c.Exclude,
		NoColor: c.NoColor,
	}
}
