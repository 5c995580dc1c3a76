// Package config loads docsite settings from defaults, an optional
// docsite.yaml and DOCSITE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. DOCSITE_CONTENT_DIR
	EnvPrefix = "DOCSITE"

	// FileName is the config file looked up in the working directory (without extension)
	FileName = "docsite"
)

// Config is the full set of settings shared by the indexer and the server
type Config struct {
	ContentDir     string    `mapstructure:"content_dir"`
	OutputFile     string    `mapstructure:"output_file"`
	SearchIndexDir string    `mapstructure:"search_index_dir"`
	RoutesFile     string    `mapstructure:"routes_file"`
	IndexFileName  string    `mapstructure:"index_file_name"`
	ContentExt     string    `mapstructure:"content_ext"`
	URLPrefix      string    `mapstructure:"url_prefix"`
	Concurrency    int       `mapstructure:"concurrency"`
	Log            LogConfig `mapstructure:"log"`
}

// LogConfig configures internal/logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content_dir", "content/docs")
	v.SetDefault("output_file", "public/search-index.json")
	v.SetDefault("search_index_dir", "data/search/index")
	v.SetDefault("routes_file", "content/routes.yaml")
	v.SetDefault("index_file_name", "index.mdx")
	v.SetDefault("content_ext", ".mdx")
	v.SetDefault("url_prefix", "/docs/")
	v.SetDefault("concurrency", 16)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
}

// Load reads configuration. When configFile is empty, docsite.yaml is looked
// up in dir and a missing file is not an error.
func Load(dir, configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the pipeline cannot run without
func (c Config) Validate() error {
	if strings.TrimSpace(c.ContentDir) == "" {
		return fmt.Errorf("config: content_dir is required")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return fmt.Errorf("config: output_file is required")
	}
	if strings.TrimSpace(c.IndexFileName) == "" {
		return fmt.Errorf("config: index_file_name is required")
	}
	if !strings.HasPrefix(c.ContentExt, ".") {
		return fmt.Errorf("config: content_ext must start with a dot, got %q", c.ContentExt)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("config: concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}
