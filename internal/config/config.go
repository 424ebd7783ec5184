// Package config loads bifid settings from flags, BIFID_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jmccarv/bifid"
)

// FileName is the config file searched for when none is given explicitly.
const FileName = ".bifid.yaml"

type Config struct {
	Key      string `mapstructure:"key" yaml:"key"`
	Merge    string `mapstructure:"merge" yaml:"merge"`
	Period   int    `mapstructure:"period" yaml:"period"`
	Lines    bool   `mapstructure:"lines" yaml:"lines"`
	Parallel int    `mapstructure:"parallel" yaml:"parallel,omitempty"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose"`
}

// Defaults returns the values used for anything left unset.
func Defaults() map[string]any {
	return map[string]any{
		"key":      "",
		"merge":    bifid.DefaultAlphabet.String(),
		"period":   0,
		"lines":    true,
		"parallel": runtime.NumCPU() * 2,
		"verbose":  false,
	}
}

// Load reads the configuration. path names an explicit config file; when
// empty, FileName is searched for in the home, user config and current
// directories and a missing file is not an error. flags, when not nil, are
// bound so that any flag set on the command line wins.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "bifid"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return c, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("bifid")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks the values that cannot be checked by type alone.
func (c Config) Validate() error {
	if _, err := bifid.ParseAlphabet(c.Merge); err != nil {
		return err
	}
	if c.Period < 0 {
		return fmt.Errorf("period must not be negative, got %d", c.Period)
	}
	return nil
}

// Alphabet returns the parsed merge setting.
func (c Config) Alphabet() (bifid.Alphabet, error) {
	return bifid.ParseAlphabet(c.Merge)
}

// Workers returns Parallel clamped to at least one.
func (c Config) Workers() int {
	if c.Parallel < 1 {
		return 1
	}
	return c.Parallel
}

// Write stores c as YAML at path, creating the directory if needed. The file
// may hold a key so it is written owner-readable only.
func Write(c Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create config directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, data, 0600)
}
