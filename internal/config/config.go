// Package config layers command-line flags over environment variables and
// an optional configuration file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variable of every flag: --log-level
// reads HEXGRID_LOG_LEVEL.
const EnvPrefix = "HEXGRID"

// Config holds the settings shared by every command.
type Config struct {
	LogLevel string `mapstructure:"log-level"`
	Threads  int    `mapstructure:"threads"`
	Config   string `mapstructure:"config"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Threads:  runtime.NumCPU(),
	}
}

// Level parses LogLevel.
func (c Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Apply sets every flag in flags that was not given on the command line
// from its environment variable or from the configuration file at path.
// Keys in the file must name a flag.
func Apply(v *viper.Viper, flags *pflag.FlagSet, path string) error {
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read configuration file %q: %w", path, err)
		}
		for _, key := range v.AllKeys() {
			if flags.Lookup(key) == nil {
				return fmt.Errorf("invalid option in configuration file: %v", key)
			}
		}
	}

	var flagErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if flagErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			list := splitList(v.GetStringSlice(f.Name))
			if slices.Equal(list, sv.GetSlice()) {
				return
			}
			flagErr = sv.Replace(list)
		} else {
			value := v.GetString(f.Name)
			if value == f.Value.String() {
				return
			}
			flagErr = f.Value.Set(value)
		}
		if flagErr != nil {
			flagErr = fmt.Errorf("flag --%s: %w", f.Name, flagErr)
		}
	})
	return flagErr
}

// splitList flattens comma separated entries; environment values arrive
// as a single string.
func splitList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// Load applies the environment and configuration file to flags, then
// decodes the shared settings.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("threads", def.Threads)

	path := ""
	if f := flags.Lookup("config"); f != nil {
		path = f.Value.String()
		if env, ok := os.LookupEnv(EnvPrefix + "_CONFIG"); ok && !f.Changed {
			path = env
		}
	}

	if err := Apply(v, flags, path); err != nil {
		return Config{}, err
	}

	cfg := def
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	if cfg.Threads <= 0 {
		cfg.Threads = def.Threads
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
