// Package config loads schemalint's own settings: a schemalint.yaml file,
// environment variables (optionally from a .env file), and command-line
// flags, in the teacher's layering order (flags > env > file > defaults).
package config

import (
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is schemalint's resolved configuration.
type Config struct {
	SchemaPath string `mapstructure:"schema" yaml:"schema"`
	Strict     bool   `mapstructure:"strict" yaml:"strict"` // written by init; the validate and watch commands do not read it
	NoColor    bool   `mapstructure:"no_color" yaml:"no_color"`
}

// Load reads schemalint.yaml (if present) from cwd or $HOME, applies a
// .env file if one exists, and layers SCHEMALINT_* environment variables
// on top.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("schemalint")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("SCHEMALINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("schema", "schema.prisma")
	v.SetDefault("strict", false)
	v.SetDefault("no_color", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
