package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"account-db-compare/core/logger"
	"account-db-compare/core/storage"
	"account-db-compare/feature/account"
	"account-db-compare/feature/report"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Archiver holds the archiver database location.
	Archiver account.ArchiverConfig `mapstructure:"archiver"`
	// Nodes holds node discovery settings.
	Nodes account.NodesConfig `mapstructure:"nodes"`
	// Report holds output settings.
	Report report.Config `mapstructure:"report"`
	// Storage holds configuration for uploading reports to object storage.
	Storage storage.Config `mapstructure:"storage"`
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"archiver-db":  "archiver.path",
	"nodes-folder": "nodes.folder",
	"verbose":      "report.verbose",
	"output":       "report.output",
	"metrics-file": "report.metrics_file",
	"workers":      "nodes.workers",
	"upload":       "storage.enabled",
	"log-level":    "log.level",
}

// LoadConfig loads configuration from the .env file in path, environment
// variables and, when flags is not nil, explicitly set command-line flags.
// Flags take precedence over the environment.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. ARCHIVER_PATH -> archiver.path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			flag := flags.Lookup(name)
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings a comparison run cannot start without.
func (c *Config) Validate() error {
	return errors.Join(c.Archiver.Validate(), c.Nodes.Validate())
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags. Squashed structs share the parent prefix.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if field.Type.Kind() == reflect.Struct && strings.Contains(opts, "squash") {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), prefix)
			continue
		}

		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
