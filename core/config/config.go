package config

import (
	"reflect"
	"strings"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/golembase"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/journal"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/logger"
	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Push holds defaults for the reconciliation push run.
type Push struct {
	// BatchSize is how many entities go into one create or update call.
	BatchSize int `mapstructure:"batch_size" default:"15"`
	// TTLSeconds is the lifetime requested for written entities.
	TTLSeconds int64 `mapstructure:"ttl_seconds" default:"86400"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Chain holds configuration for the GolemBase endpoint.
	Chain golembase.Config `mapstructure:"chain"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Journal holds configuration for the run-history database.
	Journal journal.Config `mapstructure:"journal"`
	// Push holds defaults for the push command.
	Push Push `mapstructure:"push"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. CHAIN_RPC_URL -> chain.rpc_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
