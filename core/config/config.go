package config

import (
	"errors"
	"reflect"
	"strings"

	"ar-sync/core/crm"
	"ar-sync/core/database"
	"ar-sync/core/erp"
	"ar-sync/core/logger"
	"ar-sync/core/server"
	"ar-sync/core/storage"
	"ar-sync/feature/arsync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (reports, snapshot).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run-history database.
	Database database.Config `mapstructure:"database"`
	// NetSuite holds the token-based-authentication credentials.
	NetSuite erp.Config `mapstructure:"netsuite"`
	// HubSpot holds the private-app token.
	HubSpot crm.Config `mapstructure:"hubspot"`
	// Sync holds the matching and write policy.
	Sync arsync.Config `mapstructure:"sync"`
}

// legacyEnv maps variable names used by earlier deployments to config keys.
// NETSUITE_* and HUBSPOT_ACCESS_TOKEN already match the nested form.
var legacyEnv = map[string]string{
	"server.port":          "PORT",
	"server.sync_on_start": "SYNC_ON_START",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy names are checked after the nested form
	for key, env := range legacyEnv {
		nested := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, nested, env); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports every missing credential and invalid policy at once.
// Credential errors are *apierror.AuthConfigError and can be found with errors.As.
func (c *Config) Validate() error {
	return errors.Join(
		c.NetSuite.Validate(),
		c.HubSpot.Validate(),
		c.Sync.Validate(),
	)
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
