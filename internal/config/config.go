package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration
type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIVersion    int           `mapstructure:"api_version"`
	SharedKey     string        `mapstructure:"shared_key"`
	PrivateKey    string        `mapstructure:"private_key"`
	HashAlgorithm string        `mapstructure:"hash_algorithm"`
	ProviderName  string        `mapstructure:"provider_name"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RateLimit     float64       `mapstructure:"rate_limit"`
	RateBurst     int           `mapstructure:"rate_burst"`
}

var envMappings = map[string]string{
	"base_url":       "COMMERCE_BASE_URL",
	"api_version":    "COMMERCE_API_VERSION",
	"shared_key":     "COMMERCE_SHARED_KEY",
	"private_key":    "COMMERCE_PRIVATE_KEY",
	"hash_algorithm": "COMMERCE_HASH_ALGORITHM",
	"provider_name":  "COMMERCE_PROVIDER_NAME",
	"timeout":        "COMMERCE_TIMEOUT",
	"rate_limit":     "COMMERCE_RATE_LIMIT",
	"rate_burst":     "COMMERCE_RATE_BURST",
}

// Load reads configuration from configFile (or commerce.yaml in the usual
// places when empty) and COMMERCE_* environment variables
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("commerce")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.commerce")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Debug().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	log.Debug().
		Str("base_url", config.BaseURL).
		Int("api_version", config.APIVersion).
		Str("provider_name", config.ProviderName).
		Msg("Config loaded")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", commerce.DefaultBaseURL)
	v.SetDefault("api_version", commerce.DefaultVersion)
	v.SetDefault("hash_algorithm", "sha256")
	v.SetDefault("provider_name", commerce.DefaultProviderName)
	v.SetDefault("timeout", commerce.DefaultTimeout)
}

// Validate reports every missing credential at once
func (c *Config) Validate() error {
	var missingVars []string

	if c.SharedKey == "" {
		missingVars = append(missingVars, envMappings["shared_key"])
	}

	if c.PrivateKey == "" {
		missingVars = append(missingVars, envMappings["private_key"])
	}

	if c.BaseURL == "" {
		missingVars = append(missingVars, envMappings["base_url"])
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingVars, ", "))
	}

	return nil
}

// ClientOptions converts the configuration into commerce client options
func (c *Config) ClientOptions() []commerce.ClientOption {
	options := []commerce.ClientOption{
		commerce.WithBaseURL(c.BaseURL),
		commerce.WithVersion(c.APIVersion),
		commerce.WithHashAlgorithm(c.HashAlgorithm),
		commerce.WithProviderName(c.ProviderName),
		commerce.WithTimeout(c.Timeout),
		commerce.WithLogger(log.Logger),
	}

	if c.RateLimit > 0 {
		options = append(options, commerce.WithRateLimit(c.RateLimit, c.RateBurst))
	}

	return options
}
