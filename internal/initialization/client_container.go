package initialization

import (
	"fmt"

	"github.com/flowbaker/commerce-go/internal/config"
	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/rs/zerolog/log"
)

// ClientContainerOptions carries the CLI flags that shape configuration
type ClientContainerOptions struct {
	ConfigFile string
	BaseURL    string
	APIVersion int
}

// ClientContainer lazily loads configuration and builds the commerce client
type ClientContainer struct {
	options ClientContainerOptions
	config  *config.Config
	client  *commerce.Client
}

func NewClientContainer() *ClientContainer {
	return &ClientContainer{}
}

// Configure sets the flag values; it must be called before the first Get call
func (c *ClientContainer) Configure(options ClientContainerOptions) {
	c.options = options
	c.config = nil
	c.client = nil
}

// GetConfig loads and validates the configuration once
func (c *ClientContainer) GetConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	cfg, err := config.Load(c.options.ConfigFile)
	if err != nil {
		return nil, err
	}

	if c.options.BaseURL != "" {
		cfg.BaseURL = c.options.BaseURL
	}

	if c.options.APIVersion > 0 {
		cfg.APIVersion = c.options.APIVersion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.config = cfg
	return cfg, nil
}

// GetClient returns the commerce client, building it on first use
func (c *ClientContainer) GetClient() (*commerce.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	cfg, err := c.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	c.client = commerce.NewClient(cfg.SharedKey, cfg.PrivateKey, cfg.ClientOptions()...)

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Int("api_version", c.client.Version()).
		Str("session_id", c.client.SessionID()).
		Msg("Commerce client initialized")

	return c.client, nil
}
