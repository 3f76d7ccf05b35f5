package commerce

import (
	"net/http"
	"time"

	"github.com/flowbaker/commerce-go/internal/auth"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL          = "https://api.commerce-platform.io"
	DefaultVersion          = 1
	DefaultProviderName     = "commerce"
	DefaultTimeout          = 30 * time.Second
	DefaultMaxResponseDepth = 512
)

// ClientConfig holds client configuration. Credentials are passed to NewClient
// separately and never stored here.
type ClientConfig struct {
	BaseURL       string
	Version       int
	HashAlgorithm string
	// ProviderName is cosmetic; it shows up in the User-Agent and in logs
	ProviderName     string
	UserAgent        string
	DefaultHeaders   map[string]string
	HTTPClient       *http.Client
	Timeout          time.Duration
	RateLimit        rate.Limit
	RateBurst        int
	MaxResponseDepth int
	Logger           *zerolog.Logger
}

// ClientOption configures a Client
type ClientOption func(*ClientConfig)

// DefaultConfig returns the configuration used when no options are given
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:          DefaultBaseURL,
		Version:          DefaultVersion,
		HashAlgorithm:    auth.DefaultAlgorithm,
		ProviderName:     DefaultProviderName,
		DefaultHeaders:   map[string]string{},
		Timeout:          DefaultTimeout,
		MaxResponseDepth: DefaultMaxResponseDepth,
	}
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

// WithVersion selects the /v<version>/ API prefix
func WithVersion(version int) ClientOption {
	return func(c *ClientConfig) {
		if version > 0 {
			c.Version = version
		}
	}
}

func WithHashAlgorithm(algorithm string) ClientOption {
	return func(c *ClientConfig) {
		c.HashAlgorithm = algorithm
	}
}

func WithProviderName(name string) ClientOption {
	return func(c *ClientConfig) {
		c.ProviderName = name
	}
}

func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}

// WithDefaultHeaders adds headers to every request. Authentication headers always win.
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *ClientConfig) {
		for key, value := range headers {
			c.DefaultHeaders[key] = value
		}
	}
}

// WithHTTPClient sets the transport. Timeouts, TLS and redirects are its concern.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithRateLimit throttles outgoing requests to requestsPerSecond with the given burst
func WithRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *ClientConfig) {
		c.RateLimit = rate.Limit(requestsPerSecond)
		c.RateBurst = burst
	}
}

// WithMaxResponseDepth sets the nesting depth above which a response counts as malformed
func WithMaxResponseDepth(depth int) ClientOption {
	return func(c *ClientConfig) {
		if depth > 0 {
			c.MaxResponseDepth = depth
		}
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *ClientConfig) {
		c.Logger = &logger
	}
}

func (c *ClientConfig) logger() zerolog.Logger {
	if c.Logger != nil {
		return *c.Logger
	}
	return log.Logger
}
