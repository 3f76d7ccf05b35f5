package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flowbaker/commerce-go/pkg/clients/commerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commerce.yaml")

	err := os.WriteFile(path, []byte(`
base_url: https://shop.example.test
api_version: 2
shared_key: file-key
private_key: file-secret
hash_algorithm: sha512
provider_name: acme
timeout: 5s
rate_limit: 2.5
rate_burst: 3
`), 0o600)
	require.NoError(t, err)

	t.Setenv("COMMERCE_SHARED_KEY", "env-key")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.test", config.BaseURL)
	assert.Equal(t, 2, config.APIVersion)
	assert.Equal(t, "env-key", config.SharedKey)
	assert.Equal(t, "file-secret", config.PrivateKey)
	assert.Equal(t, "sha512", config.HashAlgorithm)
	assert.Equal(t, "acme", config.ProviderName)
	assert.Equal(t, 5*time.Second, config.Timeout)
	assert.Equal(t, 2.5, config.RateLimit)
	assert.Equal(t, 3, config.RateBurst)
	assert.NoError(t, config.Validate())
	assert.Len(t, config.ClientOptions(), 7)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("COMMERCE_SHARED_KEY", "K")
	t.Setenv("COMMERCE_PRIVATE_KEY", "P")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, commerce.DefaultBaseURL, config.BaseURL)
	assert.Equal(t, commerce.DefaultVersion, config.APIVersion)
	assert.Equal(t, "sha256", config.HashAlgorithm)
	assert.Equal(t, commerce.DefaultProviderName, config.ProviderName)
	assert.Equal(t, commerce.DefaultTimeout, config.Timeout)
	assert.NoError(t, config.Validate())
	assert.Len(t, config.ClientOptions(), 6)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	err := (&Config{BaseURL: "https://shop.example.test"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMMERCE_SHARED_KEY")
	assert.Contains(t, err.Error(), "COMMERCE_PRIVATE_KEY")
	assert.NotContains(t, err.Error(), "COMMERCE_BASE_URL")
}
