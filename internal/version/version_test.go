package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "1.2.3"

	agent := UserAgent("shop")
	assert.True(t, strings.HasPrefix(agent, "commerce-go/1.2.3 ("))
	assert.True(t, strings.HasSuffix(agent, " shop"))

	assert.NotContains(t, UserAgent(""), ") ")
}

func TestGet(t *testing.T) {
	original := Version
	defer func() { Version = original }()

	Version = "2.0.0"

	info := Get()
	assert.Equal(t, "2.0.0", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
