package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("LEADHUB_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", getEnv("LEADHUB_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("LEADHUB_TEST_MISSING", "fallback"))
	assert.Equal(t, "", getEnv("LEADHUB_TEST_MISSING", ""))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("LEADHUB_TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("LEADHUB_TEST_INT", 7))

	t.Setenv("LEADHUB_TEST_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("LEADHUB_TEST_INT", 7))

	assert.Equal(t, 7, getEnvAsInt("LEADHUB_TEST_INT_MISSING", 7))
}
