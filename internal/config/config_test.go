package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenvHelpers(t *testing.T) {
	t.Setenv("SITETRACK_TEST_STR", "value")
	t.Setenv("SITETRACK_TEST_INT", "42")
	t.Setenv("SITETRACK_TEST_BAD_INT", "not-a-number")
	t.Setenv("SITETRACK_TEST_FLOAT", "2.5")
	t.Setenv("SITETRACK_TEST_BAD_FLOAT", "fast")

	assert.Equal(t, "value", getenv("SITETRACK_TEST_STR", "def"))
	assert.Equal(t, "def", getenv("SITETRACK_TEST_MISSING", "def"))

	assert.Equal(t, 42, getenvInt("SITETRACK_TEST_INT", 7))
	assert.Equal(t, 7, getenvInt("SITETRACK_TEST_BAD_INT", 7))
	assert.Equal(t, 7, getenvInt("SITETRACK_TEST_MISSING", 7))

	assert.Equal(t, 2.5, getenvFloat("SITETRACK_TEST_FLOAT", 1))
	assert.Equal(t, 1.0, getenvFloat("SITETRACK_TEST_BAD_FLOAT", 1))
	assert.Equal(t, 1.0, getenvFloat("SITETRACK_TEST_MISSING", 1))
}

func TestGetenvBool(t *testing.T) {
	cases := []struct {
		value string
		def   bool
		want  bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"0", true, false},
		{"false", true, false},
		{"off", true, false},
		{"", true, true},
		{"", false, false},
		{"maybe", false, false},
		{"maybe", true, true},
	}
	for _, tc := range cases {
		t.Setenv("SITETRACK_TEST_BOOL", tc.value)
		assert.Equal(t, tc.want, getenvBool("SITETRACK_TEST_BOOL", tc.def), "value=%q def=%v", tc.value, tc.def)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_SERVICE", "")
	t.Setenv("STOCK_LOCK_TIMEOUT_MS", "")
	t.Setenv("RATE_LIMIT_ENABLED", "")

	cfg := Load()

	assert.Equal(t, "sitetrack", cfg.AppName)
	assert.Equal(t, 5000, cfg.LockTimeoutMillis)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.ConcurrencyTTLSeconds)
}
