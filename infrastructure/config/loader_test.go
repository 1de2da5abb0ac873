package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verge88/api-npa3/infrastructure/config"
)

type fetchSection struct {
	Timeout  time.Duration `env:"TEST_NPA_TIMEOUT"  yaml:"timeout"`
	Attempts int           `env:"TEST_NPA_ATTEMPTS" yaml:"attempts"`
	Backend  string        `yaml:"backend"`
}

type testConfig struct {
	Name  string       `env:"TEST_NPA_NAME" yaml:"name"`
	Fetch fetchSection `yaml:"fetch"`
	Tags  []string     `env:"TEST_NPA_TAGS" yaml:"tags"`
}

func setTestDefaults(c *testConfig) {
	if c.Fetch.Backend == "" {
		c.Fetch.Backend = "http"
	}
	if c.Fetch.Attempts == 0 {
		c.Fetch.Attempts = 3
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeConfig(t, "name: npa\nfetch:\n  timeout: 5s\n  attempts: 2\n")

	cfg, err := config.Load[testConfig](path)
	require.NoError(t, err)

	assert.Equal(t, "npa", cfg.Name)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2, cfg.Fetch.Attempts)
}

func TestLoadWithDefaults_EnvWinsOverFileAndDefaults(t *testing.T) {
	t.Setenv("TEST_NPA_TIMEOUT", "45s")
	t.Setenv("TEST_NPA_ATTEMPTS", "7")
	t.Setenv("TEST_NPA_TAGS", "a, b ,c")

	path := writeConfig(t, "fetch:\n  timeout: 5s\n")

	cfg, err := config.LoadWithDefaults(path, false, setTestDefaults)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 7, cfg.Fetch.Attempts)
	assert.Equal(t, "http", cfg.Fetch.Backend)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
}

func TestLoadWithDefaults_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yml")

	_, err := config.LoadWithDefaults(missing, false, setTestDefaults)
	require.Error(t, err)

	cfg, err := config.LoadWithDefaults(missing, true, setTestDefaults)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Fetch.Attempts)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "name: [unterminated\n")

	_, err := config.Load[testConfig](path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "config.yml", config.GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/npa.yml")
	assert.Equal(t, "/etc/npa.yml", config.GetConfigPath("config.yml"))
}

func TestValidateAbsoluteURL(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.ValidateAbsoluteURL("source.base_url", "https://meganorm.ru"))

	err := config.ValidateAbsoluteURL("source.base_url", "/relative")
	var vErr *config.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "source.base_url", vErr.Field)
}

func TestValidateOneOf(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.ValidateOneOf("logging.format", "console", "json", "console"))

	err := config.ValidateOneOf("logging.format", "xml", "json", "console")
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "logging.format", verr.Field)
	assert.Contains(t, verr.Message, "json, console")
}
