package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Zero(t, cfg.Server.LLMRatePerSec)
	assert.Zero(t, cfg.Server.LLMBurst)
	assert.Equal(t, int32(10), cfg.Store.MaxConns)
	assert.Equal(t, int32(2), cfg.Store.MinConns)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.ExtractModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "mistral-ocr-latest", cfg.Mistral.OCRModel)
	assert.Equal(t, "gemini", cfg.Extract.Provider)
	assert.Equal(t, "pdftotext", cfg.Extract.PdfToTextPath)
	assert.Equal(t, 20, cfg.Extract.MaxUploadMB)
	assert.Empty(t, cfg.Store.DatabaseURL)
	assert.Empty(t, cfg.Ask.ProfilesPath)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  database_url: postgres://localhost/procure
log:
  level: debug
  format: console
server:
  port: 9090
llm:
  provider: gemini
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/procure", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	// Defaults still apply for unset values
	assert.Equal(t, 20, cfg.Extract.MaxUploadMB)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
llm:
  provider: gemini
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("PROCURE_LLM_PROVIDER", "anthropic")
	t.Setenv("PROCURE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvWithoutDefault(t *testing.T) {
	chdirTemp(t)

	t.Setenv("PROCURE_STORE_DATABASE_URL", "postgres://env/db")
	t.Setenv("PROCURE_ANTHROPIC_KEY", "sk-ant-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.Store.DatabaseURL)
	assert.Equal(t, "sk-ant-env", cfg.Anthropic.Key)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.DatabaseURL = "postgres://localhost/test"
	cfg.LLM.Provider = "anthropic"
	cfg.Anthropic.Key = "sk-ant-key"
	cfg.Gemini.Key = "gm-key"
	cfg.Extract.Provider = "gemini"
	cfg.Extract.MaxUploadMB = 20
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateServe_AllPresent(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("serve"))
}

func TestValidateServe_MissingFields(t *testing.T) {
	cfg := &Config{}
	cfg.LLM.Provider = "anthropic"
	cfg.Extract.Provider = "mistral"
	cfg.Extract.MaxUploadMB = 20
	cfg.Server.Port = 8080

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
	assert.Contains(t, err.Error(), "anthropic.key is required")
	assert.Contains(t, err.Error(), "mistral.key is required")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateAsk_GeminiProvider(t *testing.T) {
	cfg := validDefaults()
	cfg.LLM.Provider = "gemini"
	cfg.Gemini.Key = ""

	err := cfg.Validate("ask")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini.key is required")
}

func TestValidateAsk_UnknownProvider(t *testing.T) {
	cfg := validDefaults()
	cfg.LLM.Provider = "openai"

	err := cfg.Validate("ask")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `llm.provider "openai" is not supported`)
}

func TestValidateExtract_LocalNeedsAnthropic(t *testing.T) {
	cfg := validDefaults()
	cfg.Extract.Provider = "local"
	cfg.Anthropic.Key = ""

	err := cfg.Validate("extract")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")
}

func TestValidateMigrate_OnlyNeedsDatabase(t *testing.T) {
	cfg := &Config{}
	cfg.Store.DatabaseURL = "postgres://localhost/test"

	assert.NoError(t, cfg.Validate("migrate"))
	assert.NoError(t, cfg.Validate("import"))
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestAppendMissing_Dedupes(t *testing.T) {
	var errs []string
	errs = appendMissing(errs, "", "anthropic.key")
	errs = appendMissing(errs, "", "anthropic.key")
	errs = appendMissing(errs, "set", "gemini.key")
	assert.Equal(t, []string{"anthropic.key is required"}, errs)
}
