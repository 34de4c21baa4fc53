package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	Mistral   MistralConfig   `yaml:"mistral" mapstructure:"mistral"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Ask       AskConfig       `yaml:"ask" mapstructure:"ask"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the Postgres connection pool.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// LLMConfig selects the completion provider used to answer questions.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "anthropic" or "gemini"
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key          string `yaml:"key" mapstructure:"key"`
	Model        string `yaml:"model" mapstructure:"model"`
	ExtractModel string `yaml:"extract_model" mapstructure:"extract_model"`
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// MistralConfig holds Mistral OCR settings.
type MistralConfig struct {
	Key      string `yaml:"key" mapstructure:"key"`
	OCRModel string `yaml:"ocr_model" mapstructure:"ocr_model"`
}

// ExtractConfig configures document extraction.
type ExtractConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"` // "gemini", "mistral" or "local"
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	MaxUploadMB   int    `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`
}

// AskConfig configures the question answering pipeline.
type AskConfig struct {
	ProfilesPath string `yaml:"profiles_path" mapstructure:"profiles_path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port          int      `yaml:"port" mapstructure:"port"`
	CORSOrigins   []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	// LLMRatePerSec caps model-backed routes. Zero disables the limit.
	LLMRatePerSec float64  `yaml:"llm_rate_per_sec" mapstructure:"llm_rate_per_sec"`
	LLMBurst      int      `yaml:"llm_burst" mapstructure:"llm_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROCURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.extract_model", "claude-haiku-4-5-20251001")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("mistral.ocr_model", "mistral-ocr-latest")
	v.SetDefault("extract.provider", "gemini")
	v.SetDefault("extract.pdftotext_path", "pdftotext")
	v.SetDefault("extract.max_upload_mb", 20)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.llm_rate_per_sec", 0.0)
	v.SetDefault("server.llm_burst", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Keys without a default are invisible to Unmarshal unless bound.
	for _, key := range []string{
		"store.database_url",
		"anthropic.key",
		"gemini.key",
		"mistral.key",
		"ask.profiles_path",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings required by a command mode are present.
// Modes: "serve", "ask", "extract", "migrate", "import".
func (c *Config) Validate(mode string) error {
	var errs []string

	var needsLLM, needsExtract bool
	switch mode {
	case "serve":
		needsLLM, needsExtract = true, true
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	case "ask":
		needsLLM = true
	case "extract":
		needsExtract = true
	case "migrate", "import":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Store.DatabaseURL == "" {
		errs = append(errs, "store.database_url is required")
	}

	if needsLLM {
		switch c.LLM.Provider {
		case "anthropic":
			errs = appendMissing(errs, c.Anthropic.Key, "anthropic.key")
		case "gemini":
			errs = appendMissing(errs, c.Gemini.Key, "gemini.key")
		default:
			errs = append(errs, fmt.Sprintf("llm.provider %q is not supported", c.LLM.Provider))
		}
	}

	if needsExtract {
		switch c.Extract.Provider {
		case "gemini":
			errs = appendMissing(errs, c.Gemini.Key, "gemini.key")
		case "mistral":
			errs = appendMissing(errs, c.Mistral.Key, "mistral.key")
			errs = appendMissing(errs, c.Anthropic.Key, "anthropic.key")
		case "local":
			errs = appendMissing(errs, c.Anthropic.Key, "anthropic.key")
		default:
			errs = append(errs, fmt.Sprintf("extract.provider %q is not supported", c.Extract.Provider))
		}
		if c.Extract.MaxUploadMB <= 0 {
			errs = append(errs, "extract.max_upload_mb must be > 0")
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// appendMissing records key as required when value is empty, once.
func appendMissing(errs []string, value, key string) []string {
	if value != "" {
		return errs
	}
	msg := key + " is required"
	for _, e := range errs {
		if e == msg {
			return errs
		}
	}
	return append(errs, msg)
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
