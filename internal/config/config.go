package config

import (
	"fmt"

	"github.com/longkey1/chatbot/internal/gemini"
	"github.com/spf13/viper"
)

// Config holds the configuration for the chatbot
type Config struct {
	APIURL             string `toml:"api_url" mapstructure:"api_url"` // Full endpoint URL; takes precedence over the gemini_* settings
	GeminiBaseURL      string `toml:"gemini_base_url" mapstructure:"gemini_base_url"`
	GeminiToken        string `toml:"gemini_token" mapstructure:"gemini_token"`
	Model              string `toml:"model" mapstructure:"model"`
	IncludePlaceholder bool   `toml:"include_placeholder" mapstructure:"include_placeholder"`
	SerializeRequests  bool   `toml:"serialize_requests" mapstructure:"serialize_requests"`
	SurfaceErrors      bool   `toml:"surface_errors" mapstructure:"surface_errors"`
	LogLevel           string `toml:"log_level" mapstructure:"log_level"`   // panic, fatal, error, warn, info, debug, trace
	LogFormat          string `toml:"log_format" mapstructure:"log_format"` // "text" or "json"
	EnvFile            string `toml:"env_file" mapstructure:"env_file"`     // Optional .env file loaded before reading the environment
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		APIURL:             "",
		GeminiBaseURL:      gemini.DefaultBaseURL,
		GeminiToken:        "$GEMINI_API_KEY",
		Model:              gemini.DefaultModel,
		IncludePlaceholder: false,
		SerializeRequests:  false,
		SurfaceErrors:      false,
		LogLevel:           "info",
		LogFormat:          "text",
		EnvFile:            ".env",
	}
}

// SetDefaults registers the default values with viper
func SetDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("gemini_base_url", d.GeminiBaseURL)
	v.SetDefault("gemini_token", d.GeminiToken)
	v.SetDefault("model", d.Model)
	v.SetDefault("include_placeholder", d.IncludePlaceholder)
	v.SetDefault("serialize_requests", d.SerializeRequests)
	v.SetDefault("surface_errors", d.SurfaceErrors)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("env_file", d.EnvFile)
}

// LoadConfig loads configuration from viper
func LoadConfig(v *viper.Viper) (*Config, error) {
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	config.APIURL = expandEnvVar(config.APIURL)
	config.GeminiBaseURL = expandEnvVar(config.GeminiBaseURL)
	config.GeminiToken = expandEnvVar(config.GeminiToken)

	return config, nil
}
