package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Oracle   OracleConfig   `mapstructure:"oracle"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Port        string `mapstructure:"port"`
}

// OracleConfig selects and tunes the itinerary generator.
type OracleConfig struct {
	Provider        string        `mapstructure:"provider"` // gemini | openai
	Timeout         time.Duration `mapstructure:"timeout"`
	Temperature     float32       `mapstructure:"temperature"`
	TopP            float32       `mapstructure:"top_p"`
	MaxOutputTokens int32         `mapstructure:"max_output_tokens"`
	Gemini          GeminiConfig  `mapstructure:"gemini"`
	OpenAI          OpenAIConfig  `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// APIKey returns the key of the selected provider.
func (o OracleConfig) APIKey() string {
	if o.Provider == "openai" {
		return o.OpenAI.APIKey
	}
	return o.Gemini.APIKey
}

// Model returns the model of the selected provider.
func (o OracleConfig) Model() string {
	if o.Provider == "openai" {
		return o.OpenAI.Model
	}
	return o.Gemini.Model
}

// DatabaseConfig points at the usage ledger. An empty URL disables it.
type DatabaseConfig struct {
	PostgresURL string `mapstructure:"postgres_url"`
}

type AuthConfig struct {
	Required  bool   `mapstructure:"required"`
	JWTSecret string `mapstructure:"jwt_secret"`
	AdminRole string `mapstructure:"admin_role"` // role allowed to read generation logs
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
