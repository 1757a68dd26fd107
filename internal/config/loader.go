package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envAliases binds config keys to the plain variable names used in
// deployments, next to the derived ORACLE_GEMINI_API_KEY style names.
var envAliases = map[string][]string{
	"app.port":               {"APP_PORT", "PORT"},
	"app.environment":        {"APP_ENVIRONMENT"},
	"oracle.provider":        {"ORACLE_PROVIDER"},
	"oracle.timeout":         {"ORACLE_TIMEOUT"},
	"oracle.gemini.api_key":  {"ORACLE_GEMINI_API_KEY", "GEMINI_API_KEY"},
	"oracle.gemini.model":    {"ORACLE_GEMINI_MODEL", "GEMINI_MODEL"},
	"oracle.openai.api_key":  {"ORACLE_OPENAI_API_KEY", "OPENAI_API_KEY"},
	"oracle.openai.model":    {"ORACLE_OPENAI_MODEL", "OPENAI_MODEL"},
	"oracle.openai.base_url": {"ORACLE_OPENAI_BASE_URL", "OPENAI_BASE_URL"},
	"database.postgres_url":  {"DATABASE_POSTGRES_URL", "POSTGRES_URL"},
	"auth.required":          {"AUTH_REQUIRED"},
	"auth.jwt_secret":        {"AUTH_JWT_SECRET", "JWT_SECRET"},
	"auth.admin_role":        {"AUTH_ADMIN_ROLE"},
	"logging.level":          {"LOGGING_LEVEL", "LOG_LEVEL"},
	"logging.format":         {"LOGGING_FORMAT", "LOG_FORMAT"},
	"cors.allowed_origins":   {"CORS_ALLOWED_ORIGINS"},
}

// Load reads .env, then config.yaml (plus config.<APP_ENVIRONMENT>.yaml) from
// configPaths, then environment overrides, and validates the result.
func Load(configPaths ...string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{"./configs", "."}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := v.GetString("app.environment")
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional per-environment overlay

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Oracle.Provider = strings.ToLower(strings.TrimSpace(cfg.Oracle.Provider))
	cfg.CORS.AllowedOrigins = splitOrigins(cfg.CORS.AllowedOrigins)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tripgen")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("oracle.provider", "gemini")
	v.SetDefault("oracle.timeout", "60s")
	v.SetDefault("oracle.temperature", 0.7)
	v.SetDefault("oracle.top_p", 0.95)
	v.SetDefault("oracle.max_output_tokens", 8192)
	v.SetDefault("oracle.gemini.api_key", "")
	v.SetDefault("oracle.gemini.model", "gemini-1.5-flash")
	v.SetDefault("oracle.openai.api_key", "")
	v.SetDefault("oracle.openai.model", "gpt-4o-mini")
	v.SetDefault("oracle.openai.base_url", "")

	v.SetDefault("database.postgres_url", "")

	v.SetDefault("auth.required", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.admin_role", "admin")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func validateConfig(cfg *Config) error {
	switch cfg.Oracle.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("oracle.provider must be 'gemini' or 'openai', got %q", cfg.Oracle.Provider)
	}
	if cfg.Oracle.Timeout <= 0 {
		return fmt.Errorf("oracle.timeout must be positive")
	}
	if strings.TrimSpace(cfg.App.Port) == "" {
		return fmt.Errorf("app.port is required")
	}
	if cfg.Auth.Required && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth.required is set")
	}
	return nil
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, o := range strings.Split(item, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

// loadEnvFile loads the first .env found in the working directory or the
// module root. A missing file is not an error.
func loadEnvFile() {
	paths := []string{".env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory to the go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
