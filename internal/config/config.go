package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process configuration, loaded once at startup and passed
// explicitly to the components that need it. Business-level settings
// (default currency, enabled modules, quotation preferences) live in the
// database and are managed by the settings service, not here.
type Config struct {
	Server struct {
		Port           int      `mapstructure:"port"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"server"`

	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
}

// Load reads configs/config.yaml (optional) and the environment.
func Load() *Config {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")
	v.AutomaticEnv()

	// Sensible defaults so the binary works without a config file.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("database.url", "")

	// Config file is optional.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("config: using defaults and environment (%v)", err)
		}
	}

	// Environment overrides. ALLOWED_ORIGINS is a comma-separated list.
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}
	if port := v.GetInt("SERVER_PORT"); port != 0 {
		v.Set("server.port", port)
	}
	if origins := v.GetString("ALLOWED_ORIGINS"); origins != "" {
		v.Set("server.allowed_origins", splitOrigins(origins))
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		log.Fatalf("config: unmarshal failed: %v", err)
	}
	return cfg
}

func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
