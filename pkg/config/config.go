package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS   CORSConfig
	Log    LogConfig
	Grid   GridConfig
	Export ExportConfig
	Seed   SeedConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// GridConfig describes the weekly grid: which days exist, which time slots a
// class may occupy, and the slot a duplicated class is parked in. An empty
// slot list relaxes validation to any HH:MM time of day.
type GridConfig struct {
	Days        []string
	TimeSlots   []string
	DefaultSlot string
}

// ExportConfig gates the schedule export endpoints.
type ExportConfig struct {
	Enabled bool
}

// SeedConfig controls whether the store starts from the bundled fixture set.
type SeedConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Grid = GridConfig{
		Days:        splitAndTrim(v.GetString("GRID_DAYS")),
		TimeSlots:   splitAndTrim(v.GetString("GRID_TIME_SLOTS")),
		DefaultSlot: v.GetString("GRID_DEFAULT_SLOT"),
	}

	cfg.Export = ExportConfig{Enabled: v.GetBool("ENABLE_EXPORT")}
	cfg.Seed = SeedConfig{Enabled: v.GetBool("SEED_FIXTURES")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GRID_DAYS", "Monday,Tuesday,Wednesday,Thursday,Friday")
	v.SetDefault("GRID_TIME_SLOTS", "08:00,09:00,10:00,11:00,12:00,13:00,14:00,15:00,16:00")
	v.SetDefault("GRID_DEFAULT_SLOT", "09:00")

	v.SetDefault("ENABLE_EXPORT", true)
	v.SetDefault("SEED_FIXTURES", true)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
