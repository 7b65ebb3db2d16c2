package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Addr        string
	CORSOrigins string
}

type AppConfig struct {
	ServiceName string
	LogLevel    string
	Env         string
	HTTP        HTTPConfig
}

// IsProduction reports whether APP_ENV is "production".
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// New returns a viper instance reading environment variables and, when
// file is non-empty, the given config file. Keys are lower snake case and map
// to upper case environment variables (http_addr -> HTTP_ADDR).
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("service_name", "animes")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("cors_allowed_origins", "")

	if strings.TrimSpace(file) != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return v, nil
}

func Load(v *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		ServiceName: strings.TrimSpace(v.GetString("service_name")),
		LogLevel:    strings.TrimSpace(v.GetString("log_level")),
		Env:         strings.TrimSpace(v.GetString("app_env")),
		HTTP: HTTPConfig{
			Addr:        strings.TrimSpace(v.GetString("http_addr")),
			CORSOrigins: strings.TrimSpace(v.GetString("cors_allowed_origins")),
		},
	}
	if cfg.ServiceName == "" {
		return AppConfig{}, fmt.Errorf("SERVICE_NAME is required")
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
