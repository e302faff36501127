// internal/config/config.go
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Database   struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Session struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`
	SeedFile string `mapstructure:"seed_file"`
	CORS     struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

func Load() Config {
	viper.SetDefault("listen_addr", "127.0.0.1:8080")
	viper.SetDefault("session.ttl", "12h")
	viper.SetDefault("cors.allowed_origins", []string{
		"http://localhost:5173", "http://localhost:3000",
		"http://127.0.0.1:5173", "http://127.0.0.1:3000",
	})

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	_ = viper.ReadInConfig()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit bindings
	_ = viper.BindEnv("listen_addr", "LISTEN_ADDR")
	_ = viper.BindEnv("database.url", "DATABASE_URL")
	_ = viper.BindEnv("session.ttl", "SESSION_TTL")
	_ = viper.BindEnv("seed_file", "SEED_FILE")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		panic("config error: " + err.Error())
	}
	return c
}
