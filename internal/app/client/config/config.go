package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "local"
	defaultConfigDir     = ".agreementlog"
	defaultReceiptsFile  = "receipts.db"
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	Token         string `mapstructure:"token"`
	ReceiptsPath  string `mapstructure:"receipts_path"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
}

// MustLoad reads the client configuration from .env and the environment.
// The bearer token is issued by the account service; the client just
// carries it.
func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)

	cfg := &Config{
		Env:           viper.GetString("app_env"),
		ServerAddress: viper.GetString("server_address"),
		Token:         viper.GetString("token"),
		ReceiptsPath:  viper.GetString("receipts_path"),
		EnableTLS:     viper.GetBool("enable_tls"),
	}

	if cfg.ReceiptsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.ReceiptsPath = filepath.Join(home, defaultConfigDir, defaultReceiptsFile)
	}

	return cfg
}
