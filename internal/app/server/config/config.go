package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress  = ":8080"
	defaultAnchorURL   = "http://localhost:8002/call-express"
	defaultAnchorWait  = 5 * time.Second
	defaultAnchorTries = 3
	defaultMigrations  = "migrations"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Crypto Crypto
	Anchor Anchor
	Logger Logger
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

// Crypto holds the at-rest encryption key material: a raw 32-byte hex key,
// or a passphrase+salt pair to derive one. Never logged.
type Crypto struct {
	KeyHex     string `env:"ENCRYPTION_KEY"`
	Passphrase string `env:"ENCRYPTION_PASSPHRASE"`
	Salt       string `env:"ENCRYPTION_SALT"`
}

type Anchor struct {
	URL        string        `env:"ANCHOR_URL"`
	Timeout    time.Duration `env:"ANCHOR_TIMEOUT"`
	MaxRetries int           `env:"ANCHOR_MAX_RETRIES"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MustLoad reads configuration once at process startup. The returned struct
// is treated as immutable thereafter.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	config := Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{RunAddress: viper.GetString("run_address")},
		Crypto: Crypto{
			KeyHex:     viper.GetString("encryption_key"),
			Passphrase: viper.GetString("encryption_passphrase"),
			Salt:       viper.GetString("encryption_salt"),
		},
		Anchor: Anchor{
			URL:        viper.GetString("anchor_url"),
			Timeout:    viper.GetDuration("anchor_timeout"),
			MaxRetries: viper.GetInt("anchor_max_retries"),
		},
		Logger: Logger{LogLevel: viper.GetString("log_level")},
	}

	if config.Server.RunAddress == "" {
		config.Server.RunAddress = defaultRunAddress
	}
	if config.DB.Migrations == "" {
		config.DB.Migrations = defaultMigrations
	}
	if config.Anchor.URL == "" {
		config.Anchor.URL = defaultAnchorURL
	}
	if config.Anchor.Timeout <= 0 {
		config.Anchor.Timeout = defaultAnchorWait
	}
	if config.Anchor.MaxRetries <= 0 {
		config.Anchor.MaxRetries = defaultAnchorTries
	}

	return &config
}
