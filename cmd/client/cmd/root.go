package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"agreementlog/internal/app/client"
	"agreementlog/internal/app/client/config"
	"agreementlog/internal/utils/logger"
)

var (
	cfgFile   string
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "agreementlog",
	Short: "agreementlog - commit and verify sustainability agreements",
	Long: `agreementlog commits sustainability action agreements to the server,
where each agreement is fingerprinted with SHA-256, stored encrypted and
anchored with an external timestamping service.

The fingerprint hash is the public handle: share it with a counterparty
so they can look the agreement up and countersign it.`,
	PersistentPreRunE: setupApp,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if app != nil {
			app.Shutdown()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if debug {
		cfg.Env = "dev"
	}

	log = logger.New(cfg.Env)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init application: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), "app", app))

	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		configDir := filepath.Join(home, ".agreementlog")
		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file, defaults apply.
	}

	return config.MustLoad(), nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "agreement server address")
}
