package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ajb0730/pc2xl/pkg/export"
	"github.com/ajb0730/pc2xl/pkg/server"
	"github.com/ajb0730/pc2xl/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var settingsPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the report conversion web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&settingsPath, "settings", "c", "",
		"Path to an optional settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Defaults: export.Options{
			Prefix:    settings.Prefix,
			Separator: settings.Separator,
		},
	})

	return api.Start()
}
