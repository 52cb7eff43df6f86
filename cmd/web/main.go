package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spartan-home-services/eagleeye/pkg/runtime/bootstrap"
	"github.com/spartan-home-services/eagleeye/pkg/server"
)

var opts bootstrap.Options

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Spartan EagleEye reports",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&opts.SettingsPath, "config", "c", "", "Path to a settings file (yaml, toml or json)")
	rootCmd.Flags().StringVarP(&opts.Profile, "profile", "p", "", "Credential profile in ~/.aurorasolarcfg")
	rootCmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "Directory for generated reports")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	opts.Console = os.Stdout
	opts.LogToFile = true
	app, err := bootstrap.New(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to initialize report pipeline: %w", err)
	}
	defer app.Close()

	logger := app.Logger.Logger

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if host == "" || port == "" {
		return fmt.Errorf("missing SERVER_HOST or SERVER_PORT in environment")
	}

	webAPI := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Generator:  app.Generator,
			Dumper:     app.Dump,
			ReportsDir: app.Output.Path(),
			Logger:     logger,
		},
	})

	logger.Info().
		Str("profile", app.Profile.String()).
		Str("reports", app.Output.Path()).
		Msg("configuration loaded")

	return webAPI.Start()
}
