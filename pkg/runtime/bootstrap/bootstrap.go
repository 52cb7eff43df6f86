// Package bootstrap assembles the report pipeline from settings for the CLI
// and web entry points.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/spartan-home-services/eagleeye/pkg/models/domain"
	"github.com/spartan-home-services/eagleeye/pkg/runtime/logging"
	"github.com/spartan-home-services/eagleeye/pkg/services/config"
	"github.com/spartan-home-services/eagleeye/pkg/services/document"
	"github.com/spartan-home-services/eagleeye/pkg/services/dump"
	"github.com/spartan-home-services/eagleeye/pkg/services/report"
	"github.com/spartan-home-services/eagleeye/pkg/store/aurora"
	"github.com/spartan-home-services/eagleeye/pkg/store/output"
)

type Options struct {
	SettingsPath string
	// Profile and OutputDir override the settings file when set.
	Profile   string
	OutputDir string
	Console   io.Writer
	// LogToFile writes a log file under <output>/logs.
	LogToFile bool
}

type App struct {
	Settings  *config.Settings
	Logger    *logging.Logger
	Profile   *domain.Profile
	Client    *aurora.Client
	Output    *output.Directory
	Generator *report.Generator
	Dump      *dump.Service
}

// LoadSettings reads the settings file and applies command-line overrides.
func LoadSettings(opts Options) (*config.Settings, error) {
	cfg, err := config.LoadSettings(opts.SettingsPath)
	if err != nil {
		return nil, err
	}
	if opts.Profile != "" {
		cfg.Profile = opts.Profile
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	return cfg, nil
}

// CredentialsPath is the credentials file named in the settings, falling back
// to ~/.aurorasolarcfg.
func CredentialsPath(cfg *config.Settings) (string, error) {
	if cfg.CredentialsFile != "" {
		return cfg.CredentialsFile, nil
	}
	return config.DefaultCredentialsPath()
}

func LoadRegistry(cfg *config.Settings) (config.Registry, error) {
	path, err := CredentialsPath(cfg)
	if err != nil {
		return nil, err
	}
	return config.NewRegistry(path)
}

func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := LoadSettings(opts)
	if err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: cfg.LogLevel, Console: opts.Console}
	if opts.LogToFile {
		logOpts.Dir = filepath.Join(cfg.OutputDir, "logs")
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	app, err := assemble(ctx, cfg, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	return app, nil
}

func assemble(ctx context.Context, cfg *config.Settings, logger *logging.Logger) (*App, error) {
	registry, err := LoadRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	profile, err := registry.GetProfile(ctx, cfg.Profile)
	if err != nil {
		return nil, err
	}

	client, err := aurora.NewClient(aurora.Settings{
		BaseURL:  cfg.BaseURL,
		TenantID: profile.TenantID,
		APIKey:   profile.APIKey,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	dir, err := output.NewDirectory(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	var mirrors []output.Sink
	if cfg.S3.Bucket != "" {
		bucket, err := output.NewS3Bucket(ctx, output.S3Settings{
			Bucket:  cfg.S3.Bucket,
			Prefix:  cfg.S3.Prefix,
			Profile: cfg.S3.AWSProfile,
			Region:  cfg.S3.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3 mirror: %w", err)
		}
		mirrors = append(mirrors, bucket)
	}

	docSettings := document.DefaultSettings()
	docSettings.Brand = cfg.Report.Brand
	docSettings.DocumentTitle = cfg.Report.Title

	generator := report.NewGenerator(report.Dependencies{
		Service: client,
		Images:  client,
		Output:  dir,
		Mirrors: mirrors,
		Logger:  logger.Logger,
		NewBuilder: func(l zerolog.Logger) report.DocumentBuilder {
			return document.NewBuilder(l, docSettings)
		},
	}, report.Settings{
		LogoPath: cfg.LogoPath,
		Title:    cfg.Report.Title,
		Attempts: cfg.Report.Attempts,
		Pause:    cfg.Report.Pause,
	})

	logger.Info().
		Str("profile", profile.String()).
		Str("output_dir", dir.Path()).
		Int("mirrors", len(mirrors)).
		Msg("report pipeline ready")

	return &App{
		Settings:  cfg,
		Logger:    logger,
		Profile:   profile,
		Client:    client,
		Output:    dir,
		Generator: generator,
		Dump:      dump.NewService(client, nil),
	}, nil
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return a.Logger.WithContext(ctx)
}

func (a *App) Close() error {
	return a.Logger.Close()
}
