// Package config loads application settings and Aurora credential profiles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "EAGLEEYE"

type Settings struct {
	Profile         string         `mapstructure:"profile"`
	CredentialsFile string         `mapstructure:"credentials_file"`
	BaseURL         string         `mapstructure:"base_url"`
	Timeout         time.Duration  `mapstructure:"timeout"`
	OutputDir       string         `mapstructure:"output_dir"`
	LogoPath        string         `mapstructure:"logo_path"`
	LogLevel        string         `mapstructure:"log_level"`
	Report          ReportSettings `mapstructure:"report"`
	S3              S3Settings     `mapstructure:"s3"`
}

type ReportSettings struct {
	Title    string        `mapstructure:"title"`
	Brand    string        `mapstructure:"brand"`
	Attempts int           `mapstructure:"attempts"`
	Pause    time.Duration `mapstructure:"pause"`
}

// S3Settings configures the optional mirror bucket. An empty bucket disables it.
type S3Settings struct {
	Bucket     string `mapstructure:"bucket"`
	Prefix     string `mapstructure:"prefix"`
	AWSProfile string `mapstructure:"aws_profile"`
	Region     string `mapstructure:"region"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("profile", DefaultProfile)
	v.SetDefault("credentials_file", "")
	v.SetDefault("base_url", "https://api.aurorasolar.com")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("output_dir", "reports")
	v.SetDefault("logo_path", "")
	v.SetDefault("log_level", "debug")
	v.SetDefault("report.title", "Spartan EagleEye Report")
	v.SetDefault("report.brand", "SPARTAN HOME SERVICES")
	v.SetDefault("report.attempts", 3)
	v.SetDefault("report.pause", 2*time.Second)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.aws_profile", "")
	v.SetDefault("s3.region", "")
}

// LoadSettings reads the optional settings file at path (YAML, TOML or JSON by
// extension) and applies EAGLEEYE_* environment overrides, e.g.
// EAGLEEYE_OUTPUT_DIR or EAGLEEYE_REPORT_ATTEMPTS.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &cfg, nil
}
