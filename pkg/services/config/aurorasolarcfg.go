package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/spartan-home-services/eagleeye/pkg/models/domain"
)

const (
	CredentialsFileName = ".aurorasolarcfg"
	DefaultProfile      = "DEFAULT"
)

// Registry lists and resolves the Aurora credential profiles kept in an ini
// file, one section per tenant:
//
//	[production]
//	api_key   = rk_prod_...
//	tenant_id = 06a7ae68-...
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, profile string) (*domain.Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultCredentialsPath is ~/.aurorasolarcfg.
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, CredentialsFileName), nil
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, profile string) (*domain.Profile, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	p := &domain.Profile{
		Name:     profile,
		APIKey:   section.Key("api_key").String(),
		TenantID: section.Key("tenant_id").String(),
	}
	if p.APIKey == "" || p.TenantID == "" {
		return nil, fmt.Errorf("profile %s must define api_key and tenant_id", profile)
	}
	return p, nil
}
