package config

import (
	"os"
	"strconv"

	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
)

// Defaults used when neither flags, environment, nor the manifest provide a value.
const (
	DefaultManifestPath = "serverless.yml"
	DefaultStage        = "dev"
	DefaultRegion       = "us-east-1"
)

// Settings is the explicit deployment context threaded into every remote-call site.
type Settings struct {
	ManifestPath string
	TemplatePath string
	Stage        string
	Region       string
	Profile      string
	Debug        bool
	DryRun       bool
}

// Flags carries command-line values. Empty strings and nil pointers mean "not given".
type Flags struct {
	ManifestPath string
	TemplatePath string
	Stage        string
	Region       string
	Profile      string
	Debug        *bool
	DryRun       *bool
}

// Load resolves settings from flags, then environment variables. Stage, region, and profile
// may remain empty here; ApplyManifest fills them from the manifest and defaults.
func Load(f Flags) Settings {
	return Settings{
		ManifestPath: first(f.ManifestPath, os.Getenv("COGNITO_CLIENTS_CONFIG"), DefaultManifestPath),
		TemplatePath: first(f.TemplatePath, os.Getenv("COGNITO_CLIENTS_TEMPLATE")),
		Stage:        first(f.Stage, os.Getenv("COGNITO_CLIENTS_STAGE")),
		Region:       first(f.Region, os.Getenv("AWS_REGION"), os.Getenv("AWS_DEFAULT_REGION")),
		Profile:      first(f.Profile, os.Getenv("AWS_PROFILE")),
		Debug:        boolOr(f.Debug, getEnvBool("COGNITO_CLIENTS_DEBUG", false)),
		DryRun:       boolOr(f.DryRun, getEnvBool("COGNITO_CLIENTS_DRY_RUN", false)),
	}
}

// ApplyManifest fills unset stage, region, and profile from the manifest's provider block,
// falling back to defaults.
func (s *Settings) ApplyManifest(p manifest.Provider) {
	s.Stage = first(s.Stage, p.Stage, DefaultStage)
	s.Region = first(s.Region, p.Region, DefaultRegion)
	s.Profile = first(s.Profile, p.Profile)
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
