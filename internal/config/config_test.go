package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"COGNITO_CLIENTS_CONFIG", "COGNITO_CLIENTS_TEMPLATE", "COGNITO_CLIENTS_STAGE",
		"AWS_REGION", "AWS_DEFAULT_REGION", "AWS_PROFILE",
		"COGNITO_CLIENTS_DEBUG", "COGNITO_CLIENTS_DRY_RUN",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	s := Load(Flags{})
	s.ApplyManifest(manifest.Provider{})
	assert.Equal(t, DefaultManifestPath, s.ManifestPath)
	assert.Equal(t, DefaultStage, s.Stage)
	assert.Equal(t, DefaultRegion, s.Region)
	assert.False(t, s.Debug)
	assert.False(t, s.DryRun)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("COGNITO_CLIENTS_STAGE", "staging")
	t.Setenv("COGNITO_CLIENTS_DRY_RUN", "true")

	off := false
	s := Load(Flags{Stage: "prod", DryRun: &off})
	s.ApplyManifest(manifest.Provider{Stage: "manifest-stage", Region: "ap-southeast-2", Profile: "deployer"})

	assert.Equal(t, "prod", s.Stage, "flag beats env")
	assert.Equal(t, "eu-west-1", s.Region, "env beats manifest")
	assert.Equal(t, "deployer", s.Profile, "manifest fills unset profile")
	assert.False(t, s.DryRun, "explicit flag beats env")
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("COGNITO_CLIENTS_DEBUG", "sometimes")
	assert.False(t, Load(Flags{}).Debug)
}
