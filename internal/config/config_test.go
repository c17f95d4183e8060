package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/switchyard/pkg/adapters/process"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, "--broadcast", cfg.Escalation.Flag)
	assert.Equal(t, "13489", cfg.Escalation.Passcode)
	assert.Equal(t, process.ModeNone, cfg.Injection.Mode)
	assert.Equal(t, "bash", cfg.Injection.Shell)
	assert.False(t, cfg.UI.ClearScreen)
	assert.True(t, cfg.UI.Banner)
	assert.Equal(t, filepath.Join(dir, ".switchyard", "sessions", "deploy.json"), cfg.SessionFile("deploy"))
}

func TestLoad_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := `
escalation:
  passcode: "4242"
  environment: mainnet
injection:
  mode: infisical
  env: dev
  path: /IVa-laptop-forge
ui:
  clear_screen: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "switchyard.yaml"), []byte(content), 0644))

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "4242", cfg.Escalation.Passcode)
	assert.Equal(t, process.ModeInfisical, cfg.Injection.Mode)
	assert.Equal(t, "/IVa-laptop-forge", cfg.Injection.Path)
	assert.True(t, cfg.UI.ClearScreen)
	assert.Equal(t, "mainnet", cfg.TargetEnvironment())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "switchyard.yaml"), []byte("injection:\n  env: dev\n"), 0644))
	t.Setenv("SWITCHYARD_INJECTION_ENV", "staging")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Injection.Env)
	assert.Equal(t, "staging", cfg.TargetEnvironment())
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SWITCHYARD_SESSION_FILE", "/from/env.json")

	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags.String("session", "", "")
	flags.Bool("plain", false, "")
	require.NoError(t, flags.Parse([]string{"--session", "/from/flag.json", "--plain"}))

	cfg, err := Load(dir, flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.json", cfg.SessionFile("ignored"))
	assert.True(t, cfg.UI.Plain)
}

func TestLoad_UnchangedFlagKeepsEnv(t *testing.T) {
	t.Setenv("SWITCHYARD_SESSION_FILE", "/from/env.json")

	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags.String("session", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(t.TempDir(), flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", cfg.Session.File)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"escalation": {"flag": "--execute"}}`), 0644))
	t.Setenv(EnvConfig, path)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "--execute", cfg.Escalation.Flag)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "switchyard.yaml"), []byte("escalation: [unclosed"), 0644))

	_, err := Load(dir, nil)
	assert.Error(t, err)
}
