package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cardsmith/internal/card"
)

// clearEnv blanks every variable Load consults so ambient shell state
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_TEMPERATURE",
		"SLACK_ENABLED", "SLACK_BOT_TOKEN", "SLACK_CHANNEL",
		"SLACK_POLL_INTERVAL", "SLACK_TIMEOUT",
		"CARDSMITH_FORMAT", "CARDSMITH_VERBOSE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	dir := t.TempDir()

	s, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, DefaultModel, s.Model)
	require.Equal(t, DefaultTemperature, s.Temperature)
	require.Equal(t, DefaultPollInterval, s.PollInterval)
	require.Equal(t, DefaultResponseTimeout, s.ResponseTimeout)
	require.Equal(t, filepath.Join(dir, WorkDirName), s.WorkDir)
	require.Equal(t, filepath.Join(dir, WorkDirName, "output"), s.OutputDir)
	require.False(t, s.RemoteConfigured())
	require.Equal(t, card.FormatAuto, s.DeclaredFormat)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load(t.TempDir())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "openai_api_key", verr.Field)
}

func TestLoadProjectConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")

	dir := t.TempDir()
	workDir := filepath.Join(dir, WorkDirName)
	require.NoError(t, os.MkdirAll(workDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.yaml"), []byte(`
version: 1
model: gpt-4.1
temperature: 0.7
format: markdown
output_dir: artifacts
slack:
  enabled: true
  channel: C0123
  poll_interval_seconds: 2
  timeout_seconds: 60
`), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, "gpt-4.1", s.Model)
	require.Equal(t, 0.7, s.Temperature)
	require.Equal(t, card.FormatMarkdown, s.DeclaredFormat)
	require.Equal(t, filepath.Join(dir, "artifacts"), s.OutputDir)
	require.True(t, s.SlackEnabled)
	require.Equal(t, "C0123", s.SlackChannel)
	require.Equal(t, 2*time.Second, s.PollInterval)
	require.Equal(t, time.Minute, s.ResponseTimeout)
	require.True(t, s.RemoteConfigured())
}

func TestEnvOverridesProjectConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("SLACK_TIMEOUT", "120")

	dir := t.TempDir()
	workDir := filepath.Join(dir, WorkDirName)
	require.NoError(t, os.MkdirAll(workDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.yaml"), []byte(`
model: gpt-4.1
slack:
  timeout_seconds: 60
`), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "gpt-4o-mini", s.Model)
	require.Equal(t, 2*time.Minute, s.ResponseTimeout)
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// The variable must be absent for a .env value to apply.
	os.Unsetenv("OPENAI_API_KEY")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_API_KEY=sk-from-dotenv\n"), 0o644))

	s, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "sk-from-dotenv", s.OpenAIKey)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	dir := t.TempDir()
	workDir := filepath.Join(dir, WorkDirName)
	require.NoError(t, os.MkdirAll(workDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.yaml"), []byte("format: yaml\n"), 0o644))

	_, err := Load(dir)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "format", verr.Field)
}

func TestValidate(t *testing.T) {
	valid := Settings{
		OpenAIKey:       "sk-test",
		PollInterval:    5 * time.Second,
		ResponseTimeout: time.Minute,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"missing key", func(s *Settings) { s.OpenAIKey = " " }, "openai_api_key"},
		{"zero poll", func(s *Settings) { s.PollInterval = 0 }, "poll_interval"},
		{"zero timeout", func(s *Settings) { s.ResponseTimeout = 0 }, "timeout"},
		{"timeout below poll", func(s *Settings) { s.ResponseTimeout = time.Second }, "timeout"},
		{"slack without token", func(s *Settings) { s.SlackEnabled = true; s.SlackChannel = "C1" }, "slack_token"},
		{"slack without channel", func(s *Settings) { s.SlackEnabled = true; s.SlackToken = "xoxb" }, "slack_channel"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			tc.mutate(&s)
			var verr *ValidationError
			require.ErrorAs(t, s.Validate(), &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestInitWorkDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitWorkDir(dir))

	for _, sub := range []string{"logs", "output"} {
		info, err := os.Stat(filepath.Join(dir, WorkDirName, sub))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}

	configPath := filepath.Join(dir, WorkDirName, "config.yaml")
	seeded, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(seeded), "model:")

	// A second init must not clobber user edits.
	require.NoError(t, os.WriteFile(configPath, []byte("model: custom\n"), 0o644))
	require.NoError(t, InitWorkDir(dir))
	edited, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, "model: custom\n", string(edited))
}
