// Package config loads and validates runtime settings. Every project that
// runs cardsmith gets a .cardsmith/ folder created in its root for logs,
// output artifacts, and the optional project config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"cardsmith/internal/card"
)

const (
	// WorkDirName is the directory cardsmith maintains in each project.
	WorkDirName = ".cardsmith"

	// DefaultModel is used when neither config file nor env names one.
	DefaultModel = "gpt-4o"
	// DefaultTemperature keeps generation fairly deterministic.
	DefaultTemperature = 0.3
	// DefaultPollInterval is the gap between chat-channel polls.
	DefaultPollInterval = 5 * time.Second
	// DefaultResponseTimeout bounds how long a question waits for a human.
	DefaultResponseTimeout = 5 * time.Minute
)

const defaultProjectConfigYAML = `# cardsmith project configuration
version: 1

# Model used by the processing crews.
model: gpt-4o

# Human-in-the-loop chat channel. Token comes from SLACK_BOT_TOKEN.
slack:
  enabled: false
  channel: ""
  poll_interval_seconds: 5
  timeout_seconds: 300

# Force a card format instead of auto-detection: json, markdown, plaintext.
format: ""
`

// ProjectConfig models .cardsmith/config.yaml.
type ProjectConfig struct {
	Version     int         `yaml:"version"`
	Model       string      `yaml:"model,omitempty"`
	Temperature *float64    `yaml:"temperature,omitempty"`
	Slack       SlackConfig `yaml:"slack"`
	Format      string      `yaml:"format,omitempty"`
	OutputDir   string      `yaml:"output_dir,omitempty"`
}

// SlackConfig captures the chat-channel section of the project config.
type SlackConfig struct {
	Enabled             *bool  `yaml:"enabled,omitempty"`
	Channel             string `yaml:"channel,omitempty"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds,omitempty"`
	TimeoutSeconds      int    `yaml:"timeout_seconds,omitempty"`
}

// Settings is the immutable runtime configuration handed to the
// orchestrator and gateway at construction. Build it through Load so
// validation always runs before the first card is processed.
type Settings struct {
	ProjectDir string
	WorkDir    string

	OpenAIKey   string
	Model       string
	Temperature float64

	SlackEnabled    bool
	SlackToken      string
	SlackChannel    string
	PollInterval    time.Duration
	ResponseTimeout time.Duration

	DeclaredFormat card.Format
	OutputDir      string
	Verbose        bool
}

// ValidationError reports settings that would fail mid-pipeline if we let
// a run start. It is the fail-fast configuration error of the system.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Load builds Settings for a project directory: .env file first (if
// present), then .cardsmith/config.yaml, then environment overrides.
// The returned Settings have already passed Validate.
func Load(projectDir string) (Settings, error) {
	// A missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load(filepath.Join(projectDir, ".env"))

	s := Settings{
		ProjectDir:      projectDir,
		WorkDir:         filepath.Join(projectDir, WorkDirName),
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		PollInterval:    DefaultPollInterval,
		ResponseTimeout: DefaultResponseTimeout,
	}
	s.OutputDir = filepath.Join(s.WorkDir, "output")

	if err := s.applyProjectConfig(); err != nil {
		return Settings{}, err
	}
	s.applyEnvOverrides()

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) applyProjectConfig() error {
	path := filepath.Join(s.WorkDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var project ProjectConfig
	if err := yaml.Unmarshal(data, &project); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if project.Model != "" {
		s.Model = project.Model
	}
	if project.Temperature != nil {
		s.Temperature = *project.Temperature
	}
	if project.Slack.Enabled != nil {
		s.SlackEnabled = *project.Slack.Enabled
	}
	if channel := strings.TrimSpace(project.Slack.Channel); channel != "" {
		s.SlackChannel = channel
	}
	if project.Slack.PollIntervalSeconds > 0 {
		s.PollInterval = time.Duration(project.Slack.PollIntervalSeconds) * time.Second
	}
	if project.Slack.TimeoutSeconds > 0 {
		s.ResponseTimeout = time.Duration(project.Slack.TimeoutSeconds) * time.Second
	}
	if project.Format != "" {
		format, ok := card.ParseFormat(project.Format)
		if !ok {
			return &ValidationError{Field: "format", Reason: fmt.Sprintf("unknown format %q", project.Format)}
		}
		s.DeclaredFormat = format
	}
	if project.OutputDir != "" {
		s.OutputDir = project.OutputDir
		if !filepath.IsAbs(s.OutputDir) {
			s.OutputDir = filepath.Join(s.ProjectDir, project.OutputDir)
		}
	}
	return nil
}

func (s *Settings) applyEnvOverrides() {
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		s.OpenAIKey = key
	}
	if model := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); model != "" {
		s.Model = model
	}
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TEMPERATURE")); raw != "" {
		if temp, err := strconv.ParseFloat(raw, 64); err == nil {
			s.Temperature = temp
		}
	}
	if raw := strings.TrimSpace(os.Getenv("SLACK_ENABLED")); raw != "" {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			s.SlackEnabled = enabled
		}
	}
	if token := strings.TrimSpace(os.Getenv("SLACK_BOT_TOKEN")); token != "" {
		s.SlackToken = token
	}
	if channel := strings.TrimSpace(os.Getenv("SLACK_CHANNEL")); channel != "" {
		s.SlackChannel = channel
	}
	if raw := strings.TrimSpace(os.Getenv("SLACK_POLL_INTERVAL")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			s.PollInterval = time.Duration(seconds) * time.Second
		}
	}
	if raw := strings.TrimSpace(os.Getenv("SLACK_TIMEOUT")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			s.ResponseTimeout = time.Duration(seconds) * time.Second
		}
	}
	if raw := strings.TrimSpace(os.Getenv("CARDSMITH_FORMAT")); raw != "" {
		if format, ok := card.ParseFormat(raw); ok {
			s.DeclaredFormat = format
		}
	}
	if raw := strings.TrimSpace(os.Getenv("CARDSMITH_VERBOSE")); raw != "" {
		if verbose, err := strconv.ParseBool(raw); err == nil {
			s.Verbose = verbose
		}
	}
}

// Validate rejects settings that would only fail once a pipeline is
// already running. Called by Load; exported for tests and for callers
// that assemble Settings by hand.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.OpenAIKey) == "" {
		return &ValidationError{Field: "openai_api_key", Reason: "OPENAI_API_KEY is not set"}
	}
	if s.PollInterval <= 0 {
		return &ValidationError{Field: "poll_interval", Reason: "must be a positive duration"}
	}
	if s.ResponseTimeout <= 0 {
		return &ValidationError{Field: "timeout", Reason: "must be a positive duration"}
	}
	if s.ResponseTimeout < s.PollInterval {
		return &ValidationError{Field: "timeout", Reason: "must be at least the poll interval"}
	}
	if s.SlackEnabled {
		if strings.TrimSpace(s.SlackToken) == "" {
			return &ValidationError{Field: "slack_token", Reason: "SLACK_BOT_TOKEN is required when slack is enabled"}
		}
		if strings.TrimSpace(s.SlackChannel) == "" {
			return &ValidationError{Field: "slack_channel", Reason: "channel is required when slack is enabled"}
		}
	}
	return nil
}

// RemoteConfigured reports whether the remote chat backend can be used.
func (s Settings) RemoteConfigured() bool {
	return s.SlackEnabled && s.SlackToken != "" && s.SlackChannel != ""
}

// LogsDir returns the directory that holds run logs.
func (s Settings) LogsDir() string {
	return filepath.Join(s.WorkDir, "logs")
}

// InitWorkDir creates the .cardsmith directory structure in the given
// project directory and seeds a default config.yaml on first run.
func InitWorkDir(projectDir string) error {
	workDir := filepath.Join(projectDir, WorkDirName)
	dirs := []string{
		filepath.Join(workDir, "logs"),
		filepath.Join(workDir, "output"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	return ensureProjectConfig(filepath.Join(workDir, "config.yaml"))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644); err != nil {
		return fmt.Errorf("config: write default config: %w", err)
	}
	return nil
}
