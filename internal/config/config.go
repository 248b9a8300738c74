// Package config loads runtime settings for the release pipeline.
//
// Values are resolved in three layers, later layers taking precedence:
// built-in defaults, the YAML config file, and environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/apkship/apkship/internal/errors"
)

// Environment variables recognized by applyEnv.
const (
	EnvAppName         = "APKSHIP_APP_NAME"
	EnvWebhookURL      = "APKSHIP_WEBHOOK_URL"
	EnvCredentialsFile = "APKSHIP_CREDENTIALS_FILE"
	EnvTokenFile       = "APKSHIP_TOKEN_FILE"
)

// Config holds every setting the pipeline needs; nothing is compiled in.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Drive   DriveConfig   `yaml:"drive"`
	Build   BuildConfig   `yaml:"build"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// AppConfig identifies the application being released.
type AppConfig struct {
	Name string `yaml:"name"`
}

// DriveConfig locates the OAuth files and the upload destination.
//
// RootFolder heads the upload path (the artifact lands in
// RootFolder/<app name>/<date>). It may be a single folder name ("Apk") or
// a nested slash-separated path ("Releases/Android"). RootFolderID optionally
// pins that folder under a specific parent; when empty, the first segment is
// matched anywhere in the drive, creating it at the root when absent.
type DriveConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	RootFolder      string `yaml:"root_folder"`
	RootFolderID    string `yaml:"root_folder_id"`
}

// BuildConfig describes how to produce the artifact and where it lands.
type BuildConfig struct {
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
	Dir      string   `yaml:"dir"`
	Artifact string   `yaml:"artifact"`
	Skip     bool     `yaml:"skip"`
}

// WebhookConfig holds the chat webhook endpoint. An empty URL disables
// notification.
type WebhookConfig struct {
	URL string `yaml:"url"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Drive: DriveConfig{
			CredentialsFile: "credentials.json",
			TokenFile:       "token.json",
			RootFolder:      "Apk",
		},
		Build: BuildConfig{
			Command: "./gradlew",
			Args:    []string{"assembleRelease"},
		},
	}
}

// Load builds a Config from defaults, the YAML file at path, and environment
// overrides, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := parseFile(&cfg, path); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError("failed to read config file", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAppName); v != "" {
		cfg.App.Name = v
	}
	if v := os.Getenv(EnvWebhookURL); v != "" {
		cfg.Webhook.URL = v
	}
	if v := os.Getenv(EnvCredentialsFile); v != "" {
		cfg.Drive.CredentialsFile = v
	}
	if v := os.Getenv(EnvTokenFile); v != "" {
		cfg.Drive.TokenFile = v
	}
}

// Validate checks that the settings the pipeline cannot run without are set.
func (c Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if c.Drive.RootFolder == "" {
		return fmt.Errorf("drive.root_folder is required")
	}
	if c.Build.Artifact == "" {
		return fmt.Errorf("build.artifact is required")
	}
	if !c.Build.Skip && c.Build.Command == "" {
		return fmt.Errorf("build.command is required unless build.skip is set")
	}
	return nil
}
