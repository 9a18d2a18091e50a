package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "REPORT_ATLAS"

// RetrySettings control the HTTP adapter's bounded retry with exponential
// backoff. They are explicit configuration so tests can zero the delays.
type RetrySettings struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

type APISettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetrySettings `mapstructure:"retry"`
}

type RenderSettings struct {
	OutputDir string `mapstructure:"output_dir"`
	// PublishDir, when set, is where finished PDFs are copied for the host
	// to pick up. S3Bucket switches publishing to S3 instead.
	PublishDir string `mapstructure:"publish_dir"`
	S3Bucket   string `mapstructure:"s3_bucket"`
	S3Prefix   string `mapstructure:"s3_prefix"`
	AWSProfile string `mapstructure:"aws_profile"`
}

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Settings struct {
	API    APISettings    `mapstructure:"api"`
	Render RenderSettings `mapstructure:"render"`
	Server ServerSettings `mapstructure:"server"`
}

// Load reads settings from the YAML file at path, applying defaults and
// REPORT_ATLAS_* environment overrides. An empty path loads defaults only.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	// Nested keys map onto env vars with underscores: api.base_url
	// becomes REPORT_ATLAS_API_BASE_URL.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", "https://market-lens.innolabs.cc")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry.max_attempts", 3)
	v.SetDefault("api.retry.wait_time", time.Second)
	v.SetDefault("api.retry.max_wait_time", 30*time.Second)
	v.SetDefault("render.output_dir", "reports")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &settings, nil
}
