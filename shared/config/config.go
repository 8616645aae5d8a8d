package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredentials is returned when no way to reach the YouTube API is configured.
var ErrMissingCredentials = errors.New("YouTube API key is not set (set YOUTUBE_API_KEY)")

type Config struct {
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Files      FilesConfig      `yaml:"files"`
	AI         AIConfig         `yaml:"ai"`
	Email      EmailConfig      `yaml:"email"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Schedule   string           `yaml:"schedule"`
}

type YouTubeConfig struct {
	APIKey   string `yaml:"api_key" env:"YOUTUBE_API_KEY"`
	Endpoint string `yaml:"endpoint"` // overrides the API base URL, mostly for tests
	PageSize int64  `yaml:"page_size"`

	// OAuth device flow, used only when no API key is set.
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

// UsesOAuth reports whether the client should authenticate with OAuth instead of an API key.
func (y *YouTubeConfig) UsesOAuth() bool {
	return y.APIKey == "" && y.ClientID != "" && y.ClientSecret != ""
}

type FilesConfig struct {
	VideosCSV  string `yaml:"videos_csv"`
	ReportDocx string `yaml:"report_docx"`
	ChartPNG   string `yaml:"chart_png"`
	DataDir    string `yaml:"data_dir"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

// Enabled reports whether report insights should be requested.
func (a *AIConfig) Enabled() bool {
	return a.GeminiAPIKey != ""
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Enabled reports whether enough SMTP settings are present to send a digest.
func (e *EmailConfig) Enabled() bool {
	return e.SMTPServer != "" && e.ToEmail != "" && e.FromEmail != ""
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

// Load reads .env, then an optional YAML file, then environment overrides.
// A missing config file is not an error: every tool runs on env vars alone.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	explicit := configFile != ""
	if !explicit {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
	if c.YouTube.ClientID == "" {
		c.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if c.YouTube.ClientSecret == "" {
		c.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Email.Username == "" {
		c.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if c.Email.Password == "" {
		c.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
}

func (c *Config) applyDefaults() {
	if c.YouTube.PageSize <= 0 || c.YouTube.PageSize > 50 {
		c.YouTube.PageSize = 50
	}
	if c.YouTube.TokenFile == "" {
		c.YouTube.TokenFile = "youtube_token.json"
	}
	if c.Files.VideosCSV == "" {
		c.Files.VideosCSV = "videos.csv"
	}
	if c.Files.ReportDocx == "" {
		c.Files.ReportDocx = "YouTube_Analytics_Report.docx"
	}
	if c.Files.ChartPNG == "" {
		c.Files.ChartPNG = "views_over_time.png"
	}
	if c.Files.DataDir == "" {
		c.Files.DataDir = "data"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8080
	}
	if c.Schedule == "" {
		c.Schedule = "0 0 9 * * *" // Daily at 9 AM
	}
}

// ValidateYouTube checks the settings needed by the fetch and resolve tools.
func (c *Config) ValidateYouTube() error {
	if c.YouTube.APIKey == "" && !c.YouTube.UsesOAuth() {
		return ErrMissingCredentials
	}
	return nil
}

// ValidateWatch checks the settings needed by the scheduled watch agent.
func (c *Config) ValidateWatch() error {
	if err := c.ValidateYouTube(); err != nil {
		return err
	}
	if c.Email.Enabled() && (c.Email.Username == "" || c.Email.Password == "") {
		return fmt.Errorf("email username and password are required when email is configured (set EMAIL_USERNAME and EMAIL_PASSWORD)")
	}
	return nil
}
