package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseURL        string
	RedisURL           string
	NATSURL            string
	EventSubject       string
	JWTSecret          string
	ContentfulBaseURL  string
	ContentfulSpaceID  string
	ContentfulEnv      string
	ContentfulToken    string
	CMSTimeout         time.Duration
	CMSCacheTTL        time.Duration
	EditorStateTTL     time.Duration
	DefaultFeedbackURL string
	CheckRateLimit     int
	CheckRateWindow    time.Duration
	AllowOrigins       string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DCS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Dot Code School API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("database.url", "file:dcs.db?cache=shared")
	v.SetDefault("events.subject", "dcs.lesson.checked")
	v.SetDefault("contentful.base_url", "https://graphql.contentful.com")
	v.SetDefault("contentful.environment", "master")
	v.SetDefault("cms.timeout", "10s")
	v.SetDefault("cms.cache_ttl", "5m")
	v.SetDefault("editor.state_ttl", "168h")
	v.SetDefault("feedback.default_url", "https://github.com/dotcodeschool/frontend")
	v.SetDefault("check.rate_limit", 30)
	v.SetDefault("check.rate_window", "1m")
	v.SetDefault("cors.allow_origins", "*")

	cmsTimeout, err := parseDuration(v, "cms.timeout")
	if err != nil {
		return Config{}, err
	}
	cmsTTL, err := parseDuration(v, "cms.cache_ttl")
	if err != nil {
		return Config{}, err
	}
	editorTTL, err := parseDuration(v, "editor.state_ttl")
	if err != nil {
		return Config{}, err
	}
	checkWindow, err := parseDuration(v, "check.rate_window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		EventSubject:       v.GetString("events.subject"),
		JWTSecret:          v.GetString("jwt.secret"),
		ContentfulBaseURL:  strings.TrimRight(v.GetString("contentful.base_url"), "/"),
		ContentfulSpaceID:  v.GetString("contentful.space_id"),
		ContentfulEnv:      v.GetString("contentful.environment"),
		ContentfulToken:    v.GetString("contentful.access_token"),
		CMSTimeout:         cmsTimeout,
		CMSCacheTTL:        cmsTTL,
		EditorStateTTL:     editorTTL,
		DefaultFeedbackURL: v.GetString("feedback.default_url"),
		CheckRateLimit:     v.GetInt("check.rate_limit"),
		CheckRateWindow:    checkWindow,
		AllowOrigins:       v.GetString("cors.allow_origins"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.ContentfulSpaceID == "" || cfg.ContentfulToken == "" {
		return Config{}, fmt.Errorf("contentful space id and access token must be provided")
	}

	if cfg.CheckRateLimit <= 0 {
		cfg.CheckRateLimit = 30
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	value, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return value, nil
}
