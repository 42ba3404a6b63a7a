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
	AppName     string
	AppEnv      string
	AppPort     string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string

	AIProvider   string
	GeminiAPIKey string
	OpenAIAPIKey string
	OpenAIModel  string

	GoogleCredentialsFile string
	SpeechLanguageCode    string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	BaseURL      string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	QuestionBankPath  string
	DashboardCacheTTL time.Duration
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
	v.SetEnvPrefix("R1")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "R1 Interview API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("speech.language", "en-US")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("cloudinary.folder", "r1/recordings")
	v.SetDefault("questions.path", "data/section1_questions.json")
	v.SetDefault("dashboard.cache_ttl", "5m")

	// External-service credentials keep their conventional unprefixed names
	// alongside the service-prefixed forms.
	_ = v.BindEnv("gemini.api_key", "R1_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("openai.api_key", "R1_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("google.credentials_file", "R1_GOOGLE_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")

	ttlString := v.GetString("dashboard.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:               v.GetString("app.name"),
		AppEnv:                v.GetString("app.env"),
		AppPort:               v.GetString("app.port"),
		DatabaseURL:           v.GetString("database.url"),
		RedisURL:              v.GetString("redis.url"),
		JWTSecret:             v.GetString("jwt.secret"),
		AIProvider:            strings.ToLower(v.GetString("ai.provider")),
		GeminiAPIKey:          v.GetString("gemini.api_key"),
		OpenAIAPIKey:          v.GetString("openai.api_key"),
		OpenAIModel:           v.GetString("openai.model"),
		GoogleCredentialsFile: v.GetString("google.credentials_file"),
		SpeechLanguageCode:    v.GetString("speech.language"),
		SMTPHost:              v.GetString("smtp.host"),
		SMTPPort:              v.GetInt("smtp.port"),
		SMTPUser:              v.GetString("smtp.user"),
		SMTPPassword:          v.GetString("smtp.pass"),
		FromEmail:             v.GetString("from.email"),
		BaseURL:               strings.TrimRight(v.GetString("base.url"), "/"),
		CloudinaryCloudName:   v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:      v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:   v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:      v.GetString("cloudinary.folder"),
		QuestionBankPath:      v.GetString("questions.path"),
		DashboardCacheTTL:     ttl,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	// The Gemini key is deliberately not required here: the session manager
	// surfaces a missing credential on first evaluation.

	return cfg, nil
}
