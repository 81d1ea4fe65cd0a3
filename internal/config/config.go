package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	App       AppConfig
	Keys      APIKeys
	Ai        AIConfig
	Resources ResourceConfig
	Cache     CacheConfig
	Infra     InfraConfig
}

type AppConfig struct {
	Host               string
	Port               string `validate:"required,numeric"`
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NamePolicy         string `validate:"omitempty,oneof=short_circuit prefix"`
}

type APIKeys struct {
	GoogleAPIKey   string
	OpenAIKey      string
	AdminJWTSecret string
}

type AIConfig struct {
	LLMProvider   string `validate:"oneof=gemini openai ollama"`
	LLMModel      string
	LLMTimeout    time.Duration `validate:"gt=0"`
	OpenAIBaseURL string
	OllamaBaseURL string
	ProfilesFile  string
}

type ResourceConfig struct {
	Dir               string `validate:"required"`
	Extensions        []string
	PollInterval      time.Duration `validate:"gt=0"`
	LoadTimeout       time.Duration `validate:"gt=0"`
	UploadConcurrency int           `validate:"gte=1"`
	PriorityDocument  string
	NavigationGuide   string
	LoadOnStartup     bool
	Watch             bool
	WatchDebounce     time.Duration
	ReloadSchedule    string
}

type CacheConfig struct {
	Backend       string `validate:"oneof=memory redis"`
	TTL           time.Duration
	FlushOnReload bool
}

type InfraConfig struct {
	RedisURL     string
	NatsURL      string
	OtelEnabled  bool
	OtelEndpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Host:               getEnv("APP_HOST", "127.0.0.1"),
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/robi.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NamePolicy:         getEnv("NAME_POLICY", "prefix"),
		},
		Keys: APIKeys{
			GoogleAPIKey:   getEnv("GOOGLE_API_KEY", ""),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:   strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
			LLMModel:      getEnv("LLM_MODEL", "gemini-1.5-flash"),
			LLMTimeout:    getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ProfilesFile:  getEnv("PROFILES_FILE", ""),
		},
		Resources: ResourceConfig{
			Dir:               getEnv("RESOURCE_DIR", "uSucceed_resource"),
			Extensions:        getEnvAsList("RESOURCE_EXTENSIONS", []string{".pdf"}),
			PollInterval:      getEnvAsDuration("RESOURCE_POLL_INTERVAL", 10*time.Second),
			LoadTimeout:       getEnvAsDuration("RESOURCE_LOAD_TIMEOUT", 10*time.Minute),
			UploadConcurrency: getEnvAsInt("RESOURCE_UPLOAD_CONCURRENCY", 4),
			PriorityDocument:  getEnv("RESOURCE_PRIORITY_DOCUMENT", "Rooms_And_Tasks.pdf"),
			NavigationGuide:   getEnv("RESOURCE_NAVIGATION_GUIDE", "NAVIGATION_control.pdf"),
			LoadOnStartup:     getEnvAsBool("LOAD_ON_STARTUP", true),
			Watch:             getEnvAsBool("RESOURCE_WATCH", false),
			WatchDebounce:     getEnvAsDuration("RESOURCE_WATCH_DEBOUNCE", 2*time.Second),
			ReloadSchedule:    getEnv("RESOURCE_RELOAD_SCHEDULE", ""),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(getEnv("RESPONSE_CACHE_BACKEND", "memory")),
			TTL:           getEnvAsDuration("RESPONSE_CACHE_TTL", 0),
			FlushOnReload: getEnvAsBool("RESPONSE_CACHE_FLUSH_ON_RELOAD", true),
		},
		Infra: InfraConfig{
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
			NatsURL:      getEnv("NATS_URL", ""),
			OtelEnabled:  getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

// Validate fails fast on settings the server cannot start without.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Resources.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(c.Resources.ReloadSchedule); err != nil {
			return fmt.Errorf("invalid RESOURCE_RELOAD_SCHEDULE: %w", err)
		}
	}
	switch c.Ai.LLMProvider {
	case "gemini":
		if c.Keys.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.Keys.OpenAIKey == "" && c.Ai.OpenAIBaseURL == "" {
			return fmt.Errorf("OPENAI_API_KEY or OPENAI_BASE_URL is required for the openai provider")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// APIKey returns the credential of the configured provider.
func (c *Config) APIKey() string {
	if c.Ai.LLMProvider == "openai" {
		return c.Keys.OpenAIKey
	}
	return c.Keys.GoogleAPIKey
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
