// README: Config loader with env defaults for HTTP, AI provider, and weather settings.
package config

import (
	"os"
	"strings"
	"time"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type AIConfig struct {
	Provider        string
	GroqKey         string
	GroqBaseURL     string
	GeminiKey       string
	GenerationModel string
	RoutingModel    string
	TranscribeModel string
	Timeout         time.Duration
}

type WeatherConfig struct {
	APIKey  string
	BaseURL string
	Lang    string
	Timeout time.Duration
}

type Config struct {
	Env  string
	HTTP struct {
		Addr           string
		AllowedOrigins []string
	}
	AI      AIConfig
	Weather WeatherConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.Env = envOrDefault("KAZE_ENV", "development")
	cfg.HTTP.Addr = envOrDefault("KAZE_HTTP_ADDR", ":5001")
	cfg.HTTP.AllowedOrigins = splitCSV(envOrDefault("KAZE_ALLOWED_ORIGINS", "*"))

	cfg.AI.Provider = envOrDefault("KAZE_AI_PROVIDER", ProviderGroq)
	switch cfg.AI.Provider {
	case ProviderGemini:
		cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
		cfg.AI.GenerationModel = envOrDefault("KAZE_GENERATION_MODEL", "gemini-2.0-flash")
		cfg.AI.RoutingModel = envOrDefault("KAZE_ROUTING_MODEL", "gemini-2.0-flash")
	default:
		cfg.AI.GroqKey = envOrError("GROQ_API_KEY")
		cfg.AI.GroqBaseURL = envOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
		cfg.AI.GenerationModel = envOrDefault("KAZE_GENERATION_MODEL", "llama-3.3-70b-versatile")
		cfg.AI.RoutingModel = envOrDefault("KAZE_ROUTING_MODEL", "llama-3.1-8b-instant")
	}
	cfg.AI.TranscribeModel = envOrDefault("KAZE_TRANSCRIBE_MODEL", "whisper-large-v3")
	cfg.AI.Timeout = envOrDefaultDuration("KAZE_AI_TIMEOUT", 60*time.Second)

	cfg.Weather.APIKey = envOrError("WEATHER_API_KEY")
	cfg.Weather.BaseURL = envOrDefault("KAZE_WEATHER_BASE_URL", "http://api.openweathermap.org")
	cfg.Weather.Lang = envOrDefault("KAZE_WEATHER_LANG", "ja")
	cfg.Weather.Timeout = envOrDefaultDuration("KAZE_WEATHER_TIMEOUT", 10*time.Second)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
