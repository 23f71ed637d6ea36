package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	QuestionStorePostgres = "postgres"
	QuestionStoreFile     = "file"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	QuestionStore string
	QuestionsFile string

	DiscordToken              string
	DiscordAppID              string
	DiscordGuildID            string
	DiscordQuestionsChannelID string

	EmailHost     string
	EmailPort     int
	EmailUser     string
	EmailPass     string
	EmailFrom     string
	OrgName       string
	DisplayTZ     string
	GeoIPDBPath   string
	AllowedOrigin []string

	RateLimitPerMin      int
	QuestionPollInterval time.Duration
	HTTPReadTimeout      time.Duration
	HTTPWriteTimeout     time.Duration
	HTTPIdleTimeout      time.Duration
}

// LoadDotEnv reads .env and then .env.local when present. Variables already
// set in the environment win. Missing files are not an error.
func LoadDotEnv() {
	for _, name := range []string{".env", ".env.local"} {
		_ = godotenv.Load(name)
	}
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                    getEnv("APP_ENV", "development"),
		Port:                      getEnv("PORT", "3001"),
		DatabaseURL:               os.Getenv("DATABASE_URL"),
		QuestionStore:             strings.ToLower(getEnv("QUESTION_STORE", QuestionStorePostgres)),
		QuestionsFile:             getEnv("QUESTIONS_FILE", "./data/enquiries.json"),
		DiscordToken:              os.Getenv("DISCORD_TOKEN"),
		DiscordAppID:              os.Getenv("DISCORD_APP_ID"),
		DiscordGuildID:            os.Getenv("DISCORD_GUILD_ID"),
		DiscordQuestionsChannelID: os.Getenv("DISCORD_QUESTIONS_CHANNEL_ID"),
		EmailHost:                 os.Getenv("EMAIL_HOST"),
		EmailPort:                 getEnvInt("EMAIL_PORT", 587),
		EmailUser:                 os.Getenv("EMAIL_USER"),
		EmailPass:                 os.Getenv("EMAIL_PASS"),
		EmailFrom:                 os.Getenv("EMAIL_FROM"),
		OrgName:                   getEnv("ORG_NAME", "UniSHIFT"),
		DisplayTZ:                 getEnv("DISPLAY_TIMEZONE", "Europe/London"),
		GeoIPDBPath:               os.Getenv("GEOIP_DB_PATH"),
		AllowedOrigin:             getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMin:           getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		QuestionPollInterval:      time.Second * time.Duration(getEnvInt("QUESTION_POLL_INTERVAL_SECONDS", 5)),
		HTTPReadTimeout:           time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:          time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:           time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	switch cfg.QuestionStore {
	case QuestionStorePostgres, QuestionStoreFile:
	default:
		return nil, fmt.Errorf("QUESTION_STORE must be %q or %q", QuestionStorePostgres, QuestionStoreFile)
	}

	return cfg, nil
}

// ValidateAPI checks the variables the HTTP API needs.
func (c *Config) ValidateAPI() error {
	if c.QuestionStore == QuestionStorePostgres && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required when QUESTION_STORE=postgres")
	}
	return nil
}

// ValidateBot checks the variables the chat bot needs.
func (c *Config) ValidateBot() error {
	required := []struct{ key, value string }{
		{"DATABASE_URL", c.DatabaseURL},
		{"DISCORD_TOKEN", c.DiscordToken},
		{"DISCORD_GUILD_ID", c.DiscordGuildID},
		{"DISCORD_QUESTIONS_CHANNEL_ID", c.DiscordQuestionsChannelID},
		{"EMAIL_HOST", c.EmailHost},
		{"EMAIL_FROM", c.EmailFrom},
	}
	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Location resolves DisplayTZ, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
