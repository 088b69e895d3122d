package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CandidateLogFile     = "file"
	CandidateLogS3       = "s3"
	CandidateLogPostgres = "postgres"

	defaultDataSalt = "replace_with_random_salt"
)

type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	AllowedOrigins []string
	CookieSecure   bool

	// Interview
	InterviewFlow string
	SessionTTL    time.Duration
	SessionSecret string

	// Completion providers
	LLMProvider  string
	GroqAPIKey   string
	GroqModel    string
	OpenAIAPIKey string
	OpenAIModel  string
	OpenAIURL    string
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	// Candidate log
	DataSalt           string
	CandidateLogDriver string
	DataFile           string
	DBUrl              string
	S3Bucket           string
	S3Key              string
	S3Region           string
	S3Endpoint         string
	S3AccessKeyID      string
	S3SecretAccessKey  string

	// Redis Configuration
	RedisURL      string
	RedisPassword string

	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitLLMThreshold  int

	// Export
	AdminToken string
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; the environment wins otherwise
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "debug"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),

		InterviewFlow: strings.ToLower(getEnv("INTERVIEW_FLOW", "standard")),
		SessionTTL:    getEnvDuration("SESSION_TTL", 2*time.Hour),
		SessionSecret: getEnv("SESSION_SECRET", ""),

		LLMProvider:  strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
		GroqModel:    getEnv("GROQ_MODEL", getEnv("MODEL_NAME", "")),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", ""),
		OpenAIURL:    strings.TrimRight(getEnv("OPENAI_BASE_URL", ""), "/"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),
		LLMTimeout:   getEnvDuration("LLM_TIMEOUT", 60*time.Second),

		DataSalt:           getEnv("DATA_SALT", defaultDataSalt),
		CandidateLogDriver: strings.ToLower(getEnv("CANDIDATE_LOG_DRIVER", CandidateLogFile)),
		DataFile:           getEnv("DATA_FILE", "data/candidates.json"),
		DBUrl:              getEnv("DATABASE_URL", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Key:              getEnv("S3_KEY", "candidates.json"),
		S3Region:           getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:         strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:  getEnv("S3_SECRET_ACCESS_KEY", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLLMThreshold:  getEnvInt("RATE_LIMIT_LLM_THRESHOLD", 20),

		AdminToken: getEnv("ADMIN_TOKEN", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.DataSalt == defaultDataSalt {
		log.Println("WARNING: DATA_SALT is the default value. Set a random salt before storing real candidates.")
	}
	if cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET is missing. Session cookies will not survive a restart.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Sessions and rate limiting will use in-memory storage.")
	}
	if cfg.AdminToken == "" {
		log.Println("WARNING: ADMIN_TOKEN not configured. Candidate export is disabled.")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CandidateLogDriver {
	case CandidateLogFile:
	case CandidateLogS3:
		if c.S3Bucket == "" {
			return errors.New("config: S3_BUCKET is required when CANDIDATE_LOG_DRIVER=s3")
		}
	case CandidateLogPostgres:
		if c.DBUrl == "" {
			return errors.New("config: DATABASE_URL is required when CANDIDATE_LOG_DRIVER=postgres")
		}
	default:
		return errors.New("config: CANDIDATE_LOG_DRIVER must be one of file, s3, postgres")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blanks
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}
