package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mathpad/internal/logstore"
)

type Config struct {
	Port string
	Env  string

	// EvaluatorURL is the base URL of the remote expression evaluator.
	EvaluatorURL     string
	EvaluatorTimeout time.Duration

	// Debounce is the quiet period before an edit burst is evaluated.
	Debounce time.Duration

	// ErrorLogAPIURL, when set, points sessions at an external error-log
	// service; otherwise they mirror into this gateway's own store.
	ErrorLogAPIURL string

	ErrorLog logstore.Config
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:             *port,
		Env:              env,
		EvaluatorURL:     firstNonEmpty(strings.TrimSpace(os.Getenv("EVALUATOR_URL")), "http://localhost:5000"),
		EvaluatorTimeout: secondsOr("EVALUATOR_TIMEOUT", 30*time.Second),
		Debounce:         millisOr("DEBOUNCE_MS", 250*time.Millisecond),
		ErrorLogAPIURL:   strings.TrimSpace(os.Getenv("ERROR_LOG_API_URL")),
		ErrorLog:         loadErrorLogConfig(env),
	}, nil
}

func loadErrorLogConfig(env string) logstore.Config {
	return logstore.Config{
		PostgresDSN: strings.TrimSpace(os.Getenv("ERROR_LOG_PG_DSN")),
		S3: logstore.S3Config{
			Endpoint:  strings.TrimSpace(os.Getenv("ERROR_LOG_S3_ENDPOINT")),
			Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ERROR_LOG_S3_REGION")), "us-east-1"),
			AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ERROR_LOG_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
			SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ERROR_LOG_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
			Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ERROR_LOG_S3_BUCKET")), "mathpad-error-logs"),
			UseSSL:    resolveUseSSL(env),
		},
	}
}

func resolveUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("ERROR_LOG_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func secondsOr(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

func millisOr(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Millisecond
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
