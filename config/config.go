package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var AppConfig Config

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"-"`
	DB       int    `json:"db"`
}

type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"-"`
	ChatID   string `json:"chat_id"`
}

type Config struct {
	Environment string `json:"environment"`
	ServerPort  string `json:"server_port"`

	// Store backend: "supabase" uses the hosted REST store,
	// "postgres" and "sqlite" use the relational engine.
	StoreBackend string `json:"store_backend"`

	// Relational engine (postgres)
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"-"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_ssl_mode"`

	// Relational engine (sqlite fallback)
	SQLitePath string `json:"sqlite_path"`

	// Remote store (Supabase)
	SupabaseURL string `json:"supabase_url"`
	SupabaseKey string `json:"-"`

	JWTSecret string `json:"-"`

	BackupDir string `json:"backup_dir"`

	SentryDSN string `json:"-"`

	RateLimitWrites int `json:"rate_limit_writes"`

	Redis    RedisConfig    `json:"redis"`
	Telegram TelegramConfig `json:"telegram"`

	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SMTPPassword string `json:"-"`
	FromEmail    string `json:"from_email"`
	FromName     string `json:"from_name"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
}

func LoadConfig() error {
	AppConfig = Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		ServerPort:   getEnv("SERVER_PORT", "5000"),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", "supabase")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "leadhub"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		SQLitePath: getEnv("SQLITE_PATH", "data/leadhub.db"),

		SupabaseURL: getEnv("SUPABASE_URL", ""),
		SupabaseKey: getEnv("SUPABASE_KEY", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		BackupDir: getEnv("BACKUP_DIR", "backups"),

		SentryDSN: getEnv("SENTRY_DSN", ""),

		RateLimitWrites: getEnvAsInt("RATE_LIMIT_WRITES", 60),

		Redis: RedisConfig{
			Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},

		Telegram: TelegramConfig{
			Enabled:  getEnv("TELEGRAM_ENABLED", "false") == "true",
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", ""),
		FromName:     getEnv("FROM_NAME", "LeadHub"),
	}

	// Validate required configurations
	if AppConfig.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch AppConfig.StoreBackend {
	case "supabase":
		if AppConfig.SupabaseURL == "" || AppConfig.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required when STORE_BACKEND is supabase")
		}
	case "postgres":
		if AppConfig.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD is required when STORE_BACKEND is postgres")
		}
	case "sqlite":
		// Nothing else required: the engine creates the file on first open.
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want supabase, postgres or sqlite)", AppConfig.StoreBackend)
	}

	if AppConfig.Telegram.Enabled && AppConfig.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required when TELEGRAM_ENABLED is true")
	}

	logConfig()
	return nil
}

// PostgresDSN builds the connection string for the postgres backend.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return fallback
	}
	return value
}

func logConfig() {
	log.Println("🔧 Loaded configuration:")
	log.Printf("Environment: %s", AppConfig.Environment)
	log.Printf("Server Port: %s", AppConfig.ServerPort)
	log.Printf("Store Backend: %s", AppConfig.StoreBackend)
	switch AppConfig.StoreBackend {
	case "supabase":
		log.Printf("Supabase: %s", AppConfig.SupabaseURL)
	case "postgres":
		log.Printf("Database: %s@%s:%s/%s", AppConfig.DBUser, AppConfig.DBHost, AppConfig.DBPort, AppConfig.DBName)
	case "sqlite":
		log.Printf("Database: %s", AppConfig.SQLitePath)
	}
	log.Printf("Telegram notifications: %t, Redis rate limiting: %t",
		AppConfig.Telegram.Enabled, AppConfig.Redis.Enabled)
}
