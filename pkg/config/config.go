package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile      = "file"
	BackendPostgres  = "postgres"
	BackendFirestore = "firestore"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	StoreBackend   string
	DataFile       string // empty keeps the file backend in memory
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	FirestoreProjectID      string
	FirebaseCredentialsFile string

	BackupSchedule string // cron spec with seconds; empty disables backups
	BackupDir      string
	BackupKeep     int // newest backups retained; 0 keeps all

	CurrencySymbol     string
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", BackendFile)
	v.SetDefault("DATA_FILE", "data/ledger.json")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("FIRESTORE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("BACKUP_SCHEDULE", "0 0 23 * * *")
	v.SetDefault("BACKUP_DIR", "backups")
	v.SetDefault("BACKUP_KEEP", 14)
	v.SetDefault("CURRENCY_SYMBOL", "₱")
	v.SetDefault("RATE_LIMIT", "200-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.AutomaticEnv()

	cfg := &Config{
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		StoreBackend:            strings.ToLower(v.GetString("STORE_BACKEND")),
		DataFile:                v.GetString("DATA_FILE"),
		DatabaseURL:             v.GetString("PGSQL_URL"),
		EnableDBCheck:           v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:          v.GetString("MIGRATIONS_PATH"),
		FirestoreProjectID:      v.GetString("FIRESTORE_PROJECT_ID"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
		BackupSchedule:          v.GetString("BACKUP_SCHEDULE"),
		BackupDir:               v.GetString("BACKUP_DIR"),
		BackupKeep:              v.GetInt("BACKUP_KEEP"),
		CurrencySymbol:          v.GetString("CURRENCY_SYMBOL"),
		RateLimit:               v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	level, err := parseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		log.Printf("Warning: %v. Defaulting to info.\n", err)
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if c.DataFile == "" {
			log.Println("Warning: DATA_FILE not set. State will be kept in memory only.")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required for the %s backend", BackendPostgres)
		}
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for the %s backend", BackendFirestore)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return level, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
