package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int

	BackendBaseURL    string
	BackendTimeoutSec int
	BackendToken      string

	// StorageDriver selects where the order cache snapshots live:
	// "file" (default) or "postgres".
	StorageDriver string
	DataDir       string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	BotEnabled      bool
	CourierBotToken string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "aquadesk"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))

	cfg.BackendBaseURL = cast.ToString(getOrReturnDefault("BACKEND_BASE_URL", "http://localhost:9000"))
	cfg.BackendTimeoutSec = cast.ToInt(getOrReturnDefault("BACKEND_TIMEOUT_SEC", 10))
	cfg.BackendToken = cast.ToString(getOrReturnDefault("BACKEND_TOKEN", ""))

	cfg.StorageDriver = cast.ToString(getOrReturnDefault("STORAGE_DRIVER", "file"))
	cfg.DataDir = cast.ToString(getOrReturnDefault("DATA_DIR", "data"))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "aquadesk"))

	cfg.KafkaEnabled = cast.ToBool(getOrReturnDefault("KAFKA_ENABLED", false))
	brokers := cast.ToString(getOrReturnDefault("KAFKA_BROKERS", "localhost:9092"))
	cfg.KafkaBrokers = strings.Split(brokers, ",")
	cfg.KafkaTopic = cast.ToString(getOrReturnDefault("KAFKA_TOPIC", "aquadesk.orders"))

	cfg.BotEnabled = cast.ToBool(getOrReturnDefault("BOT_ENABLED", false))
	cfg.CourierBotToken = cast.ToString(getOrReturnDefault("COURIER_BOT_TOKEN", ""))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
