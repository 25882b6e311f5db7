package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Server    ServerConfig
	Risk      RiskConfig
	Bulk      BulkConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type DBConfig struct {
	DBPath string // Путь к файлу SQLite
}

type RedisConfig struct {
	Enabled    bool
	Host       string
	Port       string
	Password   string
	OutcomeTTL time.Duration
	SearchTTL  time.Duration
}

type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	EventsTopic     string
	ConsumerGroupID string
}

type ServerConfig struct {
	APIPort         int
	GRPCPort        int
	WorkerPort      int
	ShutdownTimeout time.Duration
}

// RiskConfig задает границы уровней риска и таймаут вызова оценщика
type RiskConfig struct {
	MediumThreshold     int
	HighThreshold       int
	CriticalThreshold   int
	EvaluatorTimeout    time.Duration
	ReporterTimeout     time.Duration
	BlacklistedAccounts []string // счета, которые добавляются в черный список Redis при старте
}

type BulkConfig struct {
	MaxFileBytes int64
	Workers      int
}

type RateLimitConfig struct {
	Enabled bool
	Rate    string // формат ulule/limiter, например "60-M"
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// Load читает конфигурацию из .env и переменных окружения
func Load() *Config {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		DB: DBConfig{
			DBPath: v.GetString("DB_PATH"),
		},
		Redis: RedisConfig{
			Enabled:    v.GetBool("REDIS_ENABLED"),
			Host:       v.GetString("REDIS_HOST"),
			Port:       v.GetString("REDIS_PORT"),
			Password:   v.GetString("REDIS_PASSWORD"),
			OutcomeTTL: v.GetDuration("REDIS_OUTCOME_TTL"),
			SearchTTL:  v.GetDuration("REDIS_SEARCH_TTL"),
		},
		Kafka: KafkaConfig{
			Enabled:         v.GetBool("KAFKA_ENABLED"),
			Brokers:         splitList(v.GetString("KAFKA_BROKERS")),
			EventsTopic:     v.GetString("KAFKA_EVENTS_TOPIC"),
			ConsumerGroupID: v.GetString("KAFKA_CONSUMER_GROUP"),
		},
		Server: ServerConfig{
			APIPort:         v.GetInt("API_PORT"),
			GRPCPort:        v.GetInt("GRPC_PORT"),
			WorkerPort:      v.GetInt("WORKER_PORT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Risk: RiskConfig{
			MediumThreshold:     v.GetInt("RISK_THRESHOLD_MEDIUM"),
			HighThreshold:       v.GetInt("RISK_THRESHOLD_HIGH"),
			CriticalThreshold:   v.GetInt("RISK_THRESHOLD_CRITICAL"),
			EvaluatorTimeout:    v.GetDuration("RISK_EVALUATOR_TIMEOUT"),
			ReporterTimeout:     v.GetDuration("COMPLIANCE_REPORTER_TIMEOUT"),
			BlacklistedAccounts: splitList(v.GetString("BLACKLISTED_ACCOUNTS")),
		},
		Bulk: BulkConfig{
			MaxFileBytes: v.GetInt64("BULK_MAX_FILE_BYTES"),
			Workers:      v.GetInt("BULK_WORKERS"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			Rate:    v.GetString("RATE_LIMIT"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(v.GetString("CORS_ORIGINS")),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_PATH", "./data/finpol.db")

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_OUTCOME_TTL", "1h")
	v.SetDefault("REDIS_SEARCH_TTL", "10m")

	v.SetDefault("KAFKA_ENABLED", true)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_EVENTS_TOPIC", "finpol.transactions.events")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "finpol-risk-events")

	v.SetDefault("API_PORT", 8000)
	v.SetDefault("GRPC_PORT", 9090)
	v.SetDefault("WORKER_PORT", 8001)
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")

	v.SetDefault("RISK_THRESHOLD_MEDIUM", 50)
	v.SetDefault("RISK_THRESHOLD_HIGH", 80)
	v.SetDefault("RISK_THRESHOLD_CRITICAL", 90)
	v.SetDefault("RISK_EVALUATOR_TIMEOUT", "2s")
	v.SetDefault("COMPLIANCE_REPORTER_TIMEOUT", "5s")
	v.SetDefault("BLACKLISTED_ACCOUNTS", "")

	v.SetDefault("BULK_MAX_FILE_BYTES", 10<<20)
	v.SetDefault("BULK_WORKERS", 4)

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT", "60-M")

	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("CORS_ALLOW_CREDENTIALS", true)
}

// splitList разбирает список через запятую, пустые элементы отбрасываются
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
