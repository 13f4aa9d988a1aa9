package config

import (
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Kafka     KafkaConfig
	Storage   StorageConfig
	WebSocket WebSocketConfig
	Log       LogConfig
}

var (
	ConfigInstance *Config
	once           sync.Once
)

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string // postgres, mysql, sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string // sqlite only
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnectRetries  int
	RetryDelay      time.Duration
}

type RedisConfig struct {
	URL          string
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	Secret string
}

type KafkaConfig struct {
	Driver          string // sarama or kafka-go
	Brokers         []string
	Topic           string
	ClientID        string
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// Enabled reports whether notifications should be published at all.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether media upload is configured.
func (s StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

type WebSocketConfig struct {
	AllowedOrigins []string
	SendBuffer     int
	EventsPerSec   float64
	EventBurst     int
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func LoadConfig() (*Config, error) {
	once.Do(func() {
		// a missing .env is fine, the environment wins anyway
		_ = godotenv.Load()

		viper.SetDefault("NOTIFY_PORT", "8080")
		viper.SetDefault("NOTIFY_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("NOTIFY_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("NOTIFY_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("NOTIFY_SHUTDOWN_TIMEOUT", 30*time.Second)
		viper.SetDefault("NOTIFY_JWT_SECRET", "secret")
		viper.SetDefault("DB_DRIVER", "postgres")
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", 5432)
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "password")
		viper.SetDefault("DB_NAME", "postgres")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("DB_SQLITE_PATH", "messaging.db")
		viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
		viper.SetDefault("DB_MAX_OPEN_CONNS", 50)
		viper.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
		viper.SetDefault("DB_CONNECT_RETRIES", 5)
		viper.SetDefault("DB_RETRY_DELAY", 5*time.Second)
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("REDIS_MAX_RETRIES", 3)
		viper.SetDefault("REDIS_POOL_SIZE", 100)
		viper.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
		viper.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
		viper.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
		viper.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
		viper.SetDefault("KAFKA_DRIVER", "sarama")
		viper.SetDefault("KAFKA_BROKERS", "")
		viper.SetDefault("KAFKA_TOPIC", "messaging.notifications")
		viper.SetDefault("KAFKA_CLIENT_ID", "messaging-service")
		viper.SetDefault("KAFKA_BREAKER_FAILURES", 5)
		viper.SetDefault("KAFKA_BREAKER_TIMEOUT", 30*time.Second)
		viper.SetDefault("MINIO_BUCKET", "chat-media")
		viper.SetDefault("WS_SEND_BUFFER", 256)
		viper.SetDefault("WS_EVENTS_PER_SEC", 10)
		viper.SetDefault("WS_EVENT_BURST", 20)
		viper.SetDefault("LOG_LEVEL", "info")
		viper.AutomaticEnv()

		ConfigInstance = &Config{
			Server: ServerConfig{
				Host:            viper.GetString("NOTIFY_HOST"),
				Port:            viper.GetString("NOTIFY_PORT"),
				ReadTimeout:     viper.GetDuration("NOTIFY_READ_TIMEOUT"),
				WriteTimeout:    viper.GetDuration("NOTIFY_WRITE_TIMEOUT"),
				IdleTimeout:     viper.GetDuration("NOTIFY_IDLE_TIMEOUT"),
				ShutdownTimeout: viper.GetDuration("NOTIFY_SHUTDOWN_TIMEOUT"),
			},
			Database: DatabaseConfig{
				Driver:          viper.GetString("DB_DRIVER"),
				Host:            viper.GetString("DB_HOST"),
				Port:            viper.GetInt("DB_PORT"),
				User:            viper.GetString("DB_USER"),
				Password:        viper.GetString("DB_PASSWORD"),
				DBName:          viper.GetString("DB_NAME"),
				SSLMode:         viper.GetString("DB_SSLMODE"),
				FilePath:        viper.GetString("DB_SQLITE_PATH"),
				MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
				MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
				ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
				ConnectRetries:  viper.GetInt("DB_CONNECT_RETRIES"),
				RetryDelay:      viper.GetDuration("DB_RETRY_DELAY"),
			},
			Redis: RedisConfig{
				URL:          viper.GetString("REDIS_URL"),
				MaxRetries:   viper.GetInt("REDIS_MAX_RETRIES"),
				DialTimeout:  viper.GetDuration("REDIS_DIAL_TIMEOUT"),
				ReadTimeout:  viper.GetDuration("REDIS_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("REDIS_WRITE_TIMEOUT"),
				PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
				MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
			},
			JWT: JWTConfig{
				Secret: viper.GetString("NOTIFY_JWT_SECRET"),
			},
			Kafka: KafkaConfig{
				Driver:          viper.GetString("KAFKA_DRIVER"),
				Brokers:         splitList(viper.GetString("KAFKA_BROKERS")),
				Topic:           viper.GetString("KAFKA_TOPIC"),
				ClientID:        viper.GetString("KAFKA_CLIENT_ID"),
				BreakerFailures: viper.GetUint32("KAFKA_BREAKER_FAILURES"),
				BreakerTimeout:  viper.GetDuration("KAFKA_BREAKER_TIMEOUT"),
			},
			Storage: StorageConfig{
				Endpoint:  viper.GetString("MINIO_ENDPOINT"),
				AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
				SecretKey: viper.GetString("MINIO_SECRET_KEY"),
				Bucket:    viper.GetString("MINIO_BUCKET"),
				UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			},
			WebSocket: WebSocketConfig{
				AllowedOrigins: splitList(viper.GetString("ALLOWED_ORIGINS")),
				SendBuffer:     viper.GetInt("WS_SEND_BUFFER"),
				EventsPerSec:   viper.GetFloat64("WS_EVENTS_PER_SEC"),
				EventBurst:     viper.GetInt("WS_EVENT_BURST"),
			},
			Log: LogConfig{
				Level:  viper.GetString("LOG_LEVEL"),
				Pretty: viper.GetBool("LOG_PRETTY"),
			},
		}
	})

	return ConfigInstance, nil
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
