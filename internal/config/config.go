package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig файл конфигурации не найден или не разобран
	ErrReadConfig = errors.New("config: failed to read config file")
	// ErrInvalidConfig значения конфигурации некорректны
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Redis       RedisConfig       `toml:"redis"`
	Kafka       KafkaConfig       `toml:"kafka"`
	UserService UserServiceConfig `toml:"user_service"`
	Booking     BookingConfig     `toml:"booking"`
	Jobs        JobsConfig        `toml:"jobs"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" default:"8080"`
	ReadTimeout     int `toml:"read_timeout" default:"10"`     // секунды
	WriteTimeout    int `toml:"write_timeout" default:"10"`    // секунды
	IdleTimeout     int `toml:"idle_timeout" default:"60"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" default:"15"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host" default:"localhost"`
	Port            int    `toml:"port" default:"5432"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode" default:"disable"`
	MaxOpenConns    int    `toml:"max_open_conns" default:"25"`
	MaxIdleConns    int    `toml:"max_idle_conns" default:"5"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" default:"300"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" default:"info"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" default:"/metrics"`
	ServiceName string `toml:"service_name" default:"ink-booking-service"`
}

// RedisConfig кеш расписаний мастеров. Пустой Addr отключает кеш.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl" default:"300"` // секунды
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// KafkaConfig публикация событий о бронированиях. Пустой Brokers отключает публикацию.
type KafkaConfig struct {
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic" default:"booking-events"`
	WriteTimeout int      `toml:"write_timeout" default:"5"` // секунды
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// UserServiceConfig проверка клиента при записи. Пустой URL отключает проверку.
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout" default:"3"` // секунды
}

func (u UserServiceConfig) Enabled() bool {
	return u.URL != ""
}

// BookingConfig бизнес-правила расчёта слотов и записи
type BookingConfig struct {
	FullDayThresholdMinutes      int    `toml:"full_day_threshold_minutes" default:"240"`
	PostAppointmentBufferMinutes int    `toml:"post_appointment_buffer_minutes" default:"60"`
	SlotStepMinutes              int    `toml:"slot_step_minutes" default:"30"`
	CalendarConcurrency          int    `toml:"calendar_concurrency" default:"4"`
	Timezone                     string `toml:"timezone" default:"UTC"` // часовой пояс студии, IANA
	ConflictRetries              int    `toml:"conflict_retries" default:"3"`
}

// Location часовой пояс, в котором интерпретируются даты запросов
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// JobsConfig фоновые задачи. Пустое расписание отключает задачу.
type JobsConfig struct {
	CompleteFinishedSchedule string `toml:"complete_finished_schedule" default:"@every 15m"`
}

// Load читает TOML-файл, затем .env и переменные окружения для секретов
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("%w: defaults: %v", ErrInvalidConfig, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env необязателен
	_ = godotenv.Load(".env")
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		var brokers []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		cfg.Kafka.Brokers = brokers
	}
	if v := os.Getenv("USER_SERVICE_URL"); v != "" {
		cfg.UserService.URL = v
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Booking.FullDayThresholdMinutes <= 0 {
		return fmt.Errorf("%w: booking.full_day_threshold_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.PostAppointmentBufferMinutes < 0 {
		return fmt.Errorf("%w: booking.post_appointment_buffer_minutes must not be negative", ErrInvalidConfig)
	}
	if c.Booking.SlotStepMinutes <= 0 {
		return fmt.Errorf("%w: booking.slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.ConflictRetries < 0 {
		return fmt.Errorf("%w: booking.conflict_retries must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Booking.CalendarConcurrency <= 0 {
		c.Booking.CalendarConcurrency = 1
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with '/'", ErrInvalidConfig)
	}
	return nil
}
