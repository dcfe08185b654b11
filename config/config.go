package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// Nested fields stay untagged. A tagged field falls back to the bare tag name,
// so DB_USER would silently fall back to USER.
type DB struct {
	Host     string `default:"localhost"`
	Port     string `default:"5432"`
	Name     string `default:"restaurant"`
	User     string `default:"postgres"`
	Password string
	SSLMode  string `default:"disable"`
}

func (d DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL is the form golang-migrate expects.
func (d DB) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type Redis struct {
	Host string `default:"localhost"`
	Port string `default:"6379"`
}

func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

type Kafka struct {
	Broker  string `default:"localhost:9092"`
	Topic   string `default:"restaurant-events"`
	GroupID string `split_words:"true" default:"table-reconciler"`
}

type Auth struct {
	JWTSecret string        `split_words:"true" required:"true"`
	TokenTTL  time.Duration `split_words:"true" default:"1h"`
}

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	DB    DB
	Redis Redis
	Kafka Kafka
	Auth  Auth

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	SlotLockTTL               time.Duration `envconfig:"SLOT_LOCK_TTL" default:"10s"`
	TakeawayStrictTransitions bool          `envconfig:"TAKEAWAY_STRICT_TRANSITIONS" default:"false"`
	QRBaseURL                 string        `envconfig:"QR_BASE_URL" default:"http://localhost:8080"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.Wrap(err, "process env config")
	}
	if c.Auth.JWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return nil, errors.New("AUTH_TOKEN_TTL must be positive")
	}
	return &c, nil
}

// SetupLogging applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func (c *Config) SetupLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func MustInitPostgres(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	return client
}

func NewKafkaReader(cfg *Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Broker},
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
}

func NewKafkaWriter(cfg *Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Kafka.Broker),
		Topic:    cfg.Kafka.Topic,
		Balancer: &kafka.LeastBytes{},
	}
}
