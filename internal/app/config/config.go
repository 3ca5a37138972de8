package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	BackendGCS      = "gcs"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr string

	StoreBackend string
	BucketName   string
	DatabaseURL  string
	OrdersObject string
	CacheTTL     time.Duration

	AuthUsername string
	AuthPassword string

	KafkaBrokers       []string
	KafkaTopic         string
	KafkaConsumerGroup string

	LogFile string

	ShutdownTimeout time.Duration
}

func Load() (Config, error) {
	var c Config

	c.HTTPAddr = getenv("APP_HTTP_ADDR", ":3000")

	c.StoreBackend = getenv("STORE_BACKEND", BackendGCS)
	switch c.StoreBackend {
	case BackendGCS:
		c.BucketName = os.Getenv("GCS_BUCKET")
		if c.BucketName == "" {
			return Config{}, errors.New("GCS_BUCKET is required for the gcs backend")
		}
	case BackendPostgres:
		c.DatabaseURL = os.Getenv("DATABASE_URL")
		if c.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	c.OrdersObject = getenv("ORDERS_OBJECT", "order.json")
	c.CacheTTL = getenvDuration("CACHE_TTL", 5*time.Minute)

	c.AuthUsername = os.Getenv("AUTH_USERNAME")
	c.AuthPassword = os.Getenv("AUTH_PASSWORD")
	if c.AuthUsername == "" || c.AuthPassword == "" {
		return Config{}, errors.New("AUTH_USERNAME and AUTH_PASSWORD are required")
	}

	// Consumer is optional; absent brokers disable it.
	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		c.KafkaBrokers = splitCSV(brokers)
		c.KafkaTopic = getenv("KAFKA_TOPIC", "order-document-changes")
		c.KafkaConsumerGroup = getenv("KAFKA_CONSUMER_GROUP", "orderdesk")
	}

	c.LogFile = os.Getenv("LOG_FILE")
	c.ShutdownTimeout = getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	return c, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
