package config

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// LoadEnv reads a .env file into the process environment when one exists.
// Variables already set take precedence.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.WithError(err).Warnf("could not load %s", path)
		}
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func PostgresDSN() string {
	return "host=" + GetEnv("DB_HOST", "localhost") +
		" port=" + GetEnv("DB_PORT", "5432") +
		" user=" + os.Getenv("DB_USER") +
		" password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + GetEnv("DB_NAME", "portions") +
		" sslmode=disable"
}

func MustInitPostgres() *sql.DB {
	db, err := sql.Open("postgres", PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: GetEnv("REDIS_HOST", "localhost") + ":" + GetEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{GetEnv("KAFKA_BROKER", "localhost:9092")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(GetEnv("KAFKA_BROKER", "localhost:9092")),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}
