package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Quiz     QuizConfig
	MongoDB  MongoDBConfig
	MinIO    MinIOConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	ServiceName string
	CORSOrigins []string
}

// QuizConfig carries the scoring and session constants. Each quiz topic
// has a fixed question set worth PointsPerQuestion each; a session stays
// valid for SessionDuration after it is issued.
type QuizConfig struct {
	Topics            []Topic
	PointsPerQuestion int
	SessionDuration   time.Duration
	MaxUploadBytes    int64
	UploadContentType string
}

// Topic is one quiz unit. Session starts are rejected for ids outside
// the configured set.
type Topic struct {
	ID    string
	Label string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type MinIOConfig struct {
	Endpoint        string
	PublicEndpoint  string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	Region          string
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
}

type RedisConfig struct {
	URI string
}

type JWTConfig struct {
	Secret string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Host:        getEnv("HOST", "0.0.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "quiz-integrity-service"),
			CORSOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		Quiz: QuizConfig{
			Topics:            defaultTopics(),
			PointsPerQuestion: getEnvAsInt("POINTS_PER_QUESTION", 2),
			SessionDuration:   getEnvAsDuration("SESSION_DURATION_MINUTES", 60) * time.Minute,
			MaxUploadBytes:    int64(getEnvAsInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
			UploadContentType: getEnv("UPLOAD_CONTENT_TYPE", "application/pdf"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://mongodb:27017"),
			Database: getEnv("MONGO_DB", "quiz_integrity"),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT_SECONDS", 10) * time.Second,
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "minio:9000"),
			PublicEndpoint:  getEnv("MINIO_PUBLIC_ENDPOINT", ""),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:          getEnvAsBool("MINIO_USE_SSL", false),
			Bucket:          getEnv("MINIO_BUCKET", "group-submissions"),
			Region:          getEnv("MINIO_REGION", "us-east-1"),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", ""),
		},
		Redis: RedisConfig{
			URI: getEnv("REDIS_URI", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
	}
}

func defaultTopics() []Topic {
	return []Topic{
		{ID: "topic1", Label: "Day 1 - Dirty Dozen"},
		{ID: "topic2", Label: "Day 1 - Material Factors in Aviation Safety"},
		{ID: "topic3", Label: "Day 1 - Safety Management Systems"},
		{ID: "topic4", Label: "Day 1 - Airside Safety Hazards"},
	}
}

// KnownTopic reports whether id is a configured quiz topic.
func (q QuizConfig) KnownTopic(id string) bool {
	for _, t := range q.Topics {
		if t.ID == id {
			return true
		}
	}
	return false
}

// TopicLabel returns the display label for a topic id, or the id itself
// when it is not configured.
func (q QuizConfig) TopicLabel(id string) string {
	for _, t := range q.Topics {
		if t.ID == id {
			return t.Label
		}
	}
	return id
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("Error converting %s to int: %v", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultValue))
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("Error converting %s to bool: %v", key, err)
			return defaultValue
		}
		return boolVal
	}
	return defaultValue
}
