// Package config reads the service settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Event backends selectable through EVENTS_BACKEND.
const (
	EventsBackendLog      = "log"
	EventsBackendDynamoDB = "dynamodb"
	EventsBackendLambda   = "lambda"
	EventsBackendKafka    = "kafka"
)

type AWS struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	DynamoEndpoint  string
	LambdaEndpoint  string
}

type Tables struct {
	Products          string
	ProductsCodeIndex string
	Orders            string
	Events            string
	EventsTTL         time.Duration
}

type Events struct {
	Backend        string
	FunctionName   string
	KafkaBrokers   []string
	KafkaTopic     string
	QueueSize      int
	Workers        int
	PublishTimeout time.Duration
}

type Cache struct {
	RedisAddr  string
	ProductTTL time.Duration
}

type Config struct {
	Port            int
	ShutdownTimeout time.Duration
	AWS             AWS
	Tables          Tables
	Events          Events
	Cache           Cache
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	return time.Duration(atoienv(key, defMs)) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

func listenv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		Port:            atoienv("PORT", 8080),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT_SECONDS", 15),
		AWS: AWS{
			Region: getenv("AWS_REGION", "us-east-1"),
			// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
			AccessKeyID:     getenv("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoEndpoint:  os.Getenv("DYNAMODB_ENDPOINT"),
			LambdaEndpoint:  os.Getenv("LAMBDA_ENDPOINT"),
		},
		Tables: Tables{
			Products:          getenv("PRODUCTS_TABLE", "products"),
			ProductsCodeIndex: getenv("PRODUCTS_CODE_INDEX", "code-index"),
			Orders:            getenv("ORDERS_TABLE", "orders"),
			Events:            getenv("EVENTS_TABLE", "events"),
			EventsTTL:         time.Duration(atoienv("EVENTS_TTL_MINUTES", 10)) * time.Minute,
		},
		Events: Events{
			Backend:        strings.ToLower(getenv("EVENTS_BACKEND", EventsBackendLog)),
			FunctionName:   getenv("PRODUCT_EVENTS_FUNCTION_NAME", "product-events"),
			KafkaBrokers:   listenv("KAFKA_BROKERS"),
			KafkaTopic:     getenv("KAFKA_PRODUCT_EVENTS_TOPIC", "product-events"),
			QueueSize:      atoienv("EVENTS_QUEUE_SIZE", 256),
			Workers:        atoienv("EVENTS_WORKERS", 2),
			PublishTimeout: durenvms("EVENTS_PUBLISH_TIMEOUT_MS", 5000),
		},
		Cache: Cache{
			RedisAddr:  os.Getenv("REDIS_ADDR"),
			ProductTTL: durenvs("PRODUCT_CACHE_TTL_SECONDS", 300),
		},
	}
}
