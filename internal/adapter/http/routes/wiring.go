package routes

import (
	"fmt"
	"log"

	"ecommerce_api/internal/adapter/cache"
	"ecommerce_api/internal/adapter/persistence/repository"
	"ecommerce_api/internal/infrastructure/awsclient"
	"ecommerce_api/internal/infrastructure/config"
	"ecommerce_api/internal/infrastructure/events"
	"ecommerce_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
)

func noopClose() error { return nil }

// buildPublisher selects the event backend. Remote backends sit behind a
// circuit breaker. The returned func releases backend resources.
func buildPublisher(cfg config.Config, awsCfg aws.Config, ddb *dynamodb.Client) (events.Publisher, func() error, error) {
	switch cfg.Events.Backend {
	case config.EventsBackendLog, "":
		return events.LogPublisher{}, noopClose, nil
	case config.EventsBackendDynamoDB:
		store := repository.NewProductEventDynamoRepository(ddb, cfg.Tables.Events, cfg.Tables.EventsTTL)
		return events.NewStorePublisher(store), noopClose, nil
	case config.EventsBackendLambda:
		if cfg.Events.FunctionName == "" {
			return nil, nil, fmt.Errorf("PRODUCT_EVENTS_FUNCTION_NAME is required for the lambda backend")
		}
		pub := events.NewLambdaPublisher(awsclient.NewLambda(awsCfg), cfg.Events.FunctionName)
		return events.NewBreakerPublisher("lambda:"+cfg.Events.FunctionName, pub, 0, 0), noopClose, nil
	case config.EventsBackendKafka:
		if len(cfg.Events.KafkaBrokers) == 0 {
			return nil, nil, fmt.Errorf("KAFKA_BROKERS is required for the kafka backend")
		}
		pub := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic))
		return events.NewBreakerPublisher("kafka:"+cfg.Events.KafkaTopic, pub, 0, 0), pub.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown EVENTS_BACKEND %q", cfg.Events.Backend)
	}
}

// buildProductCache returns a nil cache when REDIS_ADDR is unset.
func buildProductCache(cfg config.Config) (interfaces.IProductCache, func() error) {
	if cfg.Cache.RedisAddr == "" {
		log.Printf("[cache][redis] disabled; REDIS_ADDR not set")
		return nil, noopClose
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
	return cache.NewProductRedisCache(client, cfg.Cache.ProductTTL), client.Close
}
