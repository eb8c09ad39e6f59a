package repository

import (
	"context"
	"fmt"
	"time"

	"ecommerce_api/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	defaultEventsTableName = "events"
	defaultEventsTTL       = 10 * time.Minute
)

type productEventItem struct {
	PK            string `dynamodbav:"pk"`
	SK            string `dynamodbav:"sk"`
	TTL           int64  `dynamodbav:"ttl"`
	EventType     string `dynamodbav:"event_type"`
	ProductID     string `dynamodbav:"product_id"`
	ProductCode   string `dynamodbav:"product_code"`
	ProductPrice  string `dynamodbav:"product_price"`
	ActorEmail    string `dynamodbav:"actor_email,omitempty"`
	CorrelationID string `dynamodbav:"correlation_id,omitempty"`
	OccurredAt    string `dynamodbav:"occurred_at"`
}

// ProductEventDynamoRepository keeps an expiring audit trail of catalog events.
//
// Table requirements:
//   - PK: pk (string, "#product_<code>")
//   - SK: sk (string, "<event type>#<unix ms>")
//   - TTL attribute: ttl (epoch seconds)
type ProductEventDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
	ttl       time.Duration
}

func NewProductEventDynamoRepository(ddb dynamoAPI, tableName string, ttl time.Duration) *ProductEventDynamoRepository {
	if ttl <= 0 {
		ttl = defaultEventsTTL
	}
	return &ProductEventDynamoRepository{
		ddb:       ddb,
		tableName: valueOrDefault(tableName, defaultEventsTableName),
		ttl:       ttl,
	}
}

// Save writes the event unconditionally; a replay with the same millisecond
// overwrites the earlier copy.
func (r *ProductEventDynamoRepository) Save(ctx context.Context, ev entities.ProductEvent) error {
	av, err := attributevalue.MarshalMap(toProductEventItem(ev, r.ttl))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func productEventPK(code string) string {
	return "#product_" + code
}

func productEventSK(eventType entities.ProductEventType, at time.Time) string {
	return fmt.Sprintf("%s#%d", eventType, at.UnixMilli())
}

func toProductEventItem(ev entities.ProductEvent, ttl time.Duration) productEventItem {
	return productEventItem{
		PK:            productEventPK(ev.ProductCode),
		SK:            productEventSK(ev.EventType, ev.OccurredAt),
		TTL:           ev.OccurredAt.Add(ttl).Unix(),
		EventType:     string(ev.EventType),
		ProductID:     ev.ProductID,
		ProductCode:   ev.ProductCode,
		ProductPrice:  decimalToString(ev.ProductPrice),
		ActorEmail:    ev.ActorEmail,
		CorrelationID: ev.CorrelationID,
		OccurredAt:    ev.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
}
