package repository

import (
	"context"
	"fmt"
	"time"

	"ecommerce_api/internal/domain/entities"
	"ecommerce_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrdersTableName = "orders"

type orderedProductItem struct {
	Code  string `dynamodbav:"code"`
	Price string `dynamodbav:"price"`
}

type orderItem struct {
	PK           string               `dynamodbav:"pk"`
	SK           string               `dynamodbav:"sk"`
	CreatedAt    string               `dynamodbav:"created_at"`
	Products     []orderedProductItem `dynamodbav:"products"`
	Payment      string               `dynamodbav:"payment"`
	TotalPrice   string               `dynamodbav:"total_price"`
	ShippingType string               `dynamodbav:"shipping_type"`
	Carrier      string               `dynamodbav:"carrier"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: pk (string, customer email)
//   - SK: sk (string, order id)
//
// Orders are never updated, so there is no UpdateItem path.
type OrderDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb dynamoAPI, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: valueOrDefault(tableName, defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, bool, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "pk",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Order{}, false, nil
		}
		return entities.Order{}, false, err
	}
	return o, true, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, email, orderID string) (entities.Order, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            orderKey(email, orderID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, false, err
	}
	return unmarshalOrder(out.Item)
}

func (r *OrderDynamoRepository) ListByCustomer(ctx context.Context, email string) ([]entities.Order, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "pk",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: email},
		},
	})

	orders := make([]entities.Order, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if orders, err = appendOrders(orders, page.Items); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderDynamoRepository) List(ctx context.Context) ([]entities.Order, error) {
	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	orders := make([]entities.Order, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		if orders, err = appendOrders(orders, page.Items); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderDynamoRepository) Delete(ctx context.Context, email, orderID string) (entities.Order, bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 orderKey(email, orderID),
		ConditionExpression: aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "pk",
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Order{}, false, nil
		}
		return entities.Order{}, false, err
	}
	return unmarshalOrder(out.Attributes)
}

func orderKey(email, orderID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: email},
		"sk": &types.AttributeValueMemberS{Value: orderID},
	}
}

func appendOrders(dst []entities.Order, raw []map[string]types.AttributeValue) ([]entities.Order, error) {
	for _, item := range raw {
		var it orderItem
		if err := attributevalue.UnmarshalMap(item, &it); err != nil {
			return nil, err
		}
		o, err := fromOrderItem(it)
		if err != nil {
			return nil, err
		}
		dst = append(dst, o)
	}
	return dst, nil
}

func unmarshalOrder(raw map[string]types.AttributeValue) (entities.Order, bool, error) {
	if len(raw) == 0 {
		return entities.Order{}, false, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Order{}, false, err
	}
	o, err := fromOrderItem(it)
	if err != nil {
		return entities.Order{}, false, err
	}
	return o, true, nil
}

func toOrderItem(o entities.Order) orderItem {
	products := make([]orderedProductItem, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, orderedProductItem{Code: p.Code, Price: decimalToString(p.Price)})
	}
	return orderItem{
		PK:           o.CustomerEmail,
		SK:           o.ID,
		CreatedAt:    o.CreatedAt.UTC().Format(time.RFC3339Nano),
		Products:     products,
		Payment:      string(o.Billing.PaymentMethod),
		TotalPrice:   decimalToString(o.Billing.TotalPrice),
		ShippingType: string(o.Shipping.Type),
		Carrier:      string(o.Shipping.Carrier),
	}
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		return entities.Order{}, fmt.Errorf("order %s: malformed created_at %q: %w", it.SK, it.CreatedAt, err)
	}
	products := make([]entities.OrderedProduct, 0, len(it.Products))
	for _, p := range it.Products {
		price, err := decimalFromString(p.Price)
		if err != nil {
			return entities.Order{}, fmt.Errorf("order %s product %s: %w", it.SK, p.Code, err)
		}
		products = append(products, entities.OrderedProduct{Code: p.Code, Price: price})
	}
	total, err := decimalFromString(it.TotalPrice)
	if err != nil {
		return entities.Order{}, fmt.Errorf("order %s total: %w", it.SK, err)
	}
	return entities.Order{
		CustomerEmail: it.PK,
		ID:            it.SK,
		CreatedAt:     createdAt,
		Products:      products,
		Billing: entities.Billing{
			PaymentMethod: entities.PaymentMethod(it.Payment),
			TotalPrice:    total,
		},
		Shipping: entities.Shipping{
			Type:    entities.ShippingType(it.ShippingType),
			Carrier: entities.Carrier(it.Carrier),
		},
	}, nil
}
