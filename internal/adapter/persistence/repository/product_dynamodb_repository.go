package repository

import (
	"context"
	"fmt"
	"sync"

	"ecommerce_api/internal/domain/entities"
	"ecommerce_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/sync/errgroup"
)

const (
	defaultProductsTableName = "products"
	defaultProductsCodeIndex = "code-index"

	// maxParallelCodeLookups bounds the concurrent index queries of GetByCodes.
	maxParallelCodeLookups = 8
)

type productItem struct {
	ID    string `dynamodbav:"id"`
	Code  string `dynamodbav:"code"`
	Name  string `dynamodbav:"name"`
	Model string `dynamodbav:"model,omitempty"`
	URL   string `dynamodbav:"url,omitempty"`
	Price string `dynamodbav:"price"`
}

// ProductDynamoRepository persists Product entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: code-index (PK: code)
type ProductDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
	codeIndex string
}

var _ interfaces.IProductRepository = (*ProductDynamoRepository)(nil)

func NewProductDynamoRepository(ddb dynamoAPI, tableName, codeIndex string) *ProductDynamoRepository {
	return &ProductDynamoRepository{
		ddb:       ddb,
		tableName: valueOrDefault(tableName, defaultProductsTableName),
		codeIndex: valueOrDefault(codeIndex, defaultProductsCodeIndex),
	}
}

func (r *ProductDynamoRepository) Create(ctx context.Context, p entities.Product) (entities.Product, bool, error) {
	av, err := attributevalue.MarshalMap(toProductItem(p))
	if err != nil {
		return entities.Product{}, false, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Product{}, false, nil
		}
		return entities.Product{}, false, err
	}
	return p, true, nil
}

// Update replaces name, model, url and price. id and code are left untouched.
func (r *ProductDynamoRepository) Update(ctx context.Context, p entities.Product) (entities.Product, bool, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: p.ID},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #name = :name, #model = :model, #url = :url, #price = :price"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":  &types.AttributeValueMemberS{Value: p.Name},
			":model": &types.AttributeValueMemberS{Value: p.Model},
			":url":   &types.AttributeValueMemberS{Value: p.URL},
			":price": &types.AttributeValueMemberS{Value: decimalToString(p.Price)},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#name":  "name",
			"#model": "model",
			"#url":   "url",
			"#price": "price",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Product{}, false, nil
		}
		return entities.Product{}, false, err
	}
	return unmarshalProduct(out.Attributes)
}

func (r *ProductDynamoRepository) Delete(ctx context.Context, id string) (entities.Product, bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Product{}, false, nil
		}
		return entities.Product{}, false, err
	}
	return unmarshalProduct(out.Attributes)
}

func (r *ProductDynamoRepository) GetByID(ctx context.Context, id string) (entities.Product, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Product{}, false, err
	}
	return unmarshalProduct(out.Item)
}

// GetByCode reads through the code index, which is eventually consistent.
func (r *ProductDynamoRepository) GetByCode(ctx context.Context, code string) (entities.Product, bool, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.codeIndex),
		KeyConditionExpression: aws.String("#code = :code"),
		ExpressionAttributeNames: map[string]string{
			"#code": "code",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Product{}, false, err
	}
	if len(out.Items) == 0 {
		return entities.Product{}, false, nil
	}
	return unmarshalProduct(out.Items[0])
}

func (r *ProductDynamoRepository) GetByCodes(ctx context.Context, codes []string) (map[string]entities.Product, error) {
	distinct := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		distinct = append(distinct, c)
	}

	var mu sync.Mutex
	found := make(map[string]entities.Product, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelCodeLookups)
	for _, code := range distinct {
		g.Go(func() error {
			p, ok, err := r.GetByCode(gctx, code)
			if err != nil || !ok {
				return err
			}
			mu.Lock()
			found[code] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

func (r *ProductDynamoRepository) List(ctx context.Context) ([]entities.Product, error) {
	paginator := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	products := make([]entities.Product, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it productItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			p, err := fromProductItem(it)
			if err != nil {
				return nil, err
			}
			products = append(products, p)
		}
	}
	return products, nil
}

func unmarshalProduct(raw map[string]types.AttributeValue) (entities.Product, bool, error) {
	if len(raw) == 0 {
		return entities.Product{}, false, nil
	}
	var it productItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Product{}, false, err
	}
	p, err := fromProductItem(it)
	if err != nil {
		return entities.Product{}, false, err
	}
	return p, true, nil
}

func toProductItem(p entities.Product) productItem {
	return productItem{
		ID:    p.ID,
		Code:  p.Code,
		Name:  p.Name,
		Model: p.Model,
		URL:   p.URL,
		Price: decimalToString(p.Price),
	}
}

func fromProductItem(it productItem) (entities.Product, error) {
	price, err := decimalFromString(it.Price)
	if err != nil {
		return entities.Product{}, fmt.Errorf("product %s: %w", it.ID, err)
	}
	return entities.Product{
		ID:    it.ID,
		Code:  it.Code,
		Name:  it.Name,
		Model: it.Model,
		URL:   it.URL,
		Price: price,
	}, nil
}
