package repository

import (
	"context"
	"errors"
	"testing"

	"ecommerce_api/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

func mustProductAV(t *testing.T, p entities.Product) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(toProductItem(p))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestProductDynamoRepository_Defaults(t *testing.T) {
	r := NewProductDynamoRepository(&fakeDynamo{}, "", "")
	if r.tableName != "products" || r.codeIndex != "code-index" {
		t.Fatalf("unexpected defaults: %s %s", r.tableName, r.codeIndex)
	}
}

func TestProductDynamoRepository_Create(t *testing.T) {
	p := entities.Product{ID: "p1", Code: "AAA", Name: "Phone", Price: decimal.RequireFromString("10.50")}

	t.Run("conditional put", func(t *testing.T) {
		f := &fakeDynamo{putFn: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			if aws.ToString(in.TableName) != "catalog" {
				t.Fatalf("unexpected table %s", aws.ToString(in.TableName))
			}
			if aws.ToString(in.ConditionExpression) != "attribute_not_exists(#id)" || in.ExpressionAttributeNames["#id"] != "id" {
				t.Fatalf("missing create condition: %+v", in)
			}
			if attrS(in.Item, "code") != "AAA" || attrS(in.Item, "price") != "10.5" {
				t.Fatalf("unexpected item: %+v", in.Item)
			}
			if _, ok := in.Item["model"]; ok {
				t.Fatalf("empty model should be omitted")
			}
			return &dynamodb.PutItemOutput{}, nil
		}}
		got, ok, err := NewProductDynamoRepository(f, "catalog", "").Create(context.Background(), p)
		if err != nil || !ok || got.ID != "p1" {
			t.Fatalf("unexpected result: %+v ok=%v err=%v", got, ok, err)
		}
	})

	t.Run("existing id", func(t *testing.T) {
		f := &fakeDynamo{putFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, conditionalCheckFailed()
		}}
		_, ok, err := NewProductDynamoRepository(f, "", "").Create(context.Background(), p)
		if err != nil || ok {
			t.Fatalf("expected precondition failure without error, ok=%v err=%v", ok, err)
		}
	})

	t.Run("store error", func(t *testing.T) {
		boom := errors.New("throttled")
		f := &fakeDynamo{putFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) { return nil, boom }}
		_, _, err := NewProductDynamoRepository(f, "", "").Create(context.Background(), p)
		if !errors.Is(err, boom) {
			t.Fatalf("expected store error, got %v", err)
		}
	})
}

func TestProductDynamoRepository_Update(t *testing.T) {
	t.Run("returns post-update record", func(t *testing.T) {
		f := &fakeDynamo{updateFn: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			if aws.ToString(in.ConditionExpression) != "attribute_exists(#id)" {
				t.Fatalf("missing update condition")
			}
			if in.ReturnValues != types.ReturnValueAllNew {
				t.Fatalf("expected ALL_NEW, got %s", in.ReturnValues)
			}
			if _, ok := in.ExpressionAttributeNames["#code"]; ok {
				t.Fatalf("code must not be updated")
			}
			if attrS(in.ExpressionAttributeValues, ":price") != "99" {
				t.Fatalf("unexpected price value: %+v", in.ExpressionAttributeValues)
			}
			return &dynamodb.UpdateItemOutput{Attributes: mustProductAV(t, entities.Product{
				ID: "p1", Code: "AAA", Name: "Phone 2", Price: decimal.NewFromInt(99),
			})}, nil
		}}
		got, ok, err := NewProductDynamoRepository(f, "", "").Update(context.Background(), entities.Product{ID: "p1", Name: "Phone 2", Price: decimal.NewFromInt(99)})
		if err != nil || !ok {
			t.Fatalf("unexpected result ok=%v err=%v", ok, err)
		}
		if got.Code != "AAA" || got.Name != "Phone 2" || !got.Price.Equal(decimal.NewFromInt(99)) {
			t.Fatalf("unexpected product: %+v", got)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		f := &fakeDynamo{updateFn: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, conditionalCheckFailed()
		}}
		_, ok, err := NewProductDynamoRepository(f, "", "").Update(context.Background(), entities.Product{ID: "nope"})
		if err != nil || ok {
			t.Fatalf("expected not found outcome, ok=%v err=%v", ok, err)
		}
	})
}

func TestProductDynamoRepository_Delete(t *testing.T) {
	t.Run("returns deleted record", func(t *testing.T) {
		f := &fakeDynamo{deleteFn: func(in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			if in.ReturnValues != types.ReturnValueAllOld || aws.ToString(in.ConditionExpression) != "attribute_exists(#id)" {
				t.Fatalf("unexpected delete input: %+v", in)
			}
			return &dynamodb.DeleteItemOutput{Attributes: mustProductAV(t, entities.Product{ID: "p1", Code: "AAA"})}, nil
		}}
		got, ok, err := NewProductDynamoRepository(f, "", "").Delete(context.Background(), "p1")
		if err != nil || !ok || got.Code != "AAA" {
			t.Fatalf("unexpected result: %+v ok=%v err=%v", got, ok, err)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		f := &fakeDynamo{deleteFn: func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			return nil, conditionalCheckFailed()
		}}
		_, ok, err := NewProductDynamoRepository(f, "", "").Delete(context.Background(), "p1")
		if err != nil || ok {
			t.Fatalf("expected not found outcome, ok=%v err=%v", ok, err)
		}
	})
}

func TestProductDynamoRepository_GetByID(t *testing.T) {
	f := &fakeDynamo{getFn: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		if !aws.ToBool(in.ConsistentRead) {
			t.Fatalf("expected consistent read")
		}
		if attrS(in.Key, "id") == "p1" {
			return &dynamodb.GetItemOutput{Item: mustProductAV(t, entities.Product{ID: "p1", Code: "AAA", Price: decimal.RequireFromString("0.10")})}, nil
		}
		return &dynamodb.GetItemOutput{}, nil
	}}
	r := NewProductDynamoRepository(f, "", "")

	got, ok, err := r.GetByID(context.Background(), "p1")
	if err != nil || !ok || !got.Price.Equal(decimal.RequireFromString("0.1")) {
		t.Fatalf("unexpected result: %+v ok=%v err=%v", got, ok, err)
	}
	if _, ok, err := r.GetByID(context.Background(), "p2"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
}

func TestProductDynamoRepository_GetByCodes(t *testing.T) {
	f := &fakeDynamo{}
	f.queryFn = func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		if aws.ToString(in.IndexName) != "code-index" {
			t.Errorf("expected code index, got %s", aws.ToString(in.IndexName))
		}
		switch code := attrS(in.ExpressionAttributeValues, ":code"); code {
		case "AAA", "BBB":
			av, err := attributevalue.MarshalMap(productItem{ID: "id-" + code, Code: code, Price: "1"})
			if err != nil {
				return nil, err
			}
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av}}, nil
		default:
			return &dynamodb.QueryOutput{}, nil
		}
	}

	got, err := NewProductDynamoRepository(f, "", "").GetByCodes(context.Background(), []string{"AAA", "BBB", "AAA", "ZZZ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got["AAA"].ID != "id-AAA" || got["BBB"].ID != "id-BBB" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if _, ok := got["ZZZ"]; ok {
		t.Fatalf("missing code must be absent")
	}
	if f.queries != 3 {
		t.Fatalf("expected 3 distinct lookups, got %d", f.queries)
	}
}

func TestProductDynamoRepository_GetByCodes_Error(t *testing.T) {
	boom := errors.New("throttled")
	f := &fakeDynamo{queryFn: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) { return nil, boom }}

	_, err := NewProductDynamoRepository(f, "", "").GetByCodes(context.Background(), []string{"AAA", "BBB"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestProductDynamoRepository_List_Paginates(t *testing.T) {
	calls := 0
	f := &fakeDynamo{scanFn: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
		calls++
		if calls == 1 {
			return &dynamodb.ScanOutput{
				Items:            []map[string]types.AttributeValue{mustProductAV(t, entities.Product{ID: "p1"})},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "p1"}},
			}, nil
		}
		if attrS(in.ExclusiveStartKey, "id") != "p1" {
			t.Fatalf("expected continuation from p1")
		}
		return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{mustProductAV(t, entities.Product{ID: "p2"})}}, nil
	}}

	got, err := NewProductDynamoRepository(f, "", "").List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("unexpected products: %+v", got)
	}
}

func TestProductDynamoRepository_MalformedStoredPrice(t *testing.T) {
	corrupt := map[string]types.AttributeValue{
		"id":    &types.AttributeValueMemberS{Value: "id-AAA"},
		"code":  &types.AttributeValueMemberS{Value: "AAA"},
		"name":  &types.AttributeValueMemberS{Value: "Phone"},
		"price": &types.AttributeValueMemberS{Value: "12,50"},
	}
	f := &fakeDynamo{
		queryFn: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{corrupt}}, nil
		},
		getFn: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: corrupt}, nil
		},
		scanFn: func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{corrupt}}, nil
		},
	}
	r := NewProductDynamoRepository(f, "", "")
	ctx := context.Background()

	if got, err := r.GetByCodes(ctx, []string{"AAA"}); err == nil {
		t.Fatalf("expected decode error, resolved %+v", got)
	}
	if got, ok, err := r.GetByID(ctx, "id-AAA"); err == nil || ok {
		t.Fatalf("expected decode error, got %+v ok=%v", got, ok)
	}
	if _, err := r.List(ctx); err == nil {
		t.Fatalf("expected decode error from list")
	}

	delete(corrupt, "price")
	if _, _, err := r.GetByID(ctx, "id-AAA"); err == nil {
		t.Fatalf("missing price must not decode as zero")
	}
}
