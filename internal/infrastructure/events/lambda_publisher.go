package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ecommerce_api/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

type lambdaInvoker interface {
	Invoke(ctx context.Context, in *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

var _ lambdaInvoker = (*lambda.Client)(nil)

// LambdaPublisher hands each event to a function invoked asynchronously.
// Lambda answers 202 once the event is queued on its side.
type LambdaPublisher struct {
	client       lambdaInvoker
	functionName string
}

func NewLambdaPublisher(client lambdaInvoker, functionName string) *LambdaPublisher {
	return &LambdaPublisher{client: client, functionName: functionName}
}

func (p *LambdaPublisher) Publish(ctx context.Context, ev entities.ProductEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal product event: %w", err)
	}

	out, err := p.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(p.functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("invoke %s: %w", p.functionName, err)
	}
	if out.StatusCode != http.StatusAccepted {
		return fmt.Errorf("invoke %s: unexpected status %d", p.functionName, out.StatusCode)
	}
	if out.FunctionError != nil {
		return fmt.Errorf("invoke %s: function error %s", p.functionName, aws.ToString(out.FunctionError))
	}
	return nil
}
