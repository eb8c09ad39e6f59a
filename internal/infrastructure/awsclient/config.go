// Package awsclient builds the AWS SDK clients used by the service.
package awsclient

import (
	"context"

	appconfig "ecommerce_api/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// NewConfig loads the shared AWS config with static credentials and optional
// endpoint overrides (DynamoDB Local, a local Lambda emulator).
func NewConfig(ctx context.Context, c appconfig.AWS) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(creds),
	}

	overrides := map[string]string{}
	if c.DynamoEndpoint != "" {
		overrides[dynamodb.ServiceID] = c.DynamoEndpoint
	}
	if c.LambdaEndpoint != "" {
		overrides[lambda.ServiceID] = c.LambdaEndpoint
	}
	if len(overrides) > 0 {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if url, ok := overrides[service]; ok {
				return aws.Endpoint{URL: url, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}
