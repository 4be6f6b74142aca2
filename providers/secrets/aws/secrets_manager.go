package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/hengadev/crypton"
)

// PathTemplate is the secret name a reference is stored under. References
// that are already ARNs are used as is.
const PathTemplate = "crypton/%s"

// secretsManagerClient interface for AWS Secrets Manager operations (allows mocking)
type secretsManagerClient interface {
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
}

// SecretsManagerStore resolves crypton secret references from AWS Secrets
// Manager. It implements crypton.SecretSource.
type SecretsManagerStore struct {
	client secretsManagerClient
	region string
}

var _ crypton.SecretSource = (*SecretsManagerStore)(nil)

// NewSecretsManagerStore creates a new AWS Secrets Manager store instance.
//
//	// Using default AWS configuration
//	store, err := aws.NewSecretsManagerStore(ctx, aws.Config{})
//
//	// With specific region
//	store, err := aws.NewSecretsManagerStore(ctx, aws.Config{Region: "us-east-1"})
func NewSecretsManagerStore(ctx context.Context, cfg Config) (*SecretsManagerStore, error) {
	var awsConfig aws.Config
	var err error

	if cfg.AWSConfig != nil {
		awsConfig = *cfg.AWSConfig
	} else {
		opts := []func(*config.LoadOptions) error{}
		if cfg.Region != "" {
			opts = append(opts, config.WithRegion(cfg.Region))
		}

		awsConfig, err = config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load AWS config: %w", crypton.ErrSecretSourceUnavailable, err)
		}
	}

	return &SecretsManagerStore{
		client: secretsmanager.NewFromConfig(awsConfig),
		region: awsConfig.Region,
	}, nil
}

// GetStoragePath returns the secret name for a reference.
//
// Examples:
//   - ref "billing" → "crypton/billing"
//   - ref "arn:aws:secretsmanager:eu-west-1:123:secret:key" → unchanged
func (s *SecretsManagerStore) GetStoragePath(ref string) string {
	if strings.HasPrefix(ref, "arn:") {
		return ref
	}
	return fmt.Sprintf(PathTemplate, ref)
}

// GetSecret reads the secret string stored for ref.
func (s *SecretsManagerStore) GetSecret(ctx context.Context, ref string) (string, error) {
	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.GetStoragePath(ref)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to get secret from Secrets Manager: %w",
			crypton.ErrSecretSourceUnavailable, err)
	}

	if result.SecretString == nil || *result.SecretString == "" {
		return "", fmt.Errorf("%w: secret not found for ref: %s",
			crypton.ErrSecretSourceUnavailable, ref)
	}
	return *result.SecretString, nil
}

// StoreSecret creates or updates the secret for ref.
func (s *SecretsManagerStore) StoreSecret(ctx context.Context, ref, value string) error {
	if value == "" {
		return fmt.Errorf("%w: secret value cannot be empty", crypton.ErrInvalidConfiguration)
	}

	secretName := s.GetStoragePath(ref)

	exists, err := s.SecretExists(ctx, ref)
	if err != nil {
		return err
	}

	if exists {
		_, err = s.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
			SecretId:     aws.String(secretName),
			SecretString: aws.String(value),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to update secret in Secrets Manager: %w",
				crypton.ErrSecretSourceUnavailable, err)
		}
		return nil
	}

	_, err = s.client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(secretName),
		Description:  aws.String(fmt.Sprintf("crypton secret key for %s", ref)),
		SecretString: aws.String(value),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create secret in Secrets Manager: %w",
			crypton.ErrSecretSourceUnavailable, err)
	}
	return nil
}

// SecretExists reports whether a secret is stored for ref. A missing secret
// is not an error.
func (s *SecretsManagerStore) SecretExists(ctx context.Context, ref string) (bool, error) {
	_, err := s.client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(s.GetStoragePath(ref)),
	})
	if err != nil {
		var notFoundErr *types.ResourceNotFoundException
		if errors.As(err, &notFoundErr) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to check if secret exists: %w",
			crypton.ErrSecretSourceUnavailable, err)
	}
	return true, nil
}

// Region returns the AWS region this Secrets Manager store is configured for.
func (s *SecretsManagerStore) Region() string {
	return s.region
}
