package aws

import "github.com/aws/aws-sdk-go-v2/aws"

// Config selects the AWS account and region NewSecretsManagerStore talks to.
// With both fields empty the SDK's default chain applies (AWS_REGION,
// shared config files, instance metadata).
type Config struct {
	Region string

	// AWSConfig, when set, is used as is and Region is ignored.
	AWSConfig *aws.Config
}
