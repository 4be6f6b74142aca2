// Package aws resolves crypton secret references from AWS Secrets Manager.
//
//	store, err := aws.NewSecretsManagerStore(ctx, aws.Config{Region: "us-east-1"})
//	if err != nil {
//	    // handle error
//	}
//	opts, err := crypton.LoadOptions(ctx, "", crypton.WithSecretSource(store))
//
// A reference "billing" is read from the secret named crypton/billing. Full
// ARNs are used unchanged. The secret must be stored as a SecretString.
//
// The caller needs secretsmanager:GetSecretValue on the secret, plus
// CreateSecret, PutSecretValue and DescribeSecret to use StoreSecret.
package aws
