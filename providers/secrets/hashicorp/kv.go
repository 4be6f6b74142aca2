package hashicorp

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"

	"github.com/hengadev/crypton"
)

// PathTemplate is the KV v2 path a reference is stored under.
const PathTemplate = "secret/data/crypton/%s"

// valueField is the key holding the secret inside the KV v2 data map.
const valueField = "value"

// KVStore resolves crypton secret references from a Vault KV v2 engine. It
// implements crypton.SecretSource.
type KVStore struct {
	client *api.Client
}

var _ crypton.SecretSource = (*KVStore)(nil)

// NewKVStore creates a KVStore configured from the environment (see
// createVaultClient).
//
// The KV v2 engine must be enabled in Vault before use:
//
//	vault secrets enable -path=secret kv-v2
func NewKVStore() (*KVStore, error) {
	client, err := createVaultClient()
	if err != nil {
		return nil, err
	}
	return NewKVStoreWithClient(client), nil
}

// NewKVStoreWithClient wraps an already configured Vault client.
func NewKVStoreWithClient(client *api.Client) *KVStore {
	return &KVStore{client: client}
}

// GetStoragePath returns the Vault KV v2 path for a reference.
//
// Examples:
//   - ref "billing" → "secret/data/crypton/billing"
//   - ref "prod/api" → "secret/data/crypton/prod/api"
func (k *KVStore) GetStoragePath(ref string) string {
	return fmt.Sprintf(PathTemplate, ref)
}

// GetSecret reads the secret stored for ref.
func (k *KVStore) GetSecret(ctx context.Context, ref string) (string, error) {
	secret, err := k.client.Logical().ReadWithContext(ctx, k.GetStoragePath(ref))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read secret from Vault KV: %w",
			crypton.ErrSecretSourceUnavailable, err)
	}

	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("%w: secret not found for ref: %s",
			crypton.ErrSecretSourceUnavailable, ref)
	}

	// KV v2 wraps the actual data in a "data" key
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: invalid KV v2 secret format for ref: %s",
			crypton.ErrSecretSourceUnavailable, ref)
	}

	value, ok := data[valueField].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: secret value missing for ref: %s",
			crypton.ErrSecretSourceUnavailable, ref)
	}
	return value, nil
}

// StoreSecret writes value for ref. KV v2 keeps the previous versions.
func (k *KVStore) StoreSecret(ctx context.Context, ref, value string) error {
	if value == "" {
		return fmt.Errorf("%w: secret value cannot be empty", crypton.ErrInvalidConfiguration)
	}

	data := map[string]interface{}{
		"data": map[string]interface{}{
			valueField: value,
		},
	}

	if _, err := k.client.Logical().WriteWithContext(ctx, k.GetStoragePath(ref), data); err != nil {
		return fmt.Errorf("%w: failed to store secret in Vault KV: %w",
			crypton.ErrSecretSourceUnavailable, err)
	}
	return nil
}
