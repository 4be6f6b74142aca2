package hashicorp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/crypton"
)

// fakeKV serves the subset of the KV v2 HTTP API used by KVStore.
type fakeKV struct {
	mu      sync.Mutex
	secrets map[string]map[string]interface{}
}

func (f *fakeKV) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("X-Vault-Token") != "test-token" {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"errors":["permission denied"]}`)
		return
	}

	switch r.Method {
	case http.MethodGet:
		data, ok := f.secrets[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"errors":[]}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"data": data},
		})
	case http.MethodPut, http.MethodPost:
		var body struct {
			Data map[string]interface{} `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.secrets[r.URL.Path] = body.Data
		_, _ = io.WriteString(w, `{"data":{"version":1}}`)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T, token string) (*KVStore, *fakeKV) {
	t.Helper()
	fake := &fakeKV{secrets: map[string]map[string]interface{}{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	config := api.DefaultConfig()
	config.Address = server.URL
	client, err := api.NewClient(config)
	require.NoError(t, err)
	client.SetToken(token)

	return NewKVStoreWithClient(client), fake
}

func TestKVStore_GetStoragePath(t *testing.T) {
	kv := &KVStore{}
	assert.Equal(t, "secret/data/crypton/billing", kv.GetStoragePath("billing"))
	assert.Equal(t, "secret/data/crypton/prod/api", kv.GetStoragePath("prod/api"))
}

func TestKVStore_StoreAndGet(t *testing.T) {
	ctx := context.Background()
	kv, fake := newTestStore(t, "test-token")

	require.NoError(t, kv.StoreSecret(ctx, "billing", "s3cr3t"))
	assert.Contains(t, fake.secrets, "/v1/secret/data/crypton/billing")

	value, err := kv.GetSecret(ctx, "billing")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", value)
}

func TestKVStore_GetSecret_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		kv, _ := newTestStore(t, "test-token")
		_, err := kv.GetSecret(ctx, "missing")
		assert.ErrorIs(t, err, crypton.ErrSecretSourceUnavailable)
	})

	t.Run("missing value field", func(t *testing.T) {
		kv, fake := newTestStore(t, "test-token")
		fake.secrets["/v1/secret/data/crypton/other"] = map[string]interface{}{"password": "x"}

		_, err := kv.GetSecret(ctx, "other")
		assert.ErrorIs(t, err, crypton.ErrSecretSourceUnavailable)
	})

	t.Run("permission denied", func(t *testing.T) {
		kv, _ := newTestStore(t, "wrong-token")
		_, err := kv.GetSecret(ctx, "billing")
		assert.ErrorIs(t, err, crypton.ErrSecretSourceUnavailable)
	})
}

func TestKVStore_StoreSecret_Empty(t *testing.T) {
	kv, _ := newTestStore(t, "test-token")
	err := kv.StoreSecret(context.Background(), "billing", "")
	assert.ErrorIs(t, err, crypton.ErrInvalidConfiguration)
}

func TestKVStore_AsSecretSource(t *testing.T) {
	ctx := context.Background()
	kv, _ := newTestStore(t, "test-token")
	require.NoError(t, kv.StoreSecret(ctx, "billing", "from-vault"))

	opts, err := crypton.LoadOptions(ctx, "",
		crypton.WithEnvFiles(),
		crypton.WithWorkDir(t.TempDir()),
		crypton.WithLookupEnv(func(key string) (string, bool) {
			if key == "CRYPTON_SECRET_KEY_REF" {
				return "billing", true
			}
			return "", false
		}),
		crypton.WithSecretSource(kv),
	)
	require.NoError(t, err)
	assert.Equal(t, "from-vault", opts.Crypto.SecretKey)
}

func TestCreateVaultClient_RequiresAuth(t *testing.T) {
	t.Setenv("VAULT_ADDR", "http://127.0.0.1:8200")
	t.Setenv("VAULT_TOKEN", "")
	t.Setenv("VAULT_ROLE_ID", "")
	t.Setenv("VAULT_SECRET_ID", "")

	_, err := createVaultClient()
	assert.ErrorIs(t, err, crypton.ErrInvalidConfiguration)
}
