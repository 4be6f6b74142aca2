// Package hashicorp resolves crypton secret references from HashiCorp Vault's
// KV v2 engine.
//
//	kv, err := hashicorp.NewKVStore()
//	if err != nil {
//	    // handle error
//	}
//	opts, err := crypton.LoadOptions(ctx, "", crypton.WithSecretSource(kv))
//
// With crypton.yaml containing
//
//	crypto:
//	  secretKeyRef: billing
//
// the secret key is read from the "value" field of secret/data/crypton/billing.
//
// The client is configured from VAULT_ADDR, VAULT_NAMESPACE and either
// VAULT_TOKEN or VAULT_ROLE_ID with VAULT_SECRET_ID. The token needs:
//
//	path "secret/data/crypton/*" {
//	    capabilities = ["read"]
//	}
package hashicorp
