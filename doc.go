// Package crypton is a small facade over reversible encryption, bcrypt
// password hashing, random bytes and MD5 digests.
//
// # Configuration
//
// A Crypton holds a Config built from DefaultConfig and the Options given to
// New or Init. Every operation also accepts a per-call override; fields left
// at their zero value fall through to the stored configuration.
//
//	c, err := crypton.New(crypton.Options{
//	    Crypto: crypton.CipherOptions{SecretKey: key, OutputEncoding: "base64"},
//	    Bcrypt: crypton.PasswordOptions{SaltRounds: 12},
//	})
//
//	ciphered, err := c.Cipher(ctx, "example")
//	plain, err := c.Decipher(ctx, ciphered)
//	ok, err := c.Compare(ctx, "example", ciphered, false)
//
//	hash, err := c.Crypt(ctx, "password")
//	ok, err = c.Verify(ctx, "password", hash)
//
// Ciphering is deterministic: the key and IV are derived from the secret key
// without a salt, so equal inputs give equal outputs. This is what Compare
// relies on. It also means Cipher is not suitable where ciphertexts must not
// reveal equality.
//
// LoadOptions reads overrides from crypton.yaml, .env files and CRYPTON_*
// environment variables, and can resolve the secret key from HashiCorp Vault
// or AWS Secrets Manager (see providers/secrets).
//
// # Errors
//
// Every failed operation returns an *Error. Use errors.Is with ErrCipher,
// ErrDecipher, ErrCompare, ErrEncrypt, ErrVerify, ErrRandomBytes or ErrDigest
// to test the kind, and IsInputError to tell bad arguments from primitive
// failures.
package crypton
