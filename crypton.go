package crypton

import (
	"context"
	"sync/atomic"
)

// Crypton is a configured handle over Engine. The stored configuration can be
// replaced at any time with Init; each operation works on a snapshot taken
// when it is called, so a concurrent Init never affects a running operation.
//
// A Crypton is safe for concurrent use. Use New to create one; a zero Crypton
// behaves like New(Options{}).
type Crypton struct {
	engine *Engine
	config atomic.Pointer[Config]
}

// New creates a handle whose configuration is overrides merged onto
// DefaultConfig.
func New(overrides Options, opts ...Option) (*Crypton, error) {
	engine, err := NewEngine(opts...)
	if err != nil {
		return nil, err
	}

	c := &Crypton{engine: engine}
	c.Init(overrides)
	return c, nil
}

// Init replaces the stored configuration with overrides merged onto
// DefaultConfig. Previous overrides are discarded.
func (c *Crypton) Init(overrides Options) {
	cfg := Merge(overrides, DefaultConfig())
	c.config.Store(&cfg)
}

// Config returns a copy of the stored configuration, or DefaultConfig when
// nothing was stored yet.
func (c *Crypton) Config() Config {
	cfg := c.config.Load()
	if cfg == nil {
		return DefaultConfig()
	}
	return *cfg
}

// Engine returns the underlying engine.
func (c *Crypton) Engine() *Engine {
	if c.engine == nil {
		return &Engine{}
	}
	return c.engine
}

func (c *Crypton) cipherConfig(overrides []CipherOptions) CipherConfig {
	return MergeCipher(firstCipher(overrides), c.Config().Crypto)
}

// Cipher encrypts text. Only the first override, if any, is used.
func (c *Crypton) Cipher(ctx context.Context, text string, overrides ...CipherOptions) (string, error) {
	return c.Engine().Cipher(ctx, c.cipherConfig(overrides), text)
}

// Decipher decrypts a string produced by Cipher with the same settings.
func (c *Crypton) Decipher(ctx context.Context, text string, overrides ...CipherOptions) (string, error) {
	return c.Engine().Decipher(ctx, c.cipherConfig(overrides), text)
}

// Compare reports whether text ciphers to ciphered. With force, text may
// itself be a ciphered string; it is deciphered first when that succeeds.
func (c *Crypton) Compare(ctx context.Context, text, ciphered string, force bool, overrides ...CipherOptions) (bool, error) {
	return c.Engine().Compare(ctx, c.cipherConfig(overrides), text, ciphered, force)
}

// Crypt returns a bcrypt hash of text.
func (c *Crypton) Crypt(ctx context.Context, text string, overrides ...PasswordOptions) (string, error) {
	cfg := MergePassword(firstPassword(overrides), c.Config().Bcrypt)
	return c.Engine().Crypt(ctx, cfg, text)
}

// Verify reports whether text matches hash.
func (c *Crypton) Verify(ctx context.Context, text, hash string) (bool, error) {
	return c.Engine().Verify(ctx, text, hash)
}

// RandomBytes returns length random bytes, hex encoded unless an output
// encoding is given.
func (c *Crypton) RandomBytes(ctx context.Context, length int, outputEncoding ...string) (string, error) {
	return c.Engine().RandomBytes(ctx, length, first(outputEncoding))
}

// Digest returns the MD5 sum of data, hex encoded unless an output encoding is
// given.
func (c *Crypton) Digest(ctx context.Context, data string, outputEncoding ...string) (string, error) {
	return c.Engine().Digest(ctx, data, first(outputEncoding))
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
