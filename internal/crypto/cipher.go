package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/md5"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/chacha20"
)

type mode int

const (
	modeCBC mode = iota
	modeCTR
	modeCFB
	modeOFB
	modeChaCha20
)

type algorithm struct {
	keyLen   int
	ivLen    int
	mode     mode
	newBlock func(key []byte) (cipher.Block, error)
}

var algorithms = map[string]algorithm{
	"aes-128-cbc":  {keyLen: 16, ivLen: aes.BlockSize, mode: modeCBC, newBlock: aes.NewCipher},
	"aes-192-cbc":  {keyLen: 24, ivLen: aes.BlockSize, mode: modeCBC, newBlock: aes.NewCipher},
	"aes-256-cbc":  {keyLen: 32, ivLen: aes.BlockSize, mode: modeCBC, newBlock: aes.NewCipher},
	"aes-128-ctr":  {keyLen: 16, ivLen: aes.BlockSize, mode: modeCTR, newBlock: aes.NewCipher},
	"aes-192-ctr":  {keyLen: 24, ivLen: aes.BlockSize, mode: modeCTR, newBlock: aes.NewCipher},
	"aes-256-ctr":  {keyLen: 32, ivLen: aes.BlockSize, mode: modeCTR, newBlock: aes.NewCipher},
	"aes-128-cfb":  {keyLen: 16, ivLen: aes.BlockSize, mode: modeCFB, newBlock: aes.NewCipher},
	"aes-192-cfb":  {keyLen: 24, ivLen: aes.BlockSize, mode: modeCFB, newBlock: aes.NewCipher},
	"aes-256-cfb":  {keyLen: 32, ivLen: aes.BlockSize, mode: modeCFB, newBlock: aes.NewCipher},
	"aes-128-ofb":  {keyLen: 16, ivLen: aes.BlockSize, mode: modeOFB, newBlock: aes.NewCipher},
	"aes-192-ofb":  {keyLen: 24, ivLen: aes.BlockSize, mode: modeOFB, newBlock: aes.NewCipher},
	"aes-256-ofb":  {keyLen: 32, ivLen: aes.BlockSize, mode: modeOFB, newBlock: aes.NewCipher},
	"des-ede3-cbc": {keyLen: 24, ivLen: des.BlockSize, mode: modeCBC, newBlock: des.NewTripleDESCipher},
	"chacha20":     {keyLen: chacha20.KeySize, ivLen: chacha20.NonceSize, mode: modeChaCha20},
}

var algorithmAliases = map[string]string{
	"aes128": "aes-128-cbc",
	"aes192": "aes-192-cbc",
	"aes256": "aes-256-cbc",
	"des3":   "des-ede3-cbc",
}

// NormalizeAlgorithm resolves an algorithm name case-insensitively, following aliases.
func NormalizeAlgorithm(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := algorithmAliases[key]; ok {
		key = alias
	}
	if _, ok := algorithms[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return key, nil
}

// SupportedAlgorithms returns the canonical names of every available algorithm.
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (algorithm, error) {
	canonical, err := NormalizeAlgorithm(name)
	if err != nil {
		return algorithm{}, err
	}
	return algorithms[canonical], nil
}

// DeriveKeyIV stretches a passphrase into key and IV material the way OpenSSL's
// EVP_BytesToKey does with MD5, one iteration and no salt. The output is fully
// determined by the passphrase, so equal plaintexts cipher to equal ciphertexts.
func DeriveKeyIV(passphrase []byte, keyLen, ivLen int) ([]byte, []byte) {
	var (
		material []byte
		prev     []byte
	)
	for len(material) < keyLen+ivLen {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		prev = h.Sum(nil)
		material = append(material, prev...)
	}
	return material[:keyLen], material[keyLen : keyLen+ivLen]
}

// Encrypt ciphers plaintext with the named algorithm under a passphrase-derived key.
func Encrypt(algorithmName string, passphrase, plaintext []byte) ([]byte, error) {
	alg, err := lookup(algorithmName)
	if err != nil {
		return nil, err
	}
	key, iv := DeriveKeyIV(passphrase, alg.keyLen, alg.ivLen)

	switch alg.mode {
	case modeCBC:
		block, err := alg.newBlock(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create block cipher: %w", err)
		}
		padded := pad(plaintext, block.BlockSize())
		out := make([]byte, len(padded))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
		return out, nil
	case modeCFB:
		block, err := alg.newBlock(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create block cipher: %w", err)
		}
		return xorStream(cipher.NewCFBEncrypter(block, iv), plaintext), nil
	default:
		stream, err := newStream(alg, key, iv)
		if err != nil {
			return nil, err
		}
		return xorStream(stream, plaintext), nil
	}
}

// Decrypt reverses Encrypt. Mismatched keys on block modes usually surface as
// ErrBadDecrypt; stream modes cannot detect a mismatch and return garbage.
func Decrypt(algorithmName string, passphrase, ciphertext []byte) ([]byte, error) {
	alg, err := lookup(algorithmName)
	if err != nil {
		return nil, err
	}
	key, iv := DeriveKeyIV(passphrase, alg.keyLen, alg.ivLen)

	switch alg.mode {
	case modeCBC:
		block, err := alg.newBlock(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create block cipher: %w", err)
		}
		size := block.BlockSize()
		if len(ciphertext) == 0 || len(ciphertext)%size != 0 {
			return nil, fmt.Errorf("%w: length %d is not a multiple of the block size %d",
				ErrInvalidCiphertext, len(ciphertext), size)
		}
		out := make([]byte, len(ciphertext))
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
		return unpad(out, size)
	case modeCFB:
		block, err := alg.newBlock(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create block cipher: %w", err)
		}
		return xorStream(cipher.NewCFBDecrypter(block, iv), ciphertext), nil
	default:
		stream, err := newStream(alg, key, iv)
		if err != nil {
			return nil, err
		}
		return xorStream(stream, ciphertext), nil
	}
}

func newStream(alg algorithm, key, iv []byte) (cipher.Stream, error) {
	switch alg.mode {
	case modeCTR, modeOFB:
		block, err := alg.newBlock(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create block cipher: %w", err)
		}
		if alg.mode == modeCTR {
			return cipher.NewCTR(block, iv), nil
		}
		return cipher.NewOFB(block, iv), nil
	case modeChaCha20:
		stream, err := chacha20.NewUnauthenticatedCipher(key, iv)
		if err != nil {
			return nil, fmt.Errorf("failed to create chacha20 cipher: %w", err)
		}
		return stream, nil
	}
	return nil, fmt.Errorf("%w: mode %d", ErrUnsupportedAlgorithm, alg.mode)
}

func xorStream(stream cipher.Stream, src []byte) []byte {
	out := make([]byte, len(src))
	stream.XORKeyStream(out, src)
	return out
}

func pad(source []byte, blockSize int) []byte {
	paddingLength := blockSize - len(source)%blockSize
	padding := bytes.Repeat([]byte{byte(paddingLength)}, paddingLength)
	return append(append(make([]byte, 0, len(source)+paddingLength), source...), padding...)
}

func unpad(source []byte, blockSize int) ([]byte, error) {
	length := len(source)
	paddingLength := int(source[length-1])
	if paddingLength == 0 || paddingLength > blockSize || paddingLength > length {
		return nil, ErrBadDecrypt
	}
	for _, b := range source[length-paddingLength:] {
		if int(b) != paddingLength {
			return nil, ErrBadDecrypt
		}
	}
	return source[:length-paddingLength], nil
}
