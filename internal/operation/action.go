package operation

// Action identifies one of the facade operations. It doubles as the error kind
// reported when that operation fails.
type Action int8

const (
	Unknown Action = iota
	Cipher
	Decipher
	Compare
	Encrypt
	Verify
	RandomBytes
	Digest
)

var names = map[Action]string{
	Unknown:     "unknown",
	Cipher:      "cipher",
	Decipher:    "decipher",
	Compare:     "compare",
	Encrypt:     "encrypt",
	Verify:      "verify",
	RandomBytes: "random_bytes",
	Digest:      "digest",
}

var defaultMessages = map[Action]string{
	Cipher:      "Error while ciphering text",
	Decipher:    "Error while deciphering text",
	Compare:     "Error while comparing ciphered text",
	Encrypt:     "Error while encrypting text",
	Verify:      "Error while verifying crypted text",
	RandomBytes: "Error while generating random bytes",
	Digest:      "Error while generating md5 hash",
}

var errorNames = map[Action]string{
	Cipher:      "CipherCryptonError",
	Decipher:    "DecipherCryptonError",
	Compare:     "CompareCryptonError",
	Encrypt:     "EncryptCryptonError",
	Verify:      "VerifyCryptonError",
	RandomBytes: "RandomBytesCryptonError",
	Digest:      "Md5CryptonError",
}

func (a Action) String() string {
	if str, ok := names[a]; ok {
		return str
	}
	return "unknown"
}

// DefaultMessage is the message used when a failure's cause carries none.
func (a Action) DefaultMessage() string {
	if msg, ok := defaultMessages[a]; ok {
		return msg
	}
	return "Error while running crypton operation"
}

// ErrorName is the stable name of the error kind raised by the action.
func (a Action) ErrorName() string {
	if name, ok := errorNames[a]; ok {
		return name
	}
	return "CryptonError"
}

// All lists every concrete action in declaration order.
func All() []Action {
	return []Action{Cipher, Decipher, Compare, Encrypt, Verify, RandomBytes, Digest}
}
