package crypto

import "crypto/md5"

// MD5 returns the MD5 digest of data. It is a fast fingerprint and must not be
// used for passwords.
func MD5(data []byte) []byte {
	sum := md5.Sum(data)
	return sum[:]
}
