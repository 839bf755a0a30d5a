package impl

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Stored format: base64(salt) + "$" + base64(pbkdf2-sha256(password, salt)).
const (
	pbkdf2Iterations = 100_000
	pbkdf2KeyLen     = 32
	saltLen          = 16
	hashSeparator    = "$"
)

type PasswordServiceImpl struct {
	iterations int
	keyLen     int
	saltLen    int
}

func NewPasswordServicePBKDF2() *PasswordServiceImpl {
	return &PasswordServiceImpl{
		iterations: pbkdf2Iterations,
		keyLen:     pbkdf2KeyLen,
		saltLen:    saltLen,
	}
}

func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return p.hashWithSalt(password, salt), nil
}

func (p *PasswordServiceImpl) hashWithSalt(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, p.iterations, p.keyLen, sha256.New)
	return base64.StdEncoding.EncodeToString(salt) + hashSeparator + base64.StdEncoding.EncodeToString(key)
}

// Verify recomputes with the stored salt and compares in constant time.
// Malformed stored values return false, never an error: absence of a match
// must be indistinguishable from a broken record.
func (p *PasswordServiceImpl) Verify(stored, candidate string) bool {
	saltB64, hashB64, ok := strings.Cut(stored, hashSeparator)
	if !ok {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(hashB64)
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(candidate), salt, p.iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
