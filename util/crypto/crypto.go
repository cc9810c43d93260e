// Package crypto provides salted password hashing and verification.
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/todoapp/todo-api/util/random"

	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordCost is shared by hashing and verification; changing it only
	// affects hashes created afterwards.
	PasswordCost = 10
	saltLength   = 22
)

// NewSalt returns a fresh per-user salt.
func NewSalt() string {
	return random.Seq(saltLength)
}

// HashPassword hashes password under salt. The password is first keyed with
// the salt through HMAC-SHA256 so inputs longer than bcrypt's 72 byte limit
// still hash in full.
func HashPassword(password, salt string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(saltedKey(password, salt), PasswordCost)
	return string(hash), err
}

// CheckPassword reports whether password, combined with salt, matches hash.
func CheckPassword(hash, password, salt string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), saltedKey(password, salt))
	return err == nil
}

func saltedKey(password, salt string) []byte {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	sum := mac.Sum(nil)
	key := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(key, sum)
	return key
}
