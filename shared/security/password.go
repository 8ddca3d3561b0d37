package security

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword returns the argon2id encoded hash of password. Every call uses a fresh salt.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()

	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether password matches the encoded hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
