package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash of an account password at the configured
// cost. The hash is what user records store; the plain text is never kept.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash,
// in constant time with respect to the hash contents.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
