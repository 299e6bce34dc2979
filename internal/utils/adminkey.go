package utils

import "golang.org/x/crypto/bcrypt"

// HashAdminKey returns the bcrypt hash of the admin key using the given cost.
func HashAdminKey(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyAdminKey safely compares the stored bcrypt hash and a presented key.
func VerifyAdminKey(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
