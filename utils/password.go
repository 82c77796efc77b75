package utils

import "golang.org/x/crypto/bcrypt"

// DefaultAdminPassword is only used to seed the very first admin
// account on an empty database. Operators are expected to change it
// immediately.
const DefaultAdminPassword = "admin"

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the
// stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
