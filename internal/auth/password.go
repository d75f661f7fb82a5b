package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the seeded local admin's password with bcrypt
// at DefaultCost.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword verifies a candidate password against a stored bcrypt
// hash during the password-fallback login.
func CheckPassword(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
