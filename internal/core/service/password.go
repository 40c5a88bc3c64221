package service

import "golang.org/x/crypto/bcrypt"

// dummyHash is a valid bcrypt hash compared against when the username does not
// exist, so a failed login costs one bcrypt comparison whether or not the
// account is real. The comparison result is always discarded.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword produces a salted one-way bcrypt hash of the plaintext.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash. An empty
// hash (delegated-path account with no usable credential) never verifies.
func VerifyPassword(plaintext, hash string) bool {
	if hash == "" {
		// Burn a comparison anyway so password-less accounts are not
		// distinguishable from wrong-password attempts by timing.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plaintext))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// burnVerification performs one bcrypt comparison for unknown usernames.
func burnVerification(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plaintext))
}
