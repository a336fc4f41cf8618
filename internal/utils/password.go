package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for stored credentials. Login volume here is
// a handful of back-office users, so the library default is plenty.
const bcryptCost = bcrypt.DefaultCost

// HashPassword produces the bcrypt hash stored on the users table.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
// It returns false for malformed hashes rather than surfacing the error;
// the login path treats every mismatch identically.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
