package utils

import "golang.org/x/crypto/bcrypt"

// credentialCost is the bcrypt work factor applied to newly stored
// credentials. Existing hashes keep the cost they were created with.
const credentialCost = bcrypt.DefaultCost

// HashPassword derives the bcrypt hash stored for a user credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), credentialCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
