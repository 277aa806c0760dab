package uid

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
)

// GenerateTokenID generates a random id for a signed session token.
func GenerateTokenID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "failed to generate token id")
	}
	return hex.EncodeToString(bytes), nil
}
