package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateGameID returns a random 128-bit hex id for a game session.
func GenerateGameID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)
}
