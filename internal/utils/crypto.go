package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

var hashPepper = generatePepper()

func generatePepper() string {
	return uuid.New().String() + "-" + uuid.New().String()
}

// HashSHA256 is used to pseudonymize client addresses before they
// reach the error log. The pepper is process-local, so hashes are
// only comparable within one run.
func HashSHA256(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))

	mac := hmac.New(sha256.New, []byte(hashPepper))
	mac.Write([]byte(input))

	return hex.EncodeToString(mac.Sum(nil))
}
