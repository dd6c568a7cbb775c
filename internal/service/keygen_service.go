package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UniqueKeyGenerator implements ports.KeyGenerator. Wallet addresses
// come from UUIDs and API keys from 32 bytes of crypto/rand entropy;
// both are unique within the process lifetime.
type UniqueKeyGenerator struct{}

// NewUniqueKeyGenerator creates a new UniqueKeyGenerator.
func NewUniqueKeyGenerator() *UniqueKeyGenerator {
	return &UniqueKeyGenerator{}
}

// NewAddress returns a fresh opaque wallet address.
func (g *UniqueKeyGenerator) NewAddress() (string, error) {
	return strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

// NewAPIKey returns a fresh opaque API key.
func (g *UniqueKeyGenerator) NewAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating api key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
