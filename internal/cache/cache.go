package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a model name and prompt
func Key(model, prompt string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + prompt))
	return "patentscope:v1:" + hex.EncodeToString(hash[:])
}
