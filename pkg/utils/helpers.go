package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex generates a random hexadecimal string encoding n random bytes
func RandomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewClientID returns an identifier for a browser that did not bring one
func NewClientID() string {
	return "c-" + RandomHex(8)
}
