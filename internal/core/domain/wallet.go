package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrPoolExhausted = errors.New("wallet pool exhausted")

// PoolAddresses derives the fixed wallet address pool from a seed. Addresses
// are deterministic for a given seed and size, so every process restart sees
// the same pool in the same order.
func PoolAddresses(seed string, size int) []string {
	addrs := make([]string, size)
	for i := range addrs {
		sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d", seed, i))
		addrs[i] = "0x" + hex.EncodeToString(sum[:20])
	}
	return addrs
}
