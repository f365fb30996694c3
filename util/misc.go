package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	erand "golang.org/x/exp/rand"
)

func JsonHash(s interface{}) string {
	bs, _ := json.Marshal(s)
	hash := sha256.Sum256(bs)
	return hex.EncodeToString(hash[:])
}

func CopyIntSlice(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func CopyIntMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = CopyIntSlice(row)
	}
	return out
}

func CopyFloatSlice(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}

// NewSource returns a seeded random source. A zero seed is replaced by the current
// time so unseeded runs differ.
func NewSource(seed uint64) erand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return erand.NewSource(seed)
}
