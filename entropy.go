package passcheck

import (
	"math"
	"unicode/utf8"
)

// Nominal alphabet sizes per character class.
const (
	lowerPool  = 26
	upperPool  = 26
	numberPool = 10
	symbolPool = 33 // common printable symbols
)

// entropyCorrection is an empirical factor applied to the pool-size estimate.
const entropyCorrection = 1.045

// EntropyResult is an approximate entropy estimate.
type EntropyResult struct {
	Entropy  float64           `json:"entropy"`
	PoolSize int               `json:"poolSize"`
	Length   int               `json:"length"`
	Contains CharacterPresence `json:"contains"`
}

// CalculateEntropy computes length * log2(poolSize) * 1.045 bits, rounded to
// two decimals, where the pool is the sum of the nominal sizes of the classes
// present in the password.
func CalculateEntropy(password string) EntropyResult {
	presence, _ := Classify(password)
	length := utf8.RuneCountInString(password)

	if length == 0 {
		return EntropyResult{Contains: presence}
	}

	pool := poolSize(presence)
	bits := float64(length) * math.Log2(float64(pool)) * entropyCorrection

	return EntropyResult{
		Entropy:  math.Round(bits*100) / 100,
		PoolSize: pool,
		Length:   length,
		Contains: presence,
	}
}

func poolSize(p CharacterPresence) int {
	pool := 0
	if p.Lowercase {
		pool += lowerPool
	}
	if p.Uppercase {
		pool += upperPool
	}
	if p.Number {
		pool += numberPool
	}
	if p.Symbol {
		pool += symbolPool
	}
	return pool
}
