package passcheck

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

var (
	// ErrInvalidConfiguration means the options leave nothing to pick from.
	ErrInvalidConfiguration = errors.New("invalid generator configuration")
	// ErrCryptoUnavailable means the random source failed to produce bytes.
	ErrCryptoUnavailable = errors.New("secure random source unavailable")
)

const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	similarChars   = "il1Lo0O"
	ambiguousChars = "{}[]()/\\'\"`~,;:.<>"

	defaultGeneratedLength = 16
)

// MaxGeneratedLength is the longest password Generate produces.
const MaxGeneratedLength = 4096

// GeneratorOptions configures Generate. Length 0 selects 16.
type GeneratorOptions struct {
	Length                     int  `json:"length" mapstructure:"length"`
	IncludeUppercase           bool `json:"includeUppercase" mapstructure:"include_uppercase"`
	IncludeLowercase           bool `json:"includeLowercase" mapstructure:"include_lowercase"`
	IncludeNumbers             bool `json:"includeNumbers" mapstructure:"include_numbers"`
	IncludeSymbols             bool `json:"includeSymbols" mapstructure:"include_symbols"`
	ExcludeSimilarCharacters   bool `json:"excludeSimilarCharacters" mapstructure:"exclude_similar_characters"`
	ExcludeAmbiguousCharacters bool `json:"excludeAmbiguousCharacters" mapstructure:"exclude_ambiguous_characters"`
}

// DefaultGeneratorOptions enables every class at length 16.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:           defaultGeneratedLength,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
	}
}

// Generator produces passwords from a random byte source.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator reading from r, or crypto/rand when r is nil.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Generate creates a password with the default crypto/rand source.
func Generate(opts GeneratorOptions) (string, error) {
	return NewGenerator(nil).Generate(opts)
}

// Generate creates a random password. When the length allows, every enabled
// class contributes at least one character.
func (g *Generator) Generate(opts GeneratorOptions) (string, error) {
	length := opts.Length
	if length == 0 {
		length = defaultGeneratedLength
	}
	if length < 0 {
		return "", fmt.Errorf("%w: length must be positive, got %d", ErrInvalidConfiguration, length)
	}
	if length > MaxGeneratedLength {
		return "", fmt.Errorf("%w: length must not exceed %d, got %d", ErrInvalidConfiguration, MaxGeneratedLength, length)
	}

	classes := charClasses(opts)
	var charset string
	for _, c := range classes {
		charset += c
	}
	if charset == "" {
		return "", fmt.Errorf("%w: character pool is empty", ErrInvalidConfiguration)
	}

	pwd := make([]rune, length)
	pool := []rune(charset)

	// Shuffle positions
	positions := make([]int, length)
	for i := range positions {
		positions[i] = i
	}
	for i := len(positions) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return "", err
		}
		positions[i], positions[j] = positions[j], positions[i]
	}

	pos := 0
	for _, class := range classes {
		if pos >= length {
			break
		}
		set := []rune(class)
		n, err := g.intn(len(set))
		if err != nil {
			return "", err
		}
		pwd[positions[pos]] = set[n]
		pos++
	}

	for ; pos < length; pos++ {
		n, err := g.intn(len(pool))
		if err != nil {
			return "", err
		}
		pwd[positions[pos]] = pool[n]
	}

	return string(pwd), nil
}

func (g *Generator) intn(max int) (int, error) {
	n, err := rand.Int(g.rand, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCryptoUnavailable, err)
	}
	return int(n.Int64()), nil
}

// charClasses returns the filtered, non-empty character sets enabled by opts.
func charClasses(opts GeneratorOptions) []string {
	var sets []string
	add := func(enabled bool, set string) {
		if !enabled {
			return
		}
		set = strings.Map(func(r rune) rune {
			if opts.ExcludeSimilarCharacters && strings.ContainsRune(similarChars, r) {
				return -1
			}
			if opts.ExcludeAmbiguousCharacters && strings.ContainsRune(ambiguousChars, r) {
				return -1
			}
			return r
		}, set)
		if set != "" {
			sets = append(sets, set)
		}
	}

	add(opts.IncludeUppercase, upperChars)
	add(opts.IncludeLowercase, lowerChars)
	add(opts.IncludeNumbers, numberChars)
	add(opts.IncludeSymbols, symbolChars)
	return sets
}
