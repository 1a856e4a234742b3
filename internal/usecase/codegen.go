package usecase

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the set of symbols short codes are drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	DefaultCodeLength  = 6
	DefaultMaxAttempts = 10
	maxCodeLength      = 16
)

// CodeGenerator draws short codes uniformly from Alphabet.
// Uniqueness is not checked here; the registry rejects taken codes and the
// caller retries up to MaxAttempts times.
type CodeGenerator struct {
	length      int
	maxAttempts int
}

func NewCodeGenerator(length, maxAttempts int) *CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}
	if length > maxCodeLength {
		length = maxCodeLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &CodeGenerator{
		length:      length,
		maxAttempts: maxAttempts,
	}
}

func (g *CodeGenerator) Generate() (string, error) {
	const op = "usecase.CodeGenerator.Generate"

	code, err := gonanoid.Generate(Alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	return code, nil
}

func (g *CodeGenerator) MaxAttempts() int {
	return g.maxAttempts
}

// isShortCode reports whether s could have been produced by a CodeGenerator.
func isShortCode(s string) bool {
	if len(s) == 0 || len(s) > maxCodeLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}

	return true
}
