package shortener

import (
	"fmt"
	"regexp"

	"github.com/jaevor/go-nanoid"
)

// codeAlphabet is the character set for generated short codes.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// DefaultCodeLength is the length of generated short codes.
const DefaultCodeLength = 6

// customCodePattern restricts caller-supplied codes to 4-12 safe characters.
var customCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{4,12}$`)

// CodeGenerator produces random short codes.
type CodeGenerator func() string

// NewCodeGenerator creates a nanoid-backed code generator.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}

	gen, err := nanoid.CustomASCII(codeAlphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}

	return CodeGenerator(gen), nil
}

// ValidCustomCode reports whether a caller-supplied short code is acceptable.
func ValidCustomCode(code string) bool {
	return customCodePattern.MatchString(code)
}
