package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "NFA_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans user input by enforcing size limits,
// validating UTF-8, and stripping dangerous control characters.
// Newlines and tabs are preserved.
func SanitizeInput(input string) (string, error) {
	return sanitize(input, isSafeControl)
}

// SanitizeLine is SanitizeInput for single-line answers (words, symbols, state lists):
// every control character is removed and the result is trimmed.
func SanitizeLine(input string) (string, error) {
	clean, err := sanitize(input, func(rune) bool { return false })
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(clean), nil
}

func sanitize(input string, keep func(rune) bool) (string, error) {
	// We explicitly reject rather than truncate so a word is never silently shortened.
	limit := MaxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Removing ESC, NULL, BEL, etc. prevents log poisoning and terminal corruption.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !keep(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// MaxInputSize returns the byte limit, honoring NFA_MAX_INPUT_SIZE.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
