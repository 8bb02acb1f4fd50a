package troubleshoot

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputSize bounds one line of user input. Commands are a number or a word.
const MaxInputSize = 256

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput rejects oversized or invalid UTF-8 input and strips control
// characters (ANSI escapes, NUL, BEL) so they never reach logs or the terminal.
func SanitizeInput(input string) (string, error) {
	if len(input) > MaxInputSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), MaxInputSize)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(input, isUnsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if isUnsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
