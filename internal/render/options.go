package render

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// KeyCase selects how mapping keys are rewritten on output.
type KeyCase string

const (
	// KeyCaseNone emits keys exactly as they appear in the input
	KeyCaseNone KeyCase = "none"

	// KeyCaseSnake emits snake_case keys
	KeyCaseSnake KeyCase = "snake"

	// KeyCaseCamel emits CamelCase keys
	KeyCaseCamel KeyCase = "camel"

	// KeyCaseLowerCamel emits lowerCamelCase keys
	KeyCaseLowerCamel KeyCase = "lower-camel"

	// KeyCaseKebab emits kebab-case keys
	KeyCaseKebab KeyCase = "kebab"
)

// ParseKeyCase parses a key case name. The empty string means KeyCaseNone.
func ParseKeyCase(s string) (KeyCase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return KeyCaseNone, nil
	case "snake":
		return KeyCaseSnake, nil
	case "camel":
		return KeyCaseCamel, nil
	case "lower-camel":
		return KeyCaseLowerCamel, nil
	case "kebab":
		return KeyCaseKebab, nil
	default:
		return "", fmt.Errorf("invalid key case: %q (expected none, snake, camel, lower-camel, or kebab)", s)
	}
}

// String returns the name of the key case.
func (k KeyCase) String() string {
	return string(k)
}

// Apply rewrites key according to k.
func (k KeyCase) Apply(key string) string {
	switch k {
	case KeyCaseSnake:
		return strcase.ToSnake(key)
	case KeyCaseCamel:
		return strcase.ToCamel(key)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		return key
	}
}

// Options controls the top-level document shape.
type Options struct {
	// DocumentStart prepends a "---" marker line.
	DocumentStart bool
	// KeyCase rewrites mapping keys. The zero value leaves them untouched.
	KeyCase KeyCase
}
