package manifest

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// modelFilePattern matches lower-cased names carrying a recognized model extension.
// The leading "?" keeps dot-files such as ".tflite" out: they have no extension.
const modelFilePattern = "?*.{tfl,tflite}"

// IsModelFile reports whether the file name has a recognized model extension (case-insensitive).
func IsModelFile(name string) bool {
	matched, err := doublestar.Match(modelFilePattern, strings.ToLower(name))

	return err == nil && matched
}
