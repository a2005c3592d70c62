// Package clipboard reads source text from the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrEmpty indicates the clipboard held no usable text.
var ErrEmpty = errors.New("clipboard is empty")

// ReadText returns the clipboard contents, rejecting blank text.
func ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}
