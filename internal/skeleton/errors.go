package skeleton

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrOutOfRange reports a frame, body or joint index outside the document.
var ErrOutOfRange = errors.New("index out of range")

// FormatError reports a skeleton file that does not follow the grammar.
type FormatError struct {
	// Line is the 1-based line number, or the line after the last one when
	// the stream ended early.
	Line int
	// Expected names the shape the parser was looking for.
	Expected string
	// Text is the offending line, truncated for display.
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("skeleton line %d: expected %s", e.Line, e.Expected)
	if e.Text != "" {
		msg += fmt.Sprintf(", got %q", e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err carries a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

const maxErrorText = 80

func clip(text string) string {
	if len(text) <= maxErrorText {
		return text
	}
	cut := maxErrorText
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
