package ui

import (
	"encoding/json"
	"fmt"
	"io"
)

// ErrInputClosed is returned by Ask when there is nothing left to read.
// It wraps io.EOF.
var ErrInputClosed = fmt.Errorf("input closed: %w", io.EOF)

// Severity classifies how a piece of inline text is rendered.
type Severity uint8

const (
	SeverityInfo    Severity = iota // plain
	SeveritySuccess                 // green: resolved / saved
	SeverityWarn                    // yellow: still typing, needs attention
	SeverityError                   // red: can't be saved
)

// StyledText pairs a plain string with a Severity. It marshals to JSON as
// the plain string.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is all terminal interaction of the contact commands. TerminalUI is the
// real one; RecordingUI captures output and serves scripted input in tests.
type UI interface {
	// Style returns t coloured by its Severity, or plain when colours are
	// off.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error prints a failure. It doesn't exit.
	Error(format string, args ...any)

	// Section prints a separator line around title.
	Section(title string)

	// KeyValue prints label/value rows with values aligned.
	KeyValue(rows [][2]string)

	// Table prints a bordered table. A nil header omits the header row.
	Table(headers []string, rows [][]string)

	// Spinner shows msg with an animation until the returned func is
	// called.
	Spinner(msg string) func()

	// Interpret prints, under the last input, what it was understood as.
	Interpret(value string)

	// Ask prints a "> " prompt and reads a line, repeating until validate
	// accepts it. A nil validate accepts anything. It returns
	// ErrInputClosed once the input has no more lines.
	Ask(validate func(string) error) (string, error)

	// Confirm asks a yes/no question. A closed input picks the default.
	Confirm(prompt string, defaultYes bool) bool

	// Indent returns a child UI one level deeper sharing the same input and
	// output.
	Indent() UI

	// Writer returns an io.Writer that indents every line at the UI's
	// current level.
	Writer() io.Writer
}
