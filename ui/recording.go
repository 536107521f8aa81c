package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry is one recorded UI call.
type Entry struct {
	Method string
	Value  string
}

// recorderState is shared by a RecordingUI and the children returned by
// Indent, so nested prompts consume the same scripted inputs.
type recorderState struct {
	entries []Entry
	inputs  []string
	next    int
	buf     bytes.Buffer
}

// RecordingUI is the UI used in tests. Output calls are recorded as
// entries; Ask and Confirm return the scripted inputs in order. Once the
// script runs out Ask returns ErrInputClosed and Confirm its default, like
// a closed terminal. An input failing validation panics, since a test
// script has no user to correct it.
type RecordingUI struct {
	state *recorderState
	level int
}

func NewRecordingUI(scriptedInputs ...string) *RecordingUI {
	return &RecordingUI{state: &recorderState{inputs: scriptedInputs}}
}

func (r *RecordingUI) record(method, value string) {
	r.state.entries = append(r.state.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) nextInput() (string, bool) {
	if r.state.next >= len(r.state.inputs) {
		return "", false
	}
	input := r.state.inputs[r.state.next]
	r.state.next++
	return input, true
}

func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

func (r *RecordingUI) Interpret(value string) {
	r.record("Interpret", value)
}

// KeyValue records each row as "label: value".
func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

// Table records each row with its cells joined by " | ". Headers are not
// recorded.
func (r *RecordingUI) Table(headers []string, rows [][]string) {
	for _, row := range rows {
		r.record("Table", strings.Join(row, " | "))
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Ask(validate func(string) error) (string, error) {
	input, ok := r.nextInput()
	if !ok {
		r.record("Ask", "<closed>")
		return "", ErrInputClosed
	}
	r.record("Ask", input)
	if validate != nil {
		if err := validate(input); err != nil {
			panic(fmt.Sprintf("RecordingUI: scripted input %q rejected: %s", input, err))
		}
	}
	return input, nil
}

// Confirm accepts "y"/"yes" and "n"/"no"; an empty or missing input picks
// the default.
func (r *RecordingUI) Confirm(prompt string, defaultYes bool) bool {
	r.record("Confirm", prompt)
	input, _ := r.nextInput()
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	}
	return false
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{state: r.state, level: r.level + 1}
}

func (r *RecordingUI) Writer() io.Writer {
	return &r.state.buf
}

// Entries returns every recorded call in order.
func (r *RecordingUI) Entries() []Entry {
	return r.state.entries
}

// Messages returns the values recorded for method, e.g. "Error".
func (r *RecordingUI) Messages(method string) []string {
	var out []string
	for _, e := range r.state.entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// HasMessage reports whether any recorded value contains substr, ignoring
// case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.state.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output returns everything written through Writer.
func (r *RecordingUI) Output() string {
	return r.state.buf.String()
}
