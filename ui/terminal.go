package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit      = "  "
	sectionWidth    = 50
	promptPrefix    = "> "
	interpretPrefix = "→ "
)

// TerminalUI writes to out and reads from in. Colours and the spinner are
// only used when out is a terminal.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	in          *bufio.Reader
	au          aurora.Aurora
	interactive bool
}

// NewTerminalUI returns a TerminalUI on stdout and stdin.
func NewTerminalUI() *TerminalUI {
	return NewTerminalUIWithIO(os.Stdout, os.Stdin)
}

// NewTerminalUIWithIO returns a TerminalUI on the given streams. Colours are
// enabled when out is an *os.File attached to a terminal.
func NewTerminalUIWithIO(out io.Writer, in io.Reader) *TerminalUI {
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &TerminalUI{
		out:         out,
		in:          bufio.NewReader(in),
		au:          aurora.NewAurora(interactive),
		interactive: interactive,
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

func (u *TerminalUI) println(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	}
	return t.Text
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.println(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.println(u.Style(StyledText{fmt.Sprintf(format, args...), SeveritySuccess}))
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.println(u.Style(StyledText{fmt.Sprintf(format, args...), SeverityWarn}))
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.println(u.Style(StyledText{fmt.Sprintf(format, args...), SeverityError}))
}

// Section prints
//
//	======== Add contact ========
//
// padded to sectionWidth with a blank line on both sides.
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - runewidth.StringWidth(titled)
	if bars < 6 {
		bars = 6
	}
	line := strings.Repeat("=", bars/2) + titled + strings.Repeat("=", bars-bars/2)
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), line)
}

func (u *TerminalUI) Interpret(value string) {
	u.println(indentUnit + interpretPrefix + u.au.Cyan(value).String())
}

// Ask loops until validate accepts the line; rejections are printed in red
// and the prompt is shown again. A last line without newline still counts;
// after it, or on any read error, Ask gives up with ErrInputClosed.
func (u *TerminalUI) Ask(validate func(string) error) (string, error) {
	for {
		fmt.Fprintf(u.out, "%s%s", u.prefix(), promptPrefix)
		text, readErr := u.in.ReadString('\n')
		input := strings.TrimRight(text, "\r\n")
		if readErr != nil && input == "" {
			fmt.Fprintln(u.out)
			return "", ErrInputClosed
		}
		if validate == nil {
			return input, nil
		}
		err := validate(input)
		if err == nil {
			return input, nil
		}
		u.Error("%s", err)
		if readErr != nil {
			return "", ErrInputClosed
		}
	}
}

func (u *TerminalUI) Confirm(prompt string, defaultYes bool) bool {
	options := "[y/N]"
	if defaultYes {
		options = "[Y/n]"
	}
	u.Info("%s %s", prompt, options)
	answer, err := u.Ask(func(s string) error {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "y", "yes", "n", "no":
			return nil
		}
		return fmt.Errorf("please enter y or n")
	})
	answer = strings.ToLower(strings.TrimSpace(answer))
	if err != nil || answer == "" {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	width := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > width {
			width = w
		}
	}
	for _, r := range rows {
		u.println(runewidth.FillRight(r[0], width) + "  " + r[1])
	}
}

func cellWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func padCell(s string, w int) string {
	if visible := cellWidth(s); visible < w {
		return s + strings.Repeat(" ", w-visible)
	}
	return s
}

// Table draws rows inside a box. Widths are measured without ANSI codes so
// cells coloured with Style still line up.
func (u *TerminalUI) Table(headers []string, rows [][]string) {
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	if ncols == 0 {
		return
	}

	widths := make([]int, ncols)
	for _, r := range append([][]string{headers}, rows...) {
		for i := 0; i < len(r) && i < ncols; i++ {
			if w := cellWidth(r[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	border := func(s string) string { return borderStyle.Render(s) }
	dashes := make([]string, ncols)
	for i, w := range widths {
		dashes[i] = strings.Repeat("─", w+2)
	}
	row := func(cells []string) string {
		parts := make([]string, ncols)
		for i := range parts {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + padCell(cell, widths[i]) + " "
		}
		return border("│") + strings.Join(parts, border("│")) + border("│")
	}

	u.println(border("┌" + strings.Join(dashes, "┬") + "┐"))
	if len(headers) > 0 {
		u.println(row(headers))
		u.println(border("├" + strings.Join(dashes, "┼") + "┤"))
	}
	for _, r := range rows {
		u.println(row(r))
	}
	u.println(border("└" + strings.Join(dashes, "┴") + "┘"))
}

// Spinner animates while a name is being looked up. Off a terminal it
// prints msg once and the stop func does nothing.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.interactive {
		u.println(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Prefix = u.prefix()
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// the spinner leaves the cursor on its own line
		fmt.Fprintln(u.out)
	}
}

func (u *TerminalUI) Indent() UI {
	child := *u
	child.indentLevel++
	return &child
}

func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
