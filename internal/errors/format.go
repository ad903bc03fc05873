package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiWhite = "\033[37m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// paint wraps text in the given escape sequences when colors are enabled.
func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

const detailWidth = 70

// Format returns the error formatted for terminal display.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(paint("ERROR ", ansiRed, ansiBold))
		b.WriteString(paint(e.Code+": ", ansiWhite, ansiBold))
	} else {
		b.WriteString(paint("ERROR: ", ansiRed, ansiBold))
	}
	b.WriteString(paint(e.Message, ansiWhite))
	b.WriteString("\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", paint(e.Location.String(), ansiCyan))
		e.writeContext(&b)
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, detailWidth) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint("Hint: ", ansiCyan), e.Suggestion)
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n", paint("Cause: ", ansiGray), e.Wrapped.Error())
	}

	return b.String()
}

// writeContext prints the source lines around the location, marking the
// failing line and, when known, the column.
func (e *Error) writeContext(b *strings.Builder) {
	if len(e.Context) == 0 {
		return
	}
	first := e.Location.Line - len(e.Context)/2
	bar := paint(" │ ", ansiGray)
	for i, line := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", paint("→ ", ansiRed), n, bar, line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n",
				paint("│ ", ansiGray), strings.Repeat(" ", e.Location.Column-1), paint("^", ansiRed))
		}
	}
	b.WriteString("\n")
}

// FormatCompact returns a single-line form: location, code, message and
// the first line of the detail.
func (e *Error) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	if e.Detail != "" {
		first, _, _ := strings.Cut(e.Detail, "\n")
		parts = append(parts, first)
	}
	return strings.Join(parts, ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// FormatJSON returns the error as a JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes at word
// boundaries. A single word longer than width gets its own line.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Fprint writes the formatted form of err to w. Framework sentinels found
// in a plain error's chain are mapped to their codes first.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	var e *Error
	switch {
	case stderrors.As(err, &e):
	case Classify(err) != CodeInternal:
		e = FromError(err, "")
	default:
		fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", ansiRed, ansiBold), err.Error())
		return
	}
	fmt.Fprint(w, e.Format())
}

// FprintCompact writes the single-line form of err to w.
func FprintCompact(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FromError(err, "").FormatCompact())
}

// FprintJSON writes err to w as one JSON object per line. Plain errors
// are reported under their classified code with the error as the cause.
func FprintJSON(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FromError(err, "").FormatJSON())
}
