package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Divider closes every command output block
var Divider = strings.Repeat("=", 65)

// Printer writes operator-facing messages to one stream
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer on w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Stdout is the printer used by the package-level helpers
var Stdout = NewPrinter(os.Stdout)

// Writer returns the underlying stream
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Println writes an uncolored line
func (p *Printer) Println(message string) {
	fmt.Fprintln(p.w, message)
}

// Prompt writes text without a trailing newline
func (p *Printer) Prompt(message string) {
	fmt.Fprint(p.w, message)
}

// Banner writes the start-up title
func (p *Printer) Banner(title string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(p.w, "\n=== %s ===\n\n", title)
}

// Success displays a success message
func (p *Printer) Success(message string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprintf(p.w, "✓ %s\n", message)
}

// Error displays an error message
func (p *Printer) Error(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintln(p.w, message)
}

// Warning displays a warning message
func (p *Printer) Warning(message string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintln(p.w, message)
}

// Info displays an info message
func (p *Printer) Info(message string) {
	blue := color.New(color.FgBlue)
	blue.Fprintln(p.w, message)
}

// CommandOutput prints one request's result between the output header and the divider
func (p *Printer) CommandOutput(output string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintln(p.w, "\n=== Command Output ===")
	fmt.Fprintf(p.w, "%s\n\n%s\n\n", output, Divider)
}

// ShowSuccess displays a success message on stdout
func ShowSuccess(message string) {
	Stdout.Success(message)
}

// ShowError displays an error message on stdout
func ShowError(message string) {
	Stdout.Error(message)
}

// ShowWarning displays a warning message on stdout
func ShowWarning(message string) {
	Stdout.Warning(message)
}

// ShowInfo displays an info message on stdout
func ShowInfo(message string) {
	Stdout.Info(message)
}
