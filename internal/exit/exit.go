package exit

import (
	"fmt"
	"io"
	"os"
)

// Process exit codes.
const (
	CodeMatches   = 0
	CodeNoMatches = 1
	CodeError     = 2
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the message to the configured output. Empty messages are skipped.
func (r *Result) Print() {
	if r.Message == "" || r.Output == nil {
		return
	}
	fmt.Fprint(r.Output, r.Message)
}

// Success reports found matches, or help output, on stdout.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeMatches,
		Message:  message,
	}
}

// NoMatches reports a search that completed without matches.
func NoMatches(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeNoMatches,
		Message:  message,
	}
}

// Error reports a failure on stderr.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeError,
		Message:  message,
	}
}

// Errorf creates an error exit result with formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}
