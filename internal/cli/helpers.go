package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prompts on out and reads the answer from in
func Confirm(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Fprint(out, prompt+suffix)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(w io.Writer, format string, args ...any) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "OK: %s\n", msg)
		return
	}
	fmt.Fprintf(w, "✓ %s\n", msg)
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(w io.Writer, format string, args ...any) {
	if quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "INFO: %s\n", msg)
		return
	}
	fmt.Fprintf(w, "ℹ %s\n", msg)
}

// PrintWarning prints a warning message, usually to stderr
func PrintWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "WARNING: %s\n", msg)
		return
	}
	fmt.Fprintf(w, "⚠ %s\n", msg)
}

// Global flags, set from the root command
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// NoColor reports whether colored output is disabled
func NoColor() bool {
	return noColor
}
