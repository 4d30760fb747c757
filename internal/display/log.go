package display

import (
	"fmt"
	"os"
)

// ────────────────────────────────────────────────────────────
// Log-level helpers (colored prefixes for CLI output)
// ────────────────────────────────────────────────────────────

// Step prints a pipeline step like "  [1/5] Loading documents..."
func Step(step, total int, msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s[%d/%d]%s %s%s%s\n",
		bold, brightCyan, step, total, reset,
		white, msg, reset,
	)
}

// StepDetail prints an indented detail line under a step.
func StepDetail(msg string) {
	fmt.Fprintf(os.Stdout, "        %s%s%s\n", dim+white, msg, reset)
}

// StepResult prints a success result for a step with a highlighted value.
func StepResult(label string, value interface{}) {
	fmt.Fprintf(os.Stdout, "        %s%s%s %s%s%v%s\n",
		dim, label, reset,
		bold+brightGreen, "", value, reset,
	)
}

// StepWarn prints a warning detail under a step.
func StepWarn(msg string) {
	fmt.Fprintf(os.Stdout, "        %s%s⚠ %s%s\n", yellow, bold, msg, reset)
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s✓%s %s\n", brightGreen, bold, reset, msg)
}

// Warn prints a yellow warning message.
func Warn(msg string) {
	fmt.Fprintf(os.Stdout, "  %s%s⚠%s %s%s%s\n", brightYellow, bold, reset, yellow, msg, reset)
}

// ErrorMsg prints a red error message.
func ErrorMsg(msg string) {
	fmt.Fprintf(os.Stderr, "  %s%s✗%s %s%s%s\n", brightRed, bold, reset, red, msg, reset)
}

// Header prints a section header line.
func Header(msg string) {
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "  %s%s%s%s\n", bold, brightCyan, msg, reset)
	fmt.Fprintf(os.Stdout, "  %s%s%s%s\n", dim, cyan, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━", reset)
}

// FileCreated prints a file creation notice.
func FileCreated(path string) {
	fmt.Fprintf(os.Stdout, "    %s%s✓%s %s%s%s\n", brightGreen, bold, reset, dim+white, path, reset)
}
