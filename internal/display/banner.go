package display

import (
	"fmt"
	"os"
	"strings"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	italic = "\033[3m"

	red     = "\033[31m"
	green   = "\033[32m"
	yellow  = "\033[33m"
	blue    = "\033[34m"
	magenta = "\033[35m"
	cyan    = "\033[36m"
	white   = "\033[37m"

	brightRed     = "\033[91m"
	brightGreen   = "\033[92m"
	brightYellow  = "\033[93m"
	brightBlue    = "\033[94m"
	brightMagenta = "\033[95m"
	brightCyan    = "\033[96m"
	brightWhite   = "\033[97m"
)

// RunInfo holds the figures for the end-of-run summary.
type RunInfo struct {
	// Source
	SourceName string
	SourceType string
	Region     string

	// Input
	Documents int
	Pages     int

	// Output
	Extracted  int
	KeptRows   int
	TotalRows  int
	OutputPath string
	// Fallback is true when the collection went to the alternate path
	// because the target was locked
	Fallback bool
}

// PrintRunSummary prints the end-of-run summary box.
func PrintRunSummary(info RunInfo) {
	w := os.Stdout

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s%sRun Summary%s\n", bold, brightCyan, reset)
	fmt.Fprintf(w, "  %s%s━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━%s\n", dim, cyan, reset)
	fmt.Fprintln(w)

	printSectionHeader(w, "Source")
	printKV(w, "Profile", info.SourceName, brightWhite)
	if info.Region != "" {
		printKV(w, "Region", info.Region, white)
	}
	printKV(w, "Source Type", info.SourceType, white)
	fmt.Fprintln(w)

	printSectionHeader(w, "Extraction")
	printKVColored(w, "Documents", fmt.Sprintf("%d", info.Documents), brightGreen)
	if info.Pages > 0 {
		printKVColored(w, "Pages", fmt.Sprintf("%d", info.Pages), brightGreen)
	}
	printKVColored(w, "Projects", fmt.Sprintf("%d", info.Extracted), brightGreen)
	fmt.Fprintln(w)

	printSectionHeader(w, "Collection")
	printKVColored(w, "Kept Rows", fmt.Sprintf("%d", info.KeptRows), brightYellow)
	printKVColored(w, "Total Rows", fmt.Sprintf("%d", info.TotalRows), brightYellow)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s%s━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━%s\n", dim, cyan, reset)
	if info.Fallback {
		fmt.Fprintf(w, "  %s%s⚠ Collection written to %s%s%s%s (target was locked)\n",
			bold, brightYellow, reset, bold+brightYellow, info.OutputPath, reset)
	} else {
		fmt.Fprintf(w, "  %s%sCollection written to %s%s%s%s\n",
			dim, white, reset, bold+brightGreen, info.OutputPath, reset)
	}
	fmt.Fprintf(w, "  %s%s━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━%s\n", dim, cyan, reset)
	fmt.Fprintln(w)
}

func printSectionHeader(w *os.File, title string) {
	fmt.Fprintf(w, "  %s%s%s%s\n", bold, brightYellow, title, reset)
}

func printKV(w *os.File, key, value, valueColor string) {
	paddedKey := padRight(key, 18)
	fmt.Fprintf(w, "    %s%s%s  %s%s%s\n", dim, paddedKey, reset, valueColor, value, reset)
}

func printKVColored(w *os.File, key, value, valueColor string) {
	paddedKey := padRight(key, 18)
	fmt.Fprintf(w, "    %s%s%s  %s%s%s%s\n", dim, paddedKey, reset, bold, valueColor, value, reset)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
