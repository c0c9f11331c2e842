package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prints prompt to out verbatim and reads one line from in. The
// prompt is expected to carry its own y/N marker. Only "y" or "yes"
// (case-insensitive) count as confirmation; anything else, including EOF,
// declines.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
