package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
)

// Test seams for the system clipboard.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
)

// multilineEnd terminates multi-line input. Blank lines are part of the text.
const multilineEnd = "."

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetOptionalText is GetSimpleText with a current value: an empty answer
// keeps current, a single "-" clears it.
func GetOptionalText(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s] (Enter keeps, '-' clears)", prompt, current)
	}
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	switch s {
	case "":
		return current, nil
	case "-":
		return "", nil
	}
	return s, nil
}

// GetMultiline prints a prompt to w and reads lines until a line holding only
// "." or end of input. Line endings are kept as typed, apart from the final
// newline.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n(finish with a line containing only %q)\n", prompt, multilineEnd); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == multilineEnd {
			break
		}
		if err != nil {
			if line != "" {
				lines = append(lines, trimmed)
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n"), nil
}

// Confirm asks a yes/no question; only "y" or "yes" confirms.
func Confirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	s, err := GetSimpleText(reader, prompt+" (yes/no)", w)
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}
