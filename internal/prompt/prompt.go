package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/term"

	"psh/internal/color"
)

// TerminalSelector asks the user to pick one key from a set of choices. It
// only ever prompts when attached to a terminal; callers consult
// Interactive() and apply their own fallback otherwise.
type TerminalSelector struct {
	in    io.Reader
	out   io.Writer
	isTTY bool
}

func NewTerminalSelector() *TerminalSelector {
	return NewSelectorWithIO(os.Stdin, os.Stderr, term.IsTerminal(int(os.Stdin.Fd())))
}

func NewSelectorWithIO(in io.Reader, out io.Writer, isTTY bool) *TerminalSelector {
	return &TerminalSelector{
		in:    in,
		out:   out,
		isTTY: isTTY,
	}
}

func (s *TerminalSelector) Interactive() bool {
	return s.isTTY
}

// Select renders a numbered menu in sorted key order and reads a choice,
// either by number or by key. Keeps asking until the input is valid or the
// reader runs out.
func (s *TerminalSelector) Select(promptText string, choices map[string]string) (string, error) {
	keys := make([]string, 0, len(choices))
	for key := range choices {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(s.out, "%s\n", promptText)
	for i, key := range keys {
		fmt.Fprintf(s.out, "  [%d] %s (%s)\n", i+1, color.FgCyan(key), choices[key])
	}

	reader := bufio.NewReader(s.in)
	for {
		fmt.Fprintf(s.out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("no selection made: %w", err)
		}
		answer := strings.TrimSpace(line)
		if index, convErr := strconv.Atoi(answer); convErr == nil && index >= 1 && index <= len(keys) {
			return keys[index-1], nil
		}
		if _, ok := choices[answer]; ok {
			return answer, nil
		}
		fmt.Fprintf(s.out, "%s\n", color.FgRed("Invalid choice, try again"))
		if err != nil {
			return "", fmt.Errorf("no selection made: %w", err)
		}
	}
}
