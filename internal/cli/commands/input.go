package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlpad/pkg/token"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNoInput is returned when there is neither a file argument nor piped stdin.
var errNoInput = errors.New("no input: pass a file or pipe SQL on stdin")

// readInput returns the SQL to operate on: the file named by the first
// argument, or stdin when it is not a terminal. "-" forces stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && len(args) == 0 && isTerminal(f) {
		return "", errNoInput
	}
	content, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(content), nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// parseCursor resolves a --cursor value against text. It accepts a byte
// offset, LINE:COL (both 1-based, columns in characters) or "end". Empty
// means the end of the text. Offsets past the end are clamped and offsets
// inside a multi-byte character move back to its start.
func parseCursor(spec, text string) (int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "end" {
		return len(text), nil
	}

	if line, col, ok := strings.Cut(spec, ":"); ok {
		l, errL := strconv.Atoi(line)
		c, errC := strconv.Atoi(col)
		if errL != nil || errC != nil || l < 1 || c < 1 {
			return 0, fmt.Errorf("invalid cursor %q (expected LINE:COL with 1-based numbers)", spec)
		}
		return token.OffsetAt(text, l, c), nil
	}

	off, err := strconv.Atoi(spec)
	if err != nil || off < 0 {
		return 0, fmt.Errorf("invalid cursor %q (expected a byte offset, LINE:COL or end)", spec)
	}
	off = min(off, len(text))
	for off > 0 && off < len(text) && !utf8.RuneStart(text[off]) {
		off--
	}
	return off, nil
}
