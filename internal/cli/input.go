package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

var errNoInput = errors.New("no input provided")

// readInput reads the file named by args, or stdin when there is none or it
// is "-". It returns the text and the source name used in logs and output.
func readInput(in io.Reader, args []string, limit int64) (string, string, error) {
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", "", err
		}
		defer f.Close()
		text, err := readLimited(f, args[0], limit)
		return text, args[0], err
	}

	if in == nil || isTerminal(in) {
		return "", "", ExitError{Code: 2, Err: errNoInput}
	}
	text, err := readLimited(in, "stdin", limit)
	return text, "stdin", err
}

func readLimited(r io.Reader, name string, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%s exceeds max input size (%d bytes)", name, limit)
	}
	return string(data), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
