package cli

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsInteractive checks if stdin is a TTY. The analyze command only
// prompts for a document path when this holds; with piped input or in
// CI the missing-path error surfaces instead of a hung prompt.
func IsInteractive() bool {
	return IsTTY(os.Stdin.Fd())
}
