package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam over term.ReadPassword.
var readPassword = term.ReadPassword

// promptLine prints the prompt and reads one trimmed line.
func (s *Session) promptLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt re-prompts until the operator enters an integer.
func (s *Session) promptInt(prompt string) (int, error) {
	for {
		line, err := s.promptLine(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil {
			fmt.Fprintln(s.out, "Enter a whole number.")
			continue
		}
		return n, nil
	}
}

// promptPassword reads a password without echoing when stdin is a terminal.
// Piped input (and tests) fall back to a plain line read.
func (s *Session) promptPassword(prompt string) (string, error) {
	f, ok := s.rawIn.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s.promptLine(prompt)
	}

	fmt.Fprint(s.out, prompt)
	b, err := readPassword(int(f.Fd()))
	fmt.Fprintln(s.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
