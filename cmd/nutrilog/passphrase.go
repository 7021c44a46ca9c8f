package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassphrase prompts on stderr and reads without echo when stdin is a
// terminal. NUTRILOG_PASSPHRASE takes precedence for scripted use.
func readPassphrase(prompt string) (string, error) {
	if p := os.Getenv("NUTRILOG_PASSPHRASE"); p != "" {
		return p, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading passphrase from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

func unlockPassphrase() (string, error) {
	return readPassphrase("Passphrase: ")
}

// newPassphrase asks twice on a terminal and requires both entries to match.
func newPassphrase() (string, error) {
	if os.Getenv("NUTRILOG_PASSPHRASE") != "" || !term.IsTerminal(int(os.Stdin.Fd())) {
		return readPassphrase("")
	}
	first, err := readPassphrase("New passphrase: ")
	if err != nil {
		return "", err
	}
	second, err := readPassphrase("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passphrases do not match")
	}
	return first, nil
}
