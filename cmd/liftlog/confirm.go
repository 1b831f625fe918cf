// ABOUTME: Confirmation prompt for destructive commands.
// ABOUTME: Refuses to proceed on non-interactive stdin unless --yes is given.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams.
var (
	stdin      io.Reader = os.Stdin
	isTerminal           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

var errConfirmationRequired = errors.New("stdin is not a terminal; pass --yes to confirm")

// confirm asks a yes/no question. It returns true without asking when --yes
// is set.
func confirm(prompt string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !isTerminal() {
		return false, errConfirmationRequired
	}

	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(stdin)
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
