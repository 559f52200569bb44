package tmdb

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// ValidateToken checks the configured token against /authentication
func (c *Client) ValidateToken(ctx context.Context) error {
	body, err := c.doRequest(ctx, "authentication", nil)
	if err != nil {
		return err
	}

	var resp authenticationResponse
	if err := c.decode(body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("token rejected: %s", resp.StatusMessage)
	}
	return nil
}

// PromptToken asks for a read access token on the terminal. Input is hidden
// when stdin is a terminal.
func PromptToken(out io.Writer) (string, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "TMDB Authentication")
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(out, "Create a read access token at https://www.themoviedb.org/settings/api")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Read access token: ")

	var token string
	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		tokenBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(out) // newline after hidden input
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		token = string(tokenBytes)
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("no token entered")
	}
	return token, nil
}
