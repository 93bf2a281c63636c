// ABOUTME: Shared CLI helpers: time parsing, column formatting, ID prefixes and prompts.
// ABOUTME: Also renders errors, including per-field validation messages.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/harperreed/wellness/internal/api"
	"github.com/harperreed/wellness/internal/models"
)

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func notesOf(notes *string) string {
	if notes == nil || *notes == "" {
		return ""
	}
	return color.New(color.Faint).Sprintf(" (%s)", truncate(*notes, 30))
}

// resolveID matches an ID or unique ID prefix against ids.
func resolveID(ids []string, prefix string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no entry matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}

func idsOf[T any](items []*T, idOf func(*T) string) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, idOf(it))
	}
	return ids
}

func findByID[T any](items []*T, id string, idOf func(*T) string) *T {
	for _, it := range items {
		if idOf(it) == id {
			return it
		}
	}
	return nil
}

// bar renders value as a block bar scaled against maxValue.
func bar(value, maxValue float64, width int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func success(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", args...)
}

func removed(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ "+format+"\n", args...)
}

func warn(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠ "+format+"\n", args...)
}

// reportError prints err, listing field errors one per line.
func reportError(w io.Writer, err error) {
	red := color.New(color.FgRed)
	if fe, ok := models.AsFieldErrors(err); ok {
		red.Fprintln(w, "✗ Please fix the following:")
		for _, f := range fe {
			fmt.Fprintf(w, "  %s %s\n", padRight(f.Field, 16), f.Message)
		}
		return
	}
	red.Fprintf(w, "✗ %v\n", err)
	if errors.Is(err, api.ErrNotAuthenticated) || api.IsUnauthorized(err) {
		color.New(color.Faint).Fprintln(w, "  Run 'wellness login' to sign in.")
	}
}

// prompter reads answers from the command's input, hiding passwords on a terminal.
type prompter struct {
	cmd *cobra.Command
	in  *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{cmd: cmd, in: bufio.NewReader(cmd.InOrStdin())}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.cmd.OutOrStdout(), "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(p.cmd.OutOrStdout(), "%s: ", label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
