// Package wizard drives the interactive collection of prompt components.
// The terminal is abstracted behind the Asker capability interface so the
// driver has no dependency on any particular rendering facility and can be
// exercised headlessly in tests.
package wizard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrAborted is returned when the user interrupts collection (EOF or a
// failed read on the input stream). The run is abandoned as a whole; no
// partial snapshot is ever written.
var ErrAborted = errors.New("collection aborted by user")

// Asker is the terminal interaction collaborator. All calls are synchronous
// and block until the user responds.
type Asker interface {
	// Ask prompts for free text. An empty response returns defaultValue.
	Ask(prompt, defaultValue string) (string, error)
	// AskChoice prompts with a numbered option list and returns the chosen
	// zero-based index. An empty response returns defaultIndex.
	AskChoice(prompt string, options []string, defaultIndex int) (int, error)
	// Confirm prompts for a yes/no answer with a default.
	Confirm(prompt string, defaultYes bool) (bool, error)
	// Show writes a line of informational text.
	Show(text string)
}

// ConsoleAsker implements Asker over a reader/writer pair, normally stdin and
// stdout.
type ConsoleAsker struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewConsoleAsker wraps the given streams.
func NewConsoleAsker(in io.Reader, out io.Writer) *ConsoleAsker {
	return &ConsoleAsker{reader: bufio.NewReader(in), out: out}
}

func (c *ConsoleAsker) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		// A final unterminated line still counts as input; bare EOF aborts.
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("%w: %v", ErrAborted, err)
	}
	return strings.TrimSpace(line), nil
}

// Ask implements Asker.
func (c *ConsoleAsker) Ask(prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Fprintf(c.out, "%s: ", prompt)
	}
	input, err := c.readLine()
	if err != nil {
		return "", err
	}
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

// AskChoice implements Asker. Out-of-range or non-numeric answers are
// re-prompted.
func (c *ConsoleAsker) AskChoice(prompt string, options []string, defaultIndex int) (int, error) {
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, opt)
	}
	for {
		fmt.Fprintf(c.out, "%s [%d]: ", prompt, defaultIndex+1)
		input, err := c.readLine()
		if err != nil {
			return 0, err
		}
		if input == "" {
			return defaultIndex, nil
		}
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(c.out, "Please enter a number between 1 and %d.\n", len(options))
			continue
		}
		return n - 1, nil
	}
}

// Confirm implements Asker.
func (c *ConsoleAsker) Confirm(prompt string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(c.out, "%s %s: ", prompt, hint)
	input, err := c.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Show implements Asker.
func (c *ConsoleAsker) Show(text string) {
	fmt.Fprintln(c.out, text)
}
