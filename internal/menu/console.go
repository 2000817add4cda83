package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aanand-mishra/apartments-registry/internal/utils/response"
)

// ErrInvalidInput is returned when a prompt answer cannot be parsed.
var ErrInvalidInput = errors.New("invalid input")

// Console reads one line per prompt and writes menus, reports and
// responses.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole returns a Console over in and out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Ask prints label and returns the next input line with surrounding
// whitespace trimmed. io.EOF is returned once input is exhausted.
func (c *Console) Ask(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// AskInt asks for an integer.
func (c *Console) AskInt(label string) (int, error) {
	raw, err := c.Ask(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number: %w", raw, ErrInvalidInput)
	}
	return n, nil
}

// AskFloat asks for a real number.
func (c *Console) AskFloat(label string) (float64, error) {
	raw, err := c.Ask(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", raw, ErrInvalidInput)
	}
	return f, nil
}

// Print writes text as is.
func (c *Console) Print(text string) {
	fmt.Fprint(c.out, text)
}

// Reply writes one response line.
func (c *Console) Reply(resp response.Response) {
	_ = response.Write(c.out, resp)
}
