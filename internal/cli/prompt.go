package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter asks line-based questions on out and reads answers from in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line reads one trimmed answer. eof is set when input ended with it.
func (p *prompter) line() (answer string, eof bool, err error) {
	raw, err := p.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(raw), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(raw), false, nil
}

// String asks for a value. A blank answer takes fallback; with no fallback
// the question repeats until input runs out.
func (p *prompter) String(label, fallback string) (string, error) {
	for {
		if fallback != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, fallback)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}
		answer, eof, err := p.line()
		if err != nil {
			return "", err
		}
		switch {
		case answer != "":
			return answer, nil
		case fallback != "":
			return fallback, nil
		case eof:
			return "", fmt.Errorf("missing input for %s", label)
		}
	}
}

// YesNo asks a yes/no question. A blank answer takes fallback.
func (p *prompter) YesNo(label string, fallback bool) (bool, error) {
	hint := "y/N"
	if fallback {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, hint)
		answer, eof, err := p.line()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return fallback, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf("invalid response %q", answer)
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}
