// Package prompt asks the user yes/no questions before destructive steps.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// InvalidResponseMessage is written to the error stream before re-prompting.
const InvalidResponseMessage = "invalid response. please try again"

// Sentinel errors for prompt failures.
var (
	// ErrNoInput indicates stdin reached EOF before an answer was given.
	ErrNoInput = errors.New("no answer given: reached end of input")

	// ErrRead indicates reading the answer failed.
	ErrRead = errors.New("reading answer")
)

// Confirmer answers yes/no questions.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// AlwaysYes accepts every question without asking. It backs --yes.
type AlwaysYes struct{}

// Confirm implements Confirmer.
func (AlwaysYes) Confirm(string) (bool, error) { return true, nil }

type flusher interface {
	Flush() error
}

// Interactive asks on Out and reads answers from In, one line each.
type Interactive struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

// NewInteractive returns a Confirmer reading from in. Prompts go to out and
// complaints about invalid answers go to errOut.
func NewInteractive(in io.Reader, out, errOut io.Writer) *Interactive {
	return &Interactive{
		in:  bufio.NewReader(in),
		out: out,
		err: errOut,
	}
}

// Confirm writes "<message> (y/n) > " and waits for y, yes, n, or no in any
// ASCII case. Any other answer is rejected and the question is asked again.
func (p *Interactive) Confirm(message string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s (y/n) > ", message)
		flush(p.out)

		line, err := p.in.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return false, fmt.Errorf("%w: %w", ErrRead, err)
			}
			if line == "" {
				return false, ErrNoInput
			}
		}

		switch normalize(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if errors.Is(err, io.EOF) {
			return false, ErrNoInput
		}
		fmt.Fprintln(p.err, InvalidResponseMessage)
	}
}

// normalize strips the line terminator, either \n or \r\n, along with
// surrounding blanks, and lowercases ASCII letters only.
func normalize(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	line = strings.Trim(line, " \t")

	b := []byte(line)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func flush(w io.Writer) {
	if f, ok := w.(flusher); ok {
		_ = f.Flush()
	}
}
