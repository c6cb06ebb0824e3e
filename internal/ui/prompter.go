package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// LinePrompter implements shopkit.Prompter over a line-oriented stream.
// One buffered reader is kept for the lifetime of the prompter so answers
// typed ahead are not lost between questions.
type LinePrompter struct {
	reader *bufio.Reader
	output io.Writer
}

// NewLinePrompter creates a prompter reading stdin and writing to stdout.
func NewLinePrompter() *LinePrompter {
	return NewLinePrompterWithIO(os.Stdin, os.Stdout)
}

// NewLinePrompterWithIO creates a prompter over the given streams.
func NewLinePrompterWithIO(input io.Reader, output io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(input),
		output: output,
	}
}

type readResult struct {
	line string
	err  error
}

// Ask writes question and blocks until a line is read or ctx is done.
// A final line without a trailing newline is returned as the answer;
// EOF with nothing typed is returned as io.EOF.
func (p *LinePrompter) Ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(p.output, question)

	resultCh := make(chan readResult, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		resultCh <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultCh:
		if res.err != nil && !(res.err == io.EOF && res.line != "") {
			if res.err == io.EOF {
				return "", io.EOF
			}
			return "", fmt.Errorf("failed to read input: %w", res.err)
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}

var _ shopkit.Prompter = (*LinePrompter)(nil)
