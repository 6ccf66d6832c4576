// Package prompt asks for variable values and hook confirmation.
//
// Terminal uses pterm's interactive widgets and needs a real terminal.
// Line reads plain lines and works with pipes, which also makes it the
// one used in tests.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/hooks"
	"github.com/arthur-debert/cutter/pkg/logging"
	"github.com/arthur-debert/cutter/pkg/resolver"
	"github.com/arthur-debert/cutter/pkg/schema"
	"github.com/arthur-debert/cutter/pkg/types"
	"github.com/arthur-debert/cutter/pkg/ui/confirmations"
	"github.com/mattn/go-isatty"
)

var log = logging.GetLogger("ui.prompt")

// Asker is both a variable prompter and a hook confirmer
type Asker interface {
	resolver.Prompter
	hooks.Confirmer
}

var (
	_ Asker = (*Terminal)(nil)
	_ Asker = (*Line)(nil)
)

// New picks the terminal widgets when in is a terminal and falls back to
// line input otherwise
func New(in *os.File, out io.Writer) Asker {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		log.Debug().Msg("Using interactive terminal prompts")
		return NewTerminal()
	}
	log.Debug().Msg("Input is not a terminal, using line prompts")
	return NewLine(in, out)
}

// Line prompts with plain text over a reader and writer
type Line struct {
	*confirmations.ConsoleDialog
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a line prompter. Hook confirmation shares the same input.
func NewLine(in io.Reader, out io.Writer) *Line {
	br := bufio.NewReader(in)
	return &Line{
		ConsoleDialog: confirmations.NewConsoleDialog(br, out),
		in:            br,
		out:           out,
	}
}

// Ask prints the question and reads one answer. An empty answer takes the
// default when there is one.
func (l *Line) Ask(q resolver.Question) (any, error) {
	if q.Problem != "" {
		fmt.Fprintf(l.out, "  ! %s\n", q.Problem)
	}
	if q.Help != "" {
		fmt.Fprintf(l.out, "%s\n", q.Help)
	}
	if q.Kind == types.KindChoice {
		for i, c := range q.Choices {
			fmt.Fprintf(l.out, "  %d) %s\n", i+1, c)
		}
	}

	for {
		fmt.Fprint(l.out, label(q))
		text, eof, err := l.readLine()
		if err != nil {
			return nil, err
		}

		if q.Secret != nil && q.Secret.Confirm && text != "" {
			fmt.Fprint(l.out, "Confirm "+q.Name+": ")
			again, _, err := l.readLine()
			if err != nil {
				return nil, err
			}
			if again != text {
				fmt.Fprintf(l.out, "  ! %s\n", mismatchMessage(q.Secret))
				if eof {
					return nil, noAnswer(q)
				}
				continue
			}
		}

		if text == "" {
			if q.HasDefault {
				return q.Default, nil
			}
			if eof {
				return nil, noAnswer(q)
			}
			continue
		}

		v, problem := parseAnswer(q, text)
		if problem == "" {
			return v, nil
		}
		fmt.Fprintf(l.out, "  ! %s\n", problem)
		if eof {
			return nil, noAnswer(q)
		}
	}
}

func (l *Line) readLine() (string, bool, error) {
	line, err := l.in.ReadString('\n')
	if err == io.EOF {
		return strings.TrimSpace(line), true, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrInternal, "failed to read answer")
	}
	return strings.TrimSpace(line), false, nil
}

func label(q resolver.Question) string {
	var b strings.Builder
	b.WriteString(q.Name)
	if q.Kind == types.KindBool {
		b.WriteString(" (y/n)")
	}
	if q.HasDefault && q.Secret == nil {
		fmt.Fprintf(&b, " [%s]", display(q.Default))
	}
	b.WriteString(": ")
	return b.String()
}

// parseAnswer converts typed text into the question's kind. A non-empty
// problem means the text could not be used.
func parseAnswer(q resolver.Question, text string) (any, string) {
	switch q.Kind {
	case types.KindBool:
		switch strings.ToLower(text) {
		case "y", "yes", "true", "on", "1":
			return true, ""
		case "n", "no", "false", "off", "0":
			return false, ""
		}
		return nil, "please answer yes or no"

	case types.KindInt:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Sprintf("%q is not a whole number", text)
		}
		return n, ""

	case types.KindChoice:
		if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= len(q.Choices) {
			return q.Choices[n-1], ""
		}
		for _, c := range q.Choices {
			if c == text {
				return c, ""
			}
		}
		return nil, fmt.Sprintf("choose one of %s", strings.Join(q.Choices, ", "))

	case types.KindList:
		out := []string{}
		for _, part := range strings.Split(text, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out, ""
	}
	return text, ""
}

func display(v any) string {
	if l, ok := v.([]string); ok {
		return strings.Join(l, ", ")
	}
	return fmt.Sprint(v)
}

func mismatchMessage(s *schema.Secret) string {
	if s.MismatchError != "" {
		return s.MismatchError
	}
	return "values do not match"
}

func noAnswer(q resolver.Question) error {
	return errors.Newf(errors.ErrMissingValue, "no answer for %q", q.Name).
		WithDetail("variable", q.Name)
}
