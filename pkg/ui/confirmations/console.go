// Package confirmations provides console confirmation dialogs.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/cutter/pkg/types"
)

// maxItems is how many items are listed before the rest are summarised
const maxItems = 10

// ConsoleDialog asks yes/no questions over plain text streams
type ConsoleDialog struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleDialog creates a dialog reading answers from in. A
// *bufio.Reader is used as is so it can be shared with other prompts.
func NewConsoleDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &ConsoleDialog{in: br, out: out}
}

// Confirm shows the request and reads a y/n answer. An empty answer takes
// the request's default; end of input declines.
func (d *ConsoleDialog) Confirm(req types.ConfirmationRequest) (bool, error) {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, req.Title)
	if req.Description != "" {
		fmt.Fprintf(d.out, "  %s\n", req.Description)
	}
	for i, item := range req.Items {
		if i == maxItems {
			fmt.Fprintf(d.out, "  └── and %d more\n", len(req.Items)-maxItems)
			break
		}
		fmt.Fprintf(d.out, "  └── %s\n", item)
	}

	marker := "[y/N]"
	if req.Default {
		marker = "[Y/n]"
	}

	for {
		fmt.Fprintf(d.out, "Continue? %s: ", marker)
		line, err := d.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("failed to read user input: %w", err)
		}
		if err == io.EOF && line == "" {
			fmt.Fprintln(d.out)
			return false, nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return req.Default, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err == io.EOF {
			return false, nil
		}
		fmt.Fprintln(d.out, "Please answer y or n.")
	}
}
