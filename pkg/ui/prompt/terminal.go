package prompt

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/cutter/pkg/errors"
	"github.com/arthur-debert/cutter/pkg/resolver"
	"github.com/arthur-debert/cutter/pkg/types"
	"github.com/pterm/pterm"
)

// Terminal prompts with pterm's interactive widgets
type Terminal struct{}

func NewTerminal() *Terminal {
	return &Terminal{}
}

// Ask shows the widget matching the question's kind
func (t *Terminal) Ask(q resolver.Question) (any, error) {
	if q.Problem != "" {
		pterm.Warning.Println(q.Problem)
	}
	title := q.Name
	if q.Help != "" {
		title = q.Help
	}

	var (
		v   any
		err error
	)
	switch q.Kind {
	case types.KindBool:
		def, _ := q.Default.(bool)
		v, err = pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(title)

	case types.KindChoice:
		sel := pterm.DefaultInteractiveSelect.WithOptions(q.Choices)
		if def, ok := q.Default.(string); ok && q.HasDefault {
			sel = sel.WithDefaultOption(def)
		}
		v, err = sel.Show(title)

	case types.KindList:
		if len(q.Choices) > 0 {
			ms := pterm.DefaultInteractiveMultiselect.WithOptions(q.Choices)
			if def, ok := q.Default.([]string); ok {
				ms = ms.WithDefaultOptions(def)
			}
			v, err = ms.Show(title)
			break
		}
		var text string
		text, err = t.text(q, title)
		if err == nil {
			v, _ = parseAnswer(q, text)
		}

	case types.KindInt:
		v, err = t.integer(q, title)

	default:
		v, err = t.text(q, title)
	}

	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to read answer for %q", q.Name)
	}
	return v, nil
}

func (t *Terminal) integer(q resolver.Question, title string) (int, error) {
	for {
		text, err := t.text(q, title)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err == nil {
			return n, nil
		}
		pterm.Warning.Printfln("%q is not a whole number", text)
	}
}

// text reads free text. Secrets are masked and, when asked for, entered twice.
func (t *Terminal) text(q resolver.Question, title string) (string, error) {
	input := pterm.DefaultInteractiveTextInput
	if q.HasDefault && q.Secret == nil {
		input = *input.WithDefaultValue(display(q.Default))
	}
	if q.Secret != nil {
		input = *input.WithMask("*")
	}

	for {
		text, err := input.Show(title)
		if err != nil {
			return "", err
		}
		if text == "" && q.HasDefault && q.Secret != nil {
			return display(q.Default), nil
		}
		if q.Secret == nil || !q.Secret.Confirm {
			return text, nil
		}

		again, err := input.Show(fmt.Sprintf("Confirm %s", q.Name))
		if err != nil {
			return "", err
		}
		if again == text {
			return text, nil
		}
		pterm.Warning.Println(mismatchMessage(q.Secret))
	}
}

// Confirm lists the items and asks a yes/no question
func (t *Terminal) Confirm(req types.ConfirmationRequest) (bool, error) {
	pterm.Println()
	pterm.Info.Println(req.Title)
	if req.Description != "" {
		pterm.Println(req.Description)
	}
	for _, item := range req.Items {
		pterm.Printfln("  └── %s", item)
	}
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(req.Default).Show("Continue?")
}
