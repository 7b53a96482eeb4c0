// Package tui collects settings form values through terminal prompts.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions. Render
// prompts for every element and serializes the answers; Collect returns them
// as form values.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{HeaderPrefix: "== "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for the form and serializes the submission in its wire
// form.
func (r *Renderer) Render(ctx context.Context, f *form.Form, options render.RenderOptions) ([]byte, error) {
	values, err := r.Collect(ctx, f, options)
	if err != nil {
		return nil, err
	}
	return r.serialize(form.EncodeURL(f, values))
}

// Collect prompts for every element of f, starting from options.Values.
// Repeat groups prompt slot by slot; after the last slot the user may add
// AddMoreStep more slots. The effective slot count is written to the group
// and to its hidden count field.
func (r *Renderer) Collect(ctx context.Context, f *form.Form, options render.RenderOptions) (form.Values, error) {
	if ctx == nil {
		return form.Values{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return form.Values{}, err
	}
	if r.driver == nil {
		return form.Values{}, ErrNoDriver
	}
	if f == nil {
		return form.Values{}, errors.New("tui: form is nil")
	}

	session := &session{renderer: r, options: options, values: options.Values.Clone()}
	for _, item := range f.Items {
		var err error
		switch {
		case item.Element != nil:
			err = session.promptElement(ctx, *item.Element, -1, item.Element.Label)
		case item.Repeat != nil:
			err = session.promptRepeat(ctx, item.Repeat)
		}
		if err != nil {
			return form.Values{}, err
		}
	}
	return session.values, nil
}

type session struct {
	renderer *Renderer
	options  render.RenderOptions
	values   form.Values
}

func (s *session) promptRepeat(ctx context.Context, group *form.Repeat) error {
	count := group.Count
	for slot := 0; ; slot++ {
		if slot == count {
			if group.AddMoreField == "" || (group.MaxCount > 0 && count >= group.MaxCount) {
				break
			}
			more, err := s.renderer.driver.Confirm(ctx, ConfirmConfig{Message: addMoreMessage(group)})
			if err != nil {
				return err
			}
			if !more {
				break
			}
			count += group.AddMoreStep
			if group.MaxCount > 0 {
				count = min(count, group.MaxCount)
			}
		}
		for _, el := range group.Elements {
			if err := s.promptElement(ctx, el, slot, group.LabelFor(el, slot)); err != nil {
				return err
			}
		}
	}
	group.Count = count
	s.values.Set(group.CountField, form.Number(count))
	return nil
}

func (s *session) promptElement(ctx context.Context, el form.Element, slot int, label string) error {
	driver := s.renderer.driver
	current, _ := s.current(el.Name, slot)
	help := s.help(el)

	switch el.Type {
	case form.ElementHeader:
		return driver.Info(ctx, s.renderer.theme.HeaderPrefix+label)
	case form.ElementCheckbox:
		checked, err := driver.Confirm(ctx, ConfirmConfig{Message: label, Default: current.Checked, Help: help})
		if err != nil {
			return err
		}
		s.set(el.Name, slot, form.Checkbox(checked))
	case form.ElementEditor:
		format := current.Format
		if _, ok := s.current(el.Name, slot); !ok {
			format = form.FormatHTML
		}
		rows, _ := strconv.Atoi(el.Attributes["rows"])
		text, err := driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: current.Text,
			Help:    help,
			Rows:    rows,
			Format:  format,
		})
		if err != nil {
			return err
		}
		s.set(el.Name, slot, form.Editor(text, format))
	case form.ElementText:
		cfg := InputConfig{Message: label, Default: current.Text, Help: help}
		if el.ParamType == form.ParamInt {
			cfg.Default = strconv.Itoa(current.Number)
			cfg.Validator = validateInt
		}
		text, err := driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if el.ParamType == form.ParamInt {
			n, _ := strconv.Atoi(strings.TrimSpace(text))
			s.set(el.Name, slot, form.Number(n))
			return nil
		}
		s.set(el.Name, slot, form.Value{Text: text})
	}
	// Hidden and submit elements carry no user input.
	return nil
}

func (s *session) current(name string, slot int) (form.Value, bool) {
	if slot < 0 {
		return s.values.Get(name)
	}
	return s.values.At(name, slot)
}

func (s *session) set(name string, slot int, value form.Value) {
	if slot < 0 {
		s.values.Set(name, value)
		return
	}
	s.values.SetAt(name, slot, value)
}

func (s *session) help(el form.Element) string {
	if el.Help == nil {
		return ""
	}
	return render.String(s.options.Translator, s.options.Locale, el.Help.Component, el.Help.Identifier+"_help")
}

func addMoreMessage(group *form.Repeat) string {
	if label := strings.TrimSpace(group.AddMoreLabel); label != "" {
		return label + "?"
	}
	return fmt.Sprintf("Add %d more?", group.AddMoreStep)
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func (r *Renderer) serialize(values url.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s: %s\n", key, strings.Join(values[key], ", "))
		}
		return []byte(b.String()), nil
	default:
		flat := make(map[string]string, len(values))
		for key := range values {
			flat[key] = values.Get(key)
		}
		out, err := json.MarshalIndent(flat, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}
