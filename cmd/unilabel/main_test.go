package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-unilabel/pkg/renderers/tui"
)

type scriptedDriver struct {
	confirms  []bool
	textAreas []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	return "", errors.New("unexpected input prompt")
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("no confirm scripted")
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	if len(d.textAreas) == 0 {
		return "", errors.New("no textarea scripted")
	}
	v := d.textAreas[0]
	d.textAreas = d.textAreas[1:]
	return v, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "unilabel.yaml")
	body := `
database_path: ` + filepath.Join(dir, "unilabel.db") + `
log_level: error
plugins:
  unilabeltype_accordion:
    active: true
labels:
  - id: 7
    name: FAQ
    intro: "<p>Frequently asked</p>"
    introformat: 1
    cmid: 70
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, driver tui.PromptDriver, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := &app{driver: driver}
	defer a.teardown()
	cmd := newRootCmd(a)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLabelLifecycle(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, nil, "--config", cfg, "render", "7")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "No content") {
		t.Fatalf("expected placeholder, got:\n%s", out)
	}

	driver := &scriptedDriver{
		confirms:  []bool{true, false},
		textAreas: []string{"Q1", "<p>A1</p>", "Q2", "<p>A2</p>", "", ""},
	}
	out, err = run(t, driver, "--config", cfg, "edit", "7")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(out, "saved label 7") {
		t.Fatalf("edit output = %q", out)
	}

	out, err = run(t, nil, "--config", cfg, "render", "7")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<p>Frequently asked</p>", "Q1", "<p>A1</p>", "Q2", "unilabeltype-accordion-70"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, nil, "--config", cfg, "form", "--action", "/save", "7")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	for _, want := range []string{`action="/save"`, ">Q2</textarea>", `name="cmid" value="70"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("form missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, nil, "--config", cfg, "delete", "7")
	if err != nil || !strings.Contains(out, "deleted label 7") {
		t.Fatalf("delete: %q, %v", out, err)
	}
	out, _ = run(t, nil, "--config", cfg, "render", "7")
	if !strings.Contains(out, "No content") {
		t.Fatalf("content survived delete:\n%s", out)
	}
}

func TestEditDryRun(t *testing.T) {
	cfg := writeConfig(t)
	driver := &scriptedDriver{
		confirms:  []bool{false, false},
		textAreas: []string{"H", "C", "", "", "", ""},
	}
	out, err := run(t, driver, "--config", cfg, "edit", "--dry-run", "-o", "pretty", "7")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(out, "unilabeltype_accordion_heading[0][text]: H") {
		t.Fatalf("dry run output:\n%s", out)
	}

	out, _ = run(t, nil, "--config", cfg, "render", "7")
	if !strings.Contains(out, "No content") {
		t.Fatalf("dry run must not save:\n%s", out)
	}
}

func TestLabelErrors(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := run(t, nil, "--config", cfg, "render", "abc"); err == nil {
		t.Fatalf("expected invalid id error")
	}
	if _, err := run(t, nil, "--config", cfg, "render", "8"); err == nil {
		t.Fatalf("expected unknown label error")
	}
	if _, err := run(t, nil, "--config", cfg, "--type", "unilabeltype_grid", "render", "7"); err == nil {
		t.Fatalf("expected unknown content type error")
	}
	if _, err := run(t, nil, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "render", "7"); err == nil {
		t.Fatalf("expected missing config error")
	}
}
