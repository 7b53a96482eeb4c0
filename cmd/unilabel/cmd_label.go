package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/render"
	"github.com/goliatone/go-unilabel/pkg/renderers/tui"
)

// target is a resolved label plus the content type selected by --type.
type target struct {
	ct    contenttype.ContentType
	label contenttype.Label
	cm    contenttype.CourseModule
}

func (a *app) target(ctx context.Context, raw string) (target, error) {
	id, err := parseLabelID(raw)
	if err != nil {
		return target{}, err
	}
	ct, err := a.runtime.ContentType(a.contentType)
	if err != nil {
		return target{}, err
	}
	if !ct.IsActive() {
		a.logger.Warn("content type is not active", zap.String("content_type", ct.Namespace()))
	}
	label, cm, err := a.runtime.ResolveLabel(ctx, id)
	if err != nil {
		return target{}, err
	}
	return target{ct: ct, label: label, cm: cm}, nil
}

func (t target) settingsForm(ctx context.Context) (*form.Form, form.Values, error) {
	f := form.New(t.ct.Namespace() + "-settings")
	if err := t.ct.AddFormFragment(ctx, f, contenttype.FormContext{Label: t.label, CourseModule: t.cm}); err != nil {
		return nil, form.Values{}, err
	}
	values, err := t.ct.FormDefaults(ctx, form.NewValues(), t.label)
	if err != nil {
		return nil, form.Values{}, err
	}
	return f, values, nil
}

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render <label>",
		Short: "Print the view markup of a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tgt, err := a.target(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := tgt.ct.Content(cmd.Context(), tgt.label, tgt.cm, a.runtime.Templates)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newFormCmd(a *app) *cobra.Command {
	var action string
	cmd := &cobra.Command{
		Use:   "form <label>",
		Short: "Print the HTML settings form of a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tgt, err := a.target(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f, values, err := tgt.settingsForm(cmd.Context())
			if err != nil {
				return err
			}
			f.Action = action
			out, err := a.runtime.Forms.Render(cmd.Context(), f, render.RenderOptions{
				Values: values,
				Hidden: render.HostFields{
					LabelID:        tgt.label.ID,
					CourseModuleID: tgt.cm.ID,
					ContentType:    tgt.ct.Namespace(),
				}.Map(),
				Locale:     a.runtime.Config.Locale,
				Translator: a.runtime.Translator,
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "form action URL")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var dryRun bool
	var output string
	cmd := &cobra.Command{
		Use:   "edit <label>",
		Short: "Edit the content of a label interactively",
		Long: `Prompts every settings field of the label, prefilled with the stored
content, and saves the result. With --dry-run the collected values are
printed in the --output format instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tgt, err := a.target(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f, values, err := tgt.settingsForm(cmd.Context())
			if err != nil {
				return err
			}

			prompts, err := tui.New(tui.WithPromptDriver(a.driver), tui.WithOutputFormat(tui.OutputFormat(output)))
			if err != nil {
				return err
			}
			opts := render.RenderOptions{
				Values:     values,
				Locale:     a.runtime.Config.Locale,
				Translator: a.runtime.Translator,
			}
			if dryRun {
				out, err := prompts.Render(cmd.Context(), f, opts)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}

			collected, err := prompts.Collect(cmd.Context(), f, opts)
			if err != nil {
				return err
			}
			saved, err := tgt.ct.SaveContent(cmd.Context(), collected, tgt.label)
			if err != nil {
				return err
			}
			if !saved {
				return fmt.Errorf("label %d: content not saved", tgt.label.ID)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved label %d\n", tgt.label.ID)
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the collected values instead of saving")
	cmd.Flags().StringVarP(&output, "output", "o", string(tui.OutputFormatPrettyText), "dry-run output format (json, form, pretty)")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <label>",
		Short: "Delete the stored content of a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tgt, err := a.target(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := tgt.ct.DeleteContent(cmd.Context(), tgt.label.ID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted label %d\n", tgt.label.ID)
			return err
		},
	}
}
