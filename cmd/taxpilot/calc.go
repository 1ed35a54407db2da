package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rgehrsitz/taxpilot/internal/config"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/jurisdiction"
	"github.com/rgehrsitz/taxpilot/internal/output"
	"github.com/rgehrsitz/taxpilot/internal/wizard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var formatExtensions = map[string]string{
	"console": "txt",
	"preview": "txt",
	"json":    "json",
	"csv":     "csv",
	"html":    "html",
}

// loadDraft reads the draft file named in args, or the saved draft when
// there is none. The status is only meaningful for the saved draft.
func (a *app) loadDraft(ctx context.Context, args []string) (domain.TaxpayerDraft, *domain.ReturnStatus, error) {
	if len(args) > 0 {
		draft, err := config.NewInputParser().LoadDraftFromFile(args[0])
		if err != nil {
			if !config.IsPartialDraft(err) {
				return draft, nil, err
			}
			a.logger.Warn("some draft fields were ignored", zap.String("file", args[0]), zap.Error(err))
		}
		return draft, nil, nil
	}
	session, err := a.openSession(ctx)
	if err != nil {
		return domain.TaxpayerDraft{}, nil, err
	}
	status := session.Status()
	return session.Draft(), &status, nil
}

func (a *app) render(cmd *cobra.Command, args []string, format string, save bool) error {
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)", format,
			strings.Join(append(output.AvailableFormatterNames(), output.AvailableFormatAliases()...), ", "))
	}

	draft, status, err := a.loadDraft(cmd.Context(), args)
	if err != nil {
		return err
	}
	engine, err := a.calcEngine()
	if err != nil {
		return err
	}
	report := output.NewReport(engine.Table.Year, draft, engine.Worksheet(draft), status)

	if save {
		path, err := output.WriteFormatted(formatter, report, formatExtensions[formatter.Name()])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) calculateCmd() *cobra.Command {
	var (
		format string
		save   bool
	)
	cmd := &cobra.Command{
		Use:   "calculate [draft-file]",
		Short: "Estimate the return for a draft file or the saved draft",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args, format, save)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, preview, json, csv, html)")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "preview [draft-file]",
		Short: "Show the Form 1040 preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args, "preview", save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the preview to a timestamped file instead of stdout")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [draft-file]",
		Short: "Check the jurisdiction table and list unanswered questions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if _, err := a.calcEngine(); err != nil {
				return err
			}
			if a.settings.Jurisdiction.TablePath != "" {
				fmt.Fprintf(out, "Jurisdiction table %s is valid\n", a.settings.Jurisdiction.TablePath)
			}

			draft, _, err := a.loadDraft(cmd.Context(), args)
			if err != nil {
				return err
			}

			open := 0
			for _, info := range wizard.Steps() {
				issues := wizard.Check(info.Key, draft)
				if len(issues) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s:\n", info.Title)
				for _, issue := range issues {
					fmt.Fprintf(out, "  - %s (%s)\n", issue.Message, issue.Field)
				}
				open += len(issues)
			}
			if open > 0 {
				return fmt.Errorf("draft has %d open issue(s)", open)
			}
			fmt.Fprintln(out, "Draft is complete")
			return nil
		},
	}
}

func (a *app) statesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states [code-or-name]",
		Short: "List states or look one up by code or name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.calcEngine()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				code, err := jurisdiction.Resolve(engine.Table, args[0])
				if err != nil {
					return err
				}
				info, _ := engine.Table.Lookup(code)
				tax := "no state income tax"
				if info.HasIncomeTax {
					tax = "taxes income"
				}
				fmt.Fprintf(out, "%s %s (%s)\n", info.Abbreviation, info.Name, tax)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tINCOME TAX")
			for _, s := range jurisdiction.States(engine.Table) {
				tax := "no"
				if s.HasIncomeTax {
					tax = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Abbreviation, s.Name, tax)
			}
			return w.Flush()
		},
	}
}
