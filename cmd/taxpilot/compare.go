package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/compare"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	var (
		templates     []string
		alternatives  []string
		baseName      string
		format        string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare [draft-file]",
		Short: "Compare the draft against what-if scenarios",
		Long: `Compare the draft (a file, or the saved draft) against built-in templates
and ad hoc alternatives. An alternative is a list of transforms separated
by semicolons, applied in order:

  taxpilot compare --with itemize,max_ira --alt "set_state:code=TX;set_ira:amount=3000"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.calcEngine()
			if err != nil {
				return err
			}
			ce := compare.NewCompareEngine(engine)
			out := cmd.OutOrStdout()

			if listTemplates {
				for _, name := range ce.TemplateRegistry.List() {
					t, _ := ce.TemplateRegistry.Get(name)
					fmt.Fprintf(out, "%-22s %s\n", t.Name, t.Description)
				}
				return nil
			}
			if len(templates) == 0 && len(alternatives) == 0 {
				return fmt.Errorf("nothing to compare: pass --with or --alt (see --list-templates)")
			}

			draft, _, err := a.loadDraft(cmd.Context(), args)
			if err != nil {
				return err
			}
			opts := compare.CompareOptions{BaseScenarioName: baseName, Templates: templates}
			for _, alt := range alternatives {
				opts.Alternatives = append(opts.Alternatives, compare.ParseAlternative(alt))
			}

			set, err := ce.Compare(cmd.Context(), draft, opts)
			if err != nil {
				return err
			}
			set.DraftSource = "saved draft"
			if len(args) > 0 {
				set.DraftSource = args[0]
			}

			var text string
			switch strings.ToLower(format) {
			case "table", "":
				text = (&compare.TableFormatter{}).Format(set)
			case "compact":
				text = (&compare.TableFormatter{}).FormatCompact(set)
			case "csv":
				text, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				text, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			default:
				return fmt.Errorf("unknown format %q (use table, compact, csv or json)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&templates, "with", nil, "Built-in templates to compare (comma-separated)")
	f.StringArrayVar(&alternatives, "alt", nil, `Ad hoc alternative, e.g. "set_state:code=TX;set_ira:amount=3000"`)
	f.StringVar(&baseName, "base", "current", "Label for the unmodified draft")
	f.StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	f.BoolVar(&listTemplates, "list-templates", false, "List built-in templates and exit")
	return cmd
}
