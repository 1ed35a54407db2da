package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/config"
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/wizard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func (a *app) draftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Show and edit the saved draft",
	}
	cmd.AddCommand(
		a.draftShowCmd(),
		a.draftSetCmd(),
		a.draftFieldsCmd(),
		a.draftImportCmd(),
		a.draftExportCmd(),
		a.draftResetCmd(),
	)
	return cmd
}

func (a *app) draftShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			var data []byte
			switch strings.ToLower(format) {
			case "json":
				data, err = json.MarshalIndent(session.Draft(), "", "  ")
				data = append(data, '\n')
			case "yaml", "yml":
				data, err = yaml.Marshal(session.Draft())
			default:
				return fmt.Errorf("unknown format %q (use yaml or json)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")
	return cmd
}

func (a *app) draftSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value [key=value...]",
		Short: "Set draft fields by key, e.g. incomeDetails.w2Wages=52,000",
		Long: `Set draft fields by their JSON key. Run "taxpilot draft fields" for the
list of keys. Either every assignment is saved or none is.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			draft := session.Draft()
			if err := wizard.Assign(&draft, args); err != nil {
				return err
			}
			if err := session.Replace(cmd.Context(), draft); err != nil {
				return err
			}
			a.logger.Debug("draft updated", zap.Strings("assignments", args))
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d field(s)\n", len(args))
			return nil
		},
	}
}

func (a *app) draftFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the keys accepted by draft set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, info := range wizard.Steps() {
				fields := wizard.Fields(info.Key)
				if len(fields) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s:\n", info.Title)
				for _, f := range fields {
					kind := f.Kind.String()
					if len(f.Choices) > 0 {
						kind = strings.Join(f.Choices, "|")
					}
					fmt.Fprintf(out, "  %-40s %s\n", f.Key, kind)
				}
			}
			return nil
		},
	}
}

func (a *app) draftImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the saved draft with a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := config.NewInputParser().LoadDraftFromFile(args[0])
			if err != nil {
				if !config.IsPartialDraft(err) {
					return err
				}
				a.logger.Warn("some draft fields were ignored", zap.String("file", args[0]), zap.Error(err))
			}
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := session.Replace(cmd.Context(), draft); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported draft from %s\n", args[0])
			return nil
		},
	}
}

func (a *app) draftExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the saved draft to a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := config.NewInputParser().SaveDraftToFile(args[0], session.Draft()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported draft to %s\n", args[0])
			return nil
		},
	}
}

func (a *app) draftResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved draft and return status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := session.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Started a new return")
			return nil
		},
	}
}

func printStatus(cmd *cobra.Command, status domain.ReturnStatus) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Return status: %s\n", status.Step)
	if status.PaymentConfirmation != "" {
		fmt.Fprintf(out, "Payment confirmation: %s\n", status.PaymentConfirmation)
	}
	if status.ConfirmationNumber != "" {
		fmt.Fprintf(out, "Filing confirmation: %s\n", status.ConfirmationNumber)
	}
}
