package main

import (
	"errors"
	"fmt"

	partnerapp "github.com/erp/docimport/internal/application/partner"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/erp/docimport/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDetectCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE",
		Short: "Print the document type (order or rfq) without parsing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[0])
			if err != nil {
				return err
			}
			dt, err := opts.parser(-1).DetectDocType(cmd.Context(), raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dt.String())
			return nil
		},
	}
}

func newParseCmd(opts *globalOptions) *cobra.Command {
	var (
		output    string
		precision int32
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a document and print the canonical order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[0])
			if err != nil {
				return err
			}
			order, err := opts.parser(precision).Parse(cmd.Context(), raw)
			if err != nil {
				return err
			}
			opts.log.Info("Parsed document",
				zap.String("doc_type", order.DocType.String()),
				zap.String("order_ref", order.OrderReference),
				zap.Int("lines", len(order.Lines)),
			)
			return render(cmd.OutOrStdout(), output, order)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or yaml")
	cmd.Flags().Int32Var(&precision, "precision", -1, "Quantity precision in decimal places (default: from config)")
	return cmd
}

// matchReport is what match prints for the customer party
type matchReport struct {
	OrderRef    string                  `json:"order_ref" yaml:"order_ref"`
	Party       string                  `json:"party" yaml:"party"`
	Outcome     string                  `json:"outcome" yaml:"outcome"`
	Strategy    string                  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	PartnerID   string                  `json:"partner_id,omitempty" yaml:"partner_id,omitempty"`
	PartnerName string                  `json:"partner_name,omitempty" yaml:"partner_name,omitempty"`
	CompanyID   string                  `json:"company_id,omitempty" yaml:"company_id,omitempty"`
	CompanyName string                  `json:"company_name,omitempty" yaml:"company_name,omitempty"`
	Unmatched   []trade.PartyIdentifier `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
}

func newMatchCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "match FILE",
		Short: "Match the customer party of a document against the partner directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(args[0])
			if err != nil {
				return err
			}
			order, err := opts.parser(-1).Parse(cmd.Context(), raw)
			if err != nil {
				return err
			}

			db, err := opts.openDirectory()
			if err != nil {
				return err
			}
			defer db.Close()

			directory := persistence.NewGormPartnerDirectory(db.DB)
			matcher := partnerapp.NewDirectoryMatcher(directory, directory, partnerapp.WithLogger(opts.log))

			report := matchReport{OrderRef: order.OrderReference, Party: order.Partner.Name}
			outcome, matchErr := matcher.Match(cmd.Context(), order.Partner)

			var unmatched *partnerapp.UnmatchedPartnerError
			switch {
			case errors.As(matchErr, &unmatched):
				report.Outcome = string(partnerapp.OutcomeUnmatched)
				report.Strategy = outcome.Strategy
				report.Unmatched = unmatched.Unmatched
			case matchErr != nil:
				return matchErr
			default:
				report.Outcome = string(outcome.Kind)
				report.Strategy = outcome.Strategy
				report.PartnerID = outcome.PartnerID().String()
				report.PartnerName = outcome.Partner.Name
				if outcome.Company != nil {
					report.CompanyID = outcome.Company.ID.String()
					report.CompanyName = outcome.Company.Name
				}
			}

			if err := render(cmd.OutOrStdout(), output, report); err != nil {
				return err
			}
			return matchErr
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or yaml")
	return cmd
}
