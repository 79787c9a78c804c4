// Package export renders a user's stored records as CSV or a summary.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"autotax/invoice-engine/cmd/root"
	"autotax/invoice-engine/internal/report"
)

var summaryOnly bool

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's stored invoices as CSV",
	Long: `Export writes every stored record of the user as CSV, sorted by date.
With --summary, a JSON quality summary is printed instead: how many
records are complete, incomplete or unreadable, and the expense total.

Example:
  invoice-engine export -u alice -o invoices.csv`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print a JSON summary instead of CSV")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	userID, err := root.RequireUser()
	if err != nil {
		return err
	}

	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Store.Close()

	records, err := app.Store.ListByUser(cmd.Context(), userID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if root.SharedFlags.Output != "" {
		f, err := os.Create(root.SharedFlags.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if summaryOnly {
		data, err := json.MarshalIndent(report.Summarize(records), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	return report.WriteCSV(out, records)
}
