// Package correct applies user corrections to a stored record.
package correct

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"autotax/invoice-engine/cmd/root"
	"autotax/invoice-engine/internal/models"
)

var (
	total         string
	vendor        string
	date          string
	category      string
	paymentMethod string
	kind          string
)

// Cmd represents the correct command.
var Cmd = &cobra.Command{
	Use:   "correct <record-id>",
	Short: "Apply field corrections to a stored record",
	Long: `Correct overwrites selected fields of a stored record with user-supplied
values. Only the flags you pass are changed. Supplying --total clears the
needs-review flag, since the one condition that sets it is a missing total.

Example:
  invoice-engine correct -u alice 4f7c... --total 42.00 --vendor "Rewe"`,
	Args: cobra.ExactArgs(1),
	RunE: correctFunc,
}

func init() {
	Cmd.Flags().StringVar(&total, "total", "", "Corrected total amount")
	Cmd.Flags().StringVar(&vendor, "vendor", "", "Corrected vendor name")
	Cmd.Flags().StringVar(&date, "date", "", "Corrected date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&category, "category", "", "Corrected category")
	Cmd.Flags().StringVar(&paymentMethod, "payment-method", "", "Corrected payment method")
	Cmd.Flags().StringVar(&kind, "kind", "", "Corrected record kind: expense or income")
}

func correctFunc(cmd *cobra.Command, args []string) error {
	userID, err := root.RequireUser()
	if err != nil {
		return err
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", args[0], err)
	}

	correction, err := buildCorrection()
	if err != nil {
		return err
	}

	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Store.Close()

	updated, err := app.Store.UpdateFields(cmd.Context(), userID, id, correction)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func buildCorrection() (models.Correction, error) {
	var correction models.Correction
	any := false

	if total != "" {
		amount, err := decimal.NewFromString(total)
		if err != nil {
			return correction, fmt.Errorf("invalid total %q: %w", total, err)
		}
		correction.Total = models.DecimalPtr(amount)
		any = true
	}
	if vendor != "" {
		correction.Vendor = models.StringPtr(vendor)
		any = true
	}
	if date != "" {
		if _, err := time.Parse(models.DateLayoutISO, date); err != nil {
			return correction, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
		}
		correction.Date = models.StringPtr(date)
		any = true
	}
	if category != "" {
		correction.Category = models.StringPtr(category)
		any = true
	}
	if paymentMethod != "" {
		correction.PaymentMethod = models.StringPtr(paymentMethod)
		any = true
	}
	if kind != "" {
		recordKind := models.RecordKind(kind)
		if recordKind != models.KindExpense && recordKind != models.KindIncome {
			return correction, fmt.Errorf("invalid kind %q (must be expense or income)", kind)
		}
		correction.Kind = &recordKind
		any = true
	}

	if !any {
		return correction, fmt.Errorf("no correction flags given")
	}
	return correction, nil
}
