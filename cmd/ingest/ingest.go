// Package ingest implements single-document ingestion into the store.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"autotax/invoice-engine/cmd/root"
	"autotax/invoice-engine/internal/engine"
	"autotax/invoice-engine/internal/models"
)

var (
	qrPayload string
	kind      string
)

// Cmd represents the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract a document and store the record for a user",
	Long: `Ingest runs the full pipeline over one document and persists the result
for the given user. The stored record is checked against the user's prior
history: a likely duplicate or a recurring vendor pattern is reported
alongside the new record.

Example:
  invoice-engine ingest -u alice -i scan.txt --qr 'vendor=REWE;total=12,99'`,
	RunE: ingestFunc,
}

func init() {
	Cmd.Flags().StringVar(&qrPayload, "qr", "", "QR payload string")
	Cmd.Flags().StringVar(&kind, "kind", string(models.KindExpense), "Record kind: expense or income")
}

func ingestFunc(cmd *cobra.Command, args []string) error {
	userID, err := root.RequireUser()
	if err != nil {
		return err
	}
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("--input is required")
	}

	data, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	recordKind, err := parseKind(kind)
	if err != nil {
		return err
	}

	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Store.Close()

	result, err := app.Engine.Ingest(cmd.Context(), engine.IngestRequest{
		UserID:    userID,
		Filename:  filepath.Base(root.SharedFlags.Input),
		Kind:      recordKind,
		OCRText:   string(data),
		QRPayload: qrPayload,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseKind(s string) (models.RecordKind, error) {
	switch models.RecordKind(s) {
	case models.KindExpense, models.KindIncome:
		return models.RecordKind(s), nil
	default:
		return "", fmt.Errorf("invalid kind %q (must be expense or income)", s)
	}
}
