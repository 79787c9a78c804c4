// Package extract implements the stateless extraction command: OCR text
// in, reconciled JSON out, nothing persisted.
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"autotax/invoice-engine/cmd/root"
	extractpkg "autotax/invoice-engine/internal/extract"
	"autotax/invoice-engine/internal/models"
	"autotax/invoice-engine/internal/normalize"
)

var qrPayload string
var qrFile string

var withItems bool

// result is the JSON shape printed by the command: the reconciled invoice
// plus, on request, the advisory line items.
type result struct {
	models.ReconciledInvoice
	Items []models.LineItem `json:"items,omitempty"`
}

// Cmd represents the extract command.
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract invoice fields from OCR text without storing anything",
	Long: `Extract runs the pure pipeline over a single document: normalize the OCR
text, extract every field, parse the QR payload if one is given, and print
the reconciled result as JSON. Nothing is written to the store.

Example:
  invoice-engine extract -i scan.txt --qr 'vendor=REWE;total=12,99'`,
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().StringVar(&qrPayload, "qr", "", "QR payload string")
	Cmd.Flags().StringVar(&qrFile, "qr-file", "", "File containing the QR payload")
	Cmd.Flags().BoolVar(&withItems, "items", false, "Include best-effort line items in the output")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	ocrText, err := readInput(root.SharedFlags.Input)
	if err != nil {
		return err
	}

	payload := qrPayload
	if payload == "" && qrFile != "" {
		data, err := os.ReadFile(qrFile)
		if err != nil {
			return fmt.Errorf("reading QR payload file: %w", err)
		}
		payload = string(data)
	}

	app, err := root.OpenAppStateless()
	if err != nil {
		return err
	}

	res := result{ReconciledInvoice: app.Engine.Extract(ocrText, payload)}
	if withItems {
		res.Items = extractpkg.LineItems(normalize.Clean(ocrText))
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(root.SharedFlags.Output, append(out, '\n'))
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading input file: %w", err)
	}
	return string(data), nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
