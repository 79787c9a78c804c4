// Package batch handles batch ingestion of a directory of OCR text files.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"autotax/invoice-engine/cmd/root"
	"autotax/invoice-engine/internal/engine"
	"autotax/invoice-engine/internal/logging"
	"autotax/invoice-engine/internal/models"
)

var kind string

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Ingest every OCR text file in a directory for a user",
	Long: `Batch ingests all .txt files found in the input directory. Files are
processed concurrently; a file that fails does not stop the others. If a
.qr file with the same base name sits next to a .txt file, its content is
used as that document's QR payload.

Example:
  invoice-engine batch -u alice -i scans/`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&kind, "kind", string(models.KindExpense), "Record kind: expense or income")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	userID, err := root.RequireUser()
	if err != nil {
		return err
	}
	inputDir := root.SharedFlags.Input
	if inputDir == "" {
		return fmt.Errorf("--input directory is required")
	}

	recordKind := models.RecordKind(kind)
	if recordKind != models.KindExpense && recordKind != models.KindIncome {
		return fmt.Errorf("invalid kind %q (must be expense or income)", kind)
	}

	requests, err := collectRequests(inputDir, userID, recordKind)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		root.Log.Warn("no .txt files found", logging.F("dir", inputDir))
		return nil
	}

	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Store.Close()

	outcomes := app.Engine.IngestBatch(cmd.Context(), requests)

	var failed int
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			continue
		}
		line := fmt.Sprintf("%s: stored as %s", outcome.Request.Filename, outcome.Result.Record.ID)
		if outcome.Result.Record.NeedsReview {
			line += " (needs review)"
		}
		if outcome.Result.Duplicate != nil {
			line += fmt.Sprintf(" duplicate of %s", outcome.Result.Duplicate.Record.ID)
		}
		fmt.Println(line)
	}

	fmt.Printf("Processed %d files, %d failed\n", len(outcomes), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(outcomes))
	}
	return nil
}

// collectRequests pairs each .txt file with its optional sibling .qr
// payload file.
func collectRequests(dir, userID string, kind models.RecordKind) ([]engine.IngestRequest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var requests []engine.IngestRequest
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var payload string
		qrPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".qr"
		if qrData, err := os.ReadFile(qrPath); err == nil {
			payload = string(qrData)
		}

		requests = append(requests, engine.IngestRequest{
			UserID:    userID,
			Filename:  entry.Name(),
			Kind:      kind,
			OCRText:   string(data),
			QRPayload: payload,
		})
	}
	return requests, nil
}
