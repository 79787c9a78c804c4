// Package purge deletes a stored record.
package purge

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"autotax/invoice-engine/cmd/root"
)

// Cmd represents the purge command.
var Cmd = &cobra.Command{
	Use:   "purge <record-id>",
	Short: "Delete a stored record",
	Long: `Purge removes one record of the user permanently. The record id is the
UUID printed at ingestion time and in exports.

Example:
  invoice-engine purge -u alice 4f7c...`,
	Args: cobra.ExactArgs(1),
	RunE: purgeFunc,
}

func purgeFunc(cmd *cobra.Command, args []string) error {
	userID, err := root.RequireUser()
	if err != nil {
		return err
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", args[0], err)
	}

	app, err := root.OpenApp()
	if err != nil {
		return err
	}
	defer app.Store.Close()

	if err := app.Store.DeleteRecord(cmd.Context(), userID, id); err != nil {
		return err
	}
	fmt.Printf("Deleted record %s\n", id)
	return nil
}
