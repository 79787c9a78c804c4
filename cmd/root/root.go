// Package root contains the root command and the shared application
// wiring used by every subcommand.
package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"autotax/invoice-engine/internal/config"
	"autotax/invoice-engine/internal/dictionary"
	"autotax/invoice-engine/internal/engine"
	"autotax/invoice-engine/internal/logging"
	"autotax/invoice-engine/internal/store"
)

// CommonFlags are the flags shared by multiple commands.
type CommonFlags struct {
	User   string
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands. It is replaced with
	// the configured adapter in PersistentPreRunE.
	Log logging.Logger = logging.NewNopLogger()

	// SharedFlags holds flag values accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cfg is the loaded configuration, available after PersistentPreRunE.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "invoice-engine",
		Short: "Extract, reconcile and track invoice data from OCR text and QR payloads.",
		Long: `invoice-engine turns raw OCR text and machine-readable QR payloads into
structured invoice records: vendor, date, total, VAT, category and payment
method. Stored records are checked for duplicates and recurring vendors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
		SilenceUsage: true,
	}
)

// Init registers the persistent flags. Called once from main before the
// subcommands are attached.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.User, "user", "u", "", "User the operation is scoped to")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default stdout)")
}

// App bundles the wired application services a subcommand needs.
type App struct {
	Dict   *dictionary.Dictionary
	Store  store.InvoiceStore
	Engine *engine.Engine
}

// OpenApp wires dictionary, store and engine from the loaded
// configuration. The caller owns the store and must Close it.
func OpenApp() (*App, error) {
	dict, err := dictionary.Load(dictionary.Files{
		Vendors:    Cfg.Dictionaries.VendorsFile,
		Categories: Cfg.Dictionaries.CategoriesFile,
		Payments:   Cfg.Dictionaries.PaymentsFile,
		QRKeys:     Cfg.Dictionaries.QRKeysFile,
	}, Log)
	if err != nil {
		return nil, fmt.Errorf("loading dictionaries: %w", err)
	}

	st, err := store.NewBoltStore(Cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	eng := engine.New(dict, st, engine.Options{
		TolerancePercent:      Cfg.Dedup.TolerancePercent,
		RecurringWindowMonths: Cfg.Dedup.RecurringWindowMonths,
		BatchWorkers:          Cfg.Batch.Workers,
	}, Log)

	return &App{Dict: dict, Store: st, Engine: eng}, nil
}

// OpenAppStateless wires an engine over an in-memory store for commands
// that never persist anything, so a pure extraction does not create or
// lock a database file.
func OpenAppStateless() (*App, error) {
	dict, err := dictionary.Load(dictionary.Files{
		Vendors:    Cfg.Dictionaries.VendorsFile,
		Categories: Cfg.Dictionaries.CategoriesFile,
		Payments:   Cfg.Dictionaries.PaymentsFile,
		QRKeys:     Cfg.Dictionaries.QRKeysFile,
	}, Log)
	if err != nil {
		return nil, fmt.Errorf("loading dictionaries: %w", err)
	}

	st := store.NewMemoryStore()
	eng := engine.New(dict, st, engine.Options{
		TolerancePercent:      Cfg.Dedup.TolerancePercent,
		RecurringWindowMonths: Cfg.Dedup.RecurringWindowMonths,
		BatchWorkers:          Cfg.Batch.Workers,
	}, Log)
	return &App{Dict: dict, Store: st, Engine: eng}, nil
}

// RequireUser validates the mandatory --user flag.
func RequireUser() (string, error) {
	if SharedFlags.User == "" {
		return "", fmt.Errorf("--user is required")
	}
	return SharedFlags.User, nil
}
