package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"autotax/invoice-engine/cmd/batch"
	"autotax/invoice-engine/cmd/correct"
	"autotax/invoice-engine/cmd/export"
	"autotax/invoice-engine/cmd/extract"
	"autotax/invoice-engine/cmd/ingest"
	"autotax/invoice-engine/cmd/purge"
	"autotax/invoice-engine/cmd/root"
)

func init() {
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(correct.Cmd)
	root.Cmd.AddCommand(purge.Cmd)
}

// loadEnvSilently loads a .env file if one exists, before any logging is
// configured.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
