// Command livechatctl inspects and tunes a livechat store offline and mints
// tokens for local testing.
//
//	livechatctl queue --db ./data --department sales
//	livechatctl keys --db ./data --prefix msg:
//	livechatctl settings set --db ./data --use-queue=false
//	livechatctl token --user c1 --role commercial
package main

import (
	"fmt"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"os"
	"strings"
)

const defaultDBPath = "./data/badger"

var dbPath string

func main() {
	_ = godotenv.Load()
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "livechatctl",
		Short:        "Inspect the livechat store and mint test tokens",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envOr("BADGER_FILEPATH", defaultDBPath), "Path to badger DB")
	rootCmd.AddCommand(
		buildQueueCmd(),
		buildKeysCmd(),
		buildSettingsCmd(),
		buildTokenCmd(),
	)
	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openDB opens read-only unless write is set. A read-only open of a store
// left dirty by a crash needs one read-write open to truncate the value log.
func openDB(path string, write bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(!write).
		WithLogger(nil).
		WithBypassLockGuard(!write)

	db, err := badger.Open(opts)
	if err == nil || write || !strings.Contains(err.Error(), "Log truncate required") {
		return db, err
	}

	repaired, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("repair failed: %w", err)
	}
	_ = repaired.Close()
	return badger.Open(opts)
}

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
