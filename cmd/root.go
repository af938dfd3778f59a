package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	recordsPath  string
	synonymsPath string
	rootID       int64
	rootName     string
	groupDepth   int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to taxtree.hcl config file")
	rootCmd.PersistentFlags().StringVar(&recordsPath, "records", "", "Path to path records (.json or .db)")
	rootCmd.PersistentFlags().StringVar(&synonymsPath, "synonyms", "", "Path to synonym entries (.json or .db)")
	rootCmd.PersistentFlags().Int64Var(&rootID, "root-id", 0, "Root taxon id (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootName, "root-name", "", "Root taxon name (overrides config)")
	rootCmd.PersistentFlags().IntVar(&groupDepth, "group-depth", 0, "Fixed-depth fallback for group keys (overrides config)")
}

var rootCmd = &cobra.Command{
	Use:   "taxtree",
	Short: "Taxtree: taxonomic tree assembly, synonym resolution, and search",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
