package cmd

import (
	"fmt"
	"strings"

	"github.com/opentaxa/taxtree/internal/search"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the assembled tree by taxon id or name substring",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		tree, idx, _, err := assemble(cfg)
		if err != nil {
			return err
		}

		engine := search.NewEngine(tree, idx)
		query := strings.Join(args, " ")
		matches := engine.Search(query)
		if len(matches) == 0 {
			fmt.Printf("No results for %q.\n", query)
			return nil
		}

		for _, m := range matches {
			fmt.Printf("%8d  %-10s %s\n", m.Node.ID, m.Kind, m.Node.Name)
		}
		fmt.Printf("%d matches (%d primary, %d synonym).\n", len(matches),
			engine.PrimaryMatchIDs().GetCardinality(), engine.SynonymMatchIDs().GetCardinality())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
