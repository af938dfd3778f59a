package cmd

import (
	"fmt"
	"time"

	"github.com/opentaxa/taxtree/internal/taxtree"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble the taxonomy tree and print its shape",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		start := time.Now()
		tree, idx, grafted, err := assemble(cfg)
		if err != nil {
			return err
		}

		leaves := 0
		groups := make(map[string]struct{})
		tree.Root.Walk(func(n *taxtree.Node) {
			if n.IsLeaf() {
				leaves++
				groups[n.GroupKey] = struct{}{}
			}
		})

		fmt.Printf("Built %q (%d): %d nodes, %d leaves, %d groups in %v.\n",
			cfg.RootName, cfg.RootID, tree.Len(), leaves, len(groups), time.Since(start))
		if idx.Ready() {
			fmt.Printf("Synonym index ready, %d nodes grafted.\n", grafted)
		} else {
			fmt.Println("Synonym index unavailable, tree built without grafting.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
