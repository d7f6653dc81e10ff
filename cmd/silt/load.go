package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [patterns...]",
	Short: "Load files and print a summary of the collections found",
	Long: `Load JSON/YAML files (doublestar globs such as data/**/*.json are allowed),
resolve their relationships and apply their transforms. Prints one line per type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openContext(args)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tRECORDS\tTRANSFORMS")
		for _, name := range c.Types() {
			coll, err := c.TypeStore(name)
			if err != nil {
				return err
			}
			var kinds []string
			for _, t := range coll.Transforms() {
				kinds = append(kinds, t.SourceField+"->"+t.TargetField+" ("+t.Kind+")")
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", name, coll.Count(), strings.Join(kinds, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
