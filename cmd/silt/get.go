package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/silt/pkg/core"
)

var getCmd = &cobra.Command{
	Use:   "get [type] [key]",
	Short: "Print one record as JSON",
	Long: `Print one record, including its resolved links and back-references, as JSON.
Keys that look like numbers are looked up as numbers.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openContext(nil)
		if err != nil {
			return err
		}
		coll, err := c.TypeStore(args[0])
		if err != nil {
			return err
		}
		rec, err := coll.Get(core.ParseKey(args[1]))
		if err != nil {
			return err
		}
		return writeJSON(cmd, rec)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}
