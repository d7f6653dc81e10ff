package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/silt/pkg/core"
)

var queryCmd = &cobra.Command{
	Use:   "query [type] [field=value...]",
	Short: "Print the records of a type matching every filter as a JSON array",
	Long: `Print the records of a type whose fields equal every given value.
Without filters every record is printed. Values that look like numbers compare
as numbers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := parseFilter(args[1:])
		if err != nil {
			return err
		}
		c, err := openContext(nil)
		if err != nil {
			return err
		}
		coll, err := c.TypeStore(args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd, coll.Query(filter))
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func parseFilter(args []string) (map[string]any, error) {
	filter := make(map[string]any, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q: want field=value", arg)
		}
		filter[field] = core.ParseKey(value)
	}
	return filter, nil
}
