package main

import (
	"fmt"
	"strconv"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/silt"
)

var inspectDiagram bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the loaded context state",
	Long:  `Print the state of the context built from the --input files as JSON, or as a Mermaid diagram with --diagram.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openContext(nil)
		if err != nil {
			return err
		}

		var intro introspection.Introspectable = c
		state, ok := intro.State().(silt.ContextState)
		if !ok {
			return fmt.Errorf("unexpected state type %T", intro.State())
		}
		if !inspectDiagram {
			return writeJSON(cmd, state)
		}

		config := introspection.DefaultDiagramConfig()
		config.SecondaryID = "context"
		config.SecondaryLabel = "Loaded Types"
		fmt.Fprintln(cmd.OutOrStdout(), introspection.TreeDiagram(buildTree(c.ComponentType(), state), config))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectDiagram, "diagram", false, "Output a Mermaid diagram")
}

type stateNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []stateNode
}

func buildTree(component string, state silt.ContextState) stateNode {
	root := stateNode{
		Name:   "Context",
		Status: "running",
		Metadata: map[string]string{
			"type":   component,
			"mode":   state.Mode,
			"id_key": state.IDKey,
		},
	}
	for _, t := range state.Types {
		// Status must match a class in introspection.DefaultStyles().
		status := "running"
		if t.Count == 0 {
			status = "suspended"
		}
		root.Children = append(root.Children, stateNode{
			Name:   t.Name,
			Status: status,
			Metadata: map[string]string{
				"type":    "container",
				"records": strconv.Itoa(t.Count),
			},
		})
	}
	return root
}
