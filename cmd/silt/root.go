package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/silt"
	"github.com/aretw0/silt/internal/platform"
)

var (
	verbose    bool
	strict     bool
	precise    bool
	configPath string
	inputs     []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "silt",
	Short: "Load nested JSON/YAML records into typed, linked collections",
	Long: `silt reads loosely typed JSON or YAML documents, groups the records it finds
into typed collections and resolves the relationships declared by their
field names (_user, _tag_s, _start_day).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Reject absent values and empty records")
	rootCmd.PersistentFlags().BoolVar(&precise, "precise-numbers", false, "Keep JSON numbers as exact decimal text")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: .silt.yaml found from the working directory up)")
	rootCmd.PersistentFlags().StringSliceVarP(&inputs, "input", "i", nil, "Input files or glob patterns")
}

// options builds the library options from the config file and flags.
func options() ([]silt.Option, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("error getting working directory: %w", err)
	}
	cfg, err := platform.ResolveConfig(configPath, wd)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	opts := []silt.Option{
		silt.WithConfig(cfg),
		silt.WithLogger(slog.Default()),
	}
	if strict {
		opts = append(opts, silt.WithStrict(true))
	}
	if precise {
		opts = append(opts, silt.WithPreciseNumbers(true))
	}
	return opts, nil
}

// patterns returns the input patterns: positional args win over --input.
func patterns(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(inputs) > 0 {
		return inputs, nil
	}
	return nil, fmt.Errorf("no input files: pass patterns or --input")
}

// openContext loads the files named by args, or by --input when args is empty.
func openContext(args []string) (*silt.Context, error) {
	pats, err := patterns(args)
	if err != nil {
		return nil, err
	}
	opts, err := options()
	if err != nil {
		return nil, err
	}
	return silt.LoadFiles(pats, opts...)
}
