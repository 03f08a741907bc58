package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/registry"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print a game's default tuning",
	Long: `Print the built-in tuning of a game as YAML or TOML.

Save the output as ~/.arcade/configs/<game>.yaml (or .toml) and edit the
values to change how the game plays. Keys left out keep their defaults.

Examples:
  arcade config flappy_turd > ~/.arcade/configs/flappy_turd.yaml
  arcade config cat_vs_dog --format toml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := args[0]

	format, err := config.ParseFormat(flagFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	loop, ok := game.(*arcade.Loop)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s has no tuning\n", gameID)
		os.Exit(1)
	}
	tuner, ok := loop.Rules().(arcade.Tuner)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s has no tuning\n", gameID)
		os.Exit(1)
	}

	if err := config.Dump(os.Stdout, format, tuner.Defaults()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
		os.Exit(1)
	}
}
