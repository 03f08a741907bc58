// arcade runs the Arcade Loop mini-games in the terminal.
//
// Usage:
//
//	arcade                   - Same as arcade menu
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores
//	arcade config <game>     - Print a game's default tuning
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db, "" keeps scores in memory)
//	--pg <dsn>          - Store scores in PostgreSQL instead
//	--user <name>       - Score owner (default: $USER)
//	--sound             - Play sound cues
//	--log-file <path>   - Log destination (default: ~/.arcade/arcade.log)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/arcadeloop/internal/games/breakout"
	_ "github.com/vovakirdan/arcadeloop/internal/games/catdog"
	_ "github.com/vovakirdan/arcadeloop/internal/games/doodle"
	_ "github.com/vovakirdan/arcadeloop/internal/games/flappy"
	_ "github.com/vovakirdan/arcadeloop/internal/games/ninja"
	_ "github.com/vovakirdan/arcadeloop/internal/games/snake"
	_ "github.com/vovakirdan/arcadeloop/internal/games/speedroll"
	_ "github.com/vovakirdan/arcadeloop/internal/games/whack"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagPG       string
	flagUser     string
	flagSound    bool
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade Loop - eight mini-games in your terminal",
	Long: `Arcade Loop is a collection of physics mini-games for the terminal:
flappy_turd, snake_turd, poop_breaker, doodle_poop, whack_turd,
tp_ninja, cat_vs_dog and speed_roll.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu (the default)
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print a game's default tuning

Examples:
  arcade
  arcade list
  arcade play flappy_turd --difficulty hard
  arcade serve --ssh :2222
  arcade scores speed_roll
  arcade config cat_vs_dog --format toml`,
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", `Path to scores database ("" keeps scores in memory)`)
	rootCmd.PersistentFlags().StringVar(&flagPG, "pg", "", "PostgreSQL DSN for scores (overrides --db)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", defaultUser(), "User name scores are recorded under")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/arcade.log", "Log file path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
