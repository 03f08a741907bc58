package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/platform/tui"
	"github.com/vovakirdan/arcadeloop/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move / aim
  Space        - Jump, flap, launch, start
  F/X          - Fire
  1-9          - Holes, items, menu choices
  Mouse        - Click, drag and swipe
  Enter        - Confirm
  P/Esc        - Pause
  R            - Retry after a finished run
  B            - Back (from a paused or finished run)
  Ctrl+S       - Screenshot to ~/.arcade/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower, more lives, longer spawn intervals
  normal - The built-in tuning
  hard   - Faster, fewer lives, shorter spawn intervals

Tuning files are looked up at ~/.arcade/configs/<game>.yaml|.toml and
./configs/<game>.yaml|.toml unless --config names one.

Examples:
  arcade play flappy_turd
  arcade play tp_ninja --difficulty easy
  arcade play cat_vs_dog --difficulty hard
  arcade play snake_turd --config ./my-snake.toml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a game tuning file (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// terminalConfig sizes the runtime config to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	host, cleanup := openHost(parseDifficulty())
	host.ConfigPath = flagConfig
	host.TuningFailed = func(_ string, err error) {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
	}

	game, err := host.Create(gameID)
	if err != nil {
		cleanup()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	host.Logger.Info("session started", "game", gameID, "user", host.User, "difficulty", host.Difficulty)

	_, runErr := tui.Run(game, terminalConfig(), host.Logger)
	cleanup()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
