package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/registry"
	"github.com/vovakirdan/arcadeloop/internal/score"
	"github.com/vovakirdan/arcadeloop/internal/sound"
	"github.com/vovakirdan/arcadeloop/internal/storage"
)

// Host holds what every game launched from one terminal session shares.
// All fields are optional.
type Host struct {
	Store      *storage.Store  // scoreboard reads; nil hides past runs
	Scores     *score.Recorder // background high score reads and saves
	Sounds     sound.Player
	Logger     *log.Logger
	User       string
	ConfigPath string // explicit tuning file, only honoured by Create
	Difficulty config.Difficulty
	Palette    *Palette // nil renders for the local terminal

	// TuningFailed, when set, also hears about tuning files that could not
	// be applied.
	TuningFailed func(id string, err error)
}

// hosted is implemented by games that take host services.
type hosted interface {
	Attach(arcade.Services)
	Configure(path string, d config.Difficulty) (string, error)
}

// closer is implemented by games that drop their session on quit.
type closer interface {
	Close()
}

func (h Host) logger() *log.Logger {
	if h.Logger == nil {
		return log.New(io.Discard)
	}
	return h.Logger
}

func (h Host) user() string {
	if h.User == "" {
		return arcade.DefaultUser
	}
	return h.User
}

// Create instantiates a registered game wired to the host services. A
// tuning file that fails to load is logged and the game keeps its defaults.
func (h Host) Create(id string) (registry.Game, error) {
	return h.create(id, h.ConfigPath)
}

// create is Create with an explicit tuning path. Games picked from the menu
// pass "" so each one searches for its own file.
func (h Host) create(id, path string) (registry.Game, error) {
	game, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	g, ok := game.(hosted)
	if !ok {
		return game, nil
	}

	logger := h.logger()
	g.Attach(arcade.Services{
		Scores: h.Scores,
		Sounds: h.Sounds,
		Logger: logger,
		UserID: h.user(),
	})
	src, err := g.Configure(path, h.Difficulty)
	if err != nil {
		logger.Warn("tuning not loaded, using defaults", "game", id, "err", err)
		if h.TuningFailed != nil {
			h.TuningFailed(id, err)
		}
		return game, nil
	}
	logger.Debug("tuning", "game", id, "source", src, "difficulty", h.Difficulty)
	return game, nil
}
