package arcade

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/registry"
	"github.com/vovakirdan/arcadeloop/internal/rng"
	"github.com/vovakirdan/arcadeloop/internal/score"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// DefaultUser is the score user when the host sets none.
const DefaultUser = "local"

// Services are the host collaborators of a Loop. Every field is optional.
type Services struct {
	Scores *score.Recorder
	Sounds sound.Player
	Logger *log.Logger
	UserID string
}

// Loop runs one Ruleset. It implements registry.Game.
type Loop struct {
	rules   Ruleset
	cfg     core.RuntimeConfig
	svc     Services
	preset  config.Preset
	session Session
	env     Env
	view    *View

	fetch   <-chan int
	fetched bool
	closed  bool

	pointerDown bool
	pointerAt   Sample
	pointerSeen bool
}

var _ registry.Game = (*Loop)(nil)

// New wraps a ruleset in a loop with no services attached.
func New(r Ruleset) *Loop {
	l := &Loop{rules: r, cfg: core.DefaultConfig(), preset: config.PresetFor(config.Normal)}
	l.Attach(Services{})
	return l
}

// Rules returns the wrapped ruleset.
func (l *Loop) Rules() Ruleset {
	return l.rules
}

// Attach sets the host services. The high score is fetched again on the
// next Reset.
func (l *Loop) Attach(s Services) {
	if s.Sounds == nil {
		s.Sounds = sound.Nop{}
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	if s.UserID == "" {
		s.UserID = DefaultUser
	}
	l.svc = s
	l.fetched = false
	l.fetch = nil
}

// Configure loads tuning for rulesets that implement Tuner and keeps the
// preset for the next Reset. It returns the tuning source.
func (l *Loop) Configure(path string, d config.Difficulty) (string, error) {
	l.preset = config.PresetFor(d)
	t, ok := l.rules.(Tuner)
	if !ok {
		return config.SourceDefaults, nil
	}
	return t.Tune(path, l.preset)
}

// ID implements registry.Game.
func (l *Loop) ID() string {
	return l.rules.Key()
}

// Title implements registry.Game.
func (l *Loop) Title() string {
	return l.rules.Title()
}

// Blurb implements registry.Describer for rulesets that have one.
func (l *Loop) Blurb() string {
	if d, ok := l.rules.(registry.Describer); ok {
		return d.Blurb()
	}
	return ""
}

// Reset implements registry.Game. It starts a fresh session in the
// ruleset's entry phase.
func (l *Loop) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	l.cfg = cfg
	l.closed = false
	l.view = newView(l.rules.World(), cfg.ScreenW, cfg.ScreenH)
	l.env = Env{
		RNG:       rng.New(cfg.Seed),
		TickRate:  cfg.TickRate,
		TimeScale: 1,
		Sounds:    l.svc.Sounds,
		Log:       l.svc.Logger,
		Particles: NewParticles(MaxParticles),
		Preset:    l.preset,
		loop:      l,
	}
	l.pointerDown = false
	l.pointerSeen = false
	l.restart()

	if !l.fetched && l.svc.Scores != nil {
		l.fetch = l.svc.Scores.Fetch(l.svc.UserID, l.rules.Key())
		l.fetched = true
	}
}

// restart begins a new session on the existing environment. The RNG keeps
// running so retries don't replay the same layout.
func (l *Loop) restart() {
	l.session = newSession(l.entry(), l.session.HighScore)
	l.env.Session = &l.session
	l.env.Frame = 0
	l.env.TimeScale = 1
	l.env.Particles.Clear()
	l.view.SetCamera(physics.Vec{})
	l.rules.Reset(&l.env)
}

func (l *Loop) entry() Phase {
	if m, ok := l.rules.(Menu); ok {
		if p := m.Entry(); p != "" {
			return p
		}
	}
	return PhaseStart
}

func (l *Loop) begin() {
	l.session.Phase = PhasePlaying
	if b, ok := l.rules.(Beginner); ok {
		b.Begin(&l.env)
	}
}

// Step implements registry.Game.
func (l *Loop) Step(in core.InputFrame) core.StepResult {
	if l.closed {
		return core.StepResult{State: l.State()}
	}
	l.pollHighScore()
	l.env.In = l.mapInput(in)
	l.env.TimeScale = 1

	before := l.session.Phase
	l.dispatch()
	if after := l.session.Phase; after != before {
		l.env.Log.Debug("phase", "game", l.rules.Key(), "from", before, "to", after, "score", l.session.Score)
	}
	l.finalize()

	return core.StepResult{State: l.State()}
}

func (l *Loop) dispatch() {
	in := l.env.In
	switch p := l.session.Phase; {
	case p == PhasePaused:
		if in.Has(core.ActionPause) {
			l.session.Phase = PhasePlaying
		}
	case p == PhaseLevelComplete:
		if in.Tap() {
			if a, ok := l.rules.(Advancer); ok {
				l.session.reopen()
				l.env.Particles.Clear()
				a.Advance(&l.env)
			} else {
				l.retry()
			}
		}
	case p.Final():
		if in.Any(core.ActionRestart, core.ActionConfirm) {
			l.retry()
		} else if _, ok := in.Pressed(); ok {
			l.retry()
		}
	case p == PhaseStart:
		if in.Tap() {
			l.begin()
		}
	case p == PhasePlaying:
		if in.Has(core.ActionPause) {
			l.session.Phase = PhasePaused
			return
		}
		l.play()
	case p.Custom():
		if m, ok := l.rules.(Menu); ok {
			m.Handle(&l.env)
		}
	}
}

func (l *Loop) retry() {
	l.restart()
	if l.session.Phase == PhaseStart {
		l.begin()
	}
}

// play runs one PLAYING frame. A stage that ends the run stops the frame.
func (l *Loop) play() {
	l.session.Elapsed++
	l.env.Frame++
	stages := [...]func(*Env){
		l.rules.Control,
		l.rules.Schedule,
		l.rules.Integrate,
		l.rules.Collide,
		l.rules.Effects,
		l.rules.Settle,
	}
	for _, stage := range stages {
		stage(&l.env)
		if l.session.Phase != PhasePlaying {
			break
		}
	}
	l.env.Particles.Step(l.env.TimeScale)
}

// finalize submits the score once per session on reaching a final phase.
func (l *Loop) finalize() {
	s := &l.session
	if !s.Phase.Final() || s.submitted {
		return
	}
	s.submitted = true
	key := l.rules.Key()
	if score.Better(score.OrderFor(key), s.Score, s.HighScore) {
		s.HighScore = s.Score
	}
	if l.svc.Scores != nil {
		l.svc.Scores.Save(l.svc.UserID, key, s.Score)
	}
	l.env.Log.Info("run finished", "game", key, "user", l.svc.UserID, "phase", s.Phase, "score", s.Score)
}

func (l *Loop) pollHighScore() {
	if l.fetch == nil {
		return
	}
	select {
	case v, ok := <-l.fetch:
		l.fetch = nil
		if ok && score.Better(score.OrderFor(l.rules.Key()), v, l.session.HighScore) {
			l.session.HighScore = v
		}
	default:
	}
}

func (l *Loop) mapInput(in core.InputFrame) Input {
	out := Input{Actions: in}
	for _, ps := range in.Pointer {
		s := Sample{Vec: l.view.ToWorld(ps.X, ps.Y), Event: ps.Event}
		switch ps.Event {
		case core.PointerPress:
			l.pointerDown = true
		case core.PointerRelease:
			l.pointerDown = false
		}
		l.pointerAt = s
		l.pointerSeen = true
		out.Pointer = append(out.Pointer, s)
	}
	out.down = l.pointerDown
	out.at = l.pointerAt.Vec
	out.seen = l.pointerSeen
	return out
}

// Render implements registry.Game.
func (l *Loop) Render(dst *core.Screen) {
	if l.view == nil {
		return
	}
	l.view.attach(dst)
	l.view.drawBorder()
	l.rules.Draw(&l.env, l.view)
	l.env.Particles.Draw(l.view)
	l.view.drawHUD(l.rules.Title(), &l.session)
	l.drawOverlay()
}

func (l *Loop) drawOverlay() {
	s := &l.session
	v := l.view
	switch s.Phase {
	case PhaseStart:
		v.Overlay(l.rules.Title(), core.ColorBrightYellow, "SPACE / click to start", "P pause   Q quit")
	case PhasePaused:
		v.Overlay("PAUSED", core.ColorBrightCyan, "Press P to resume")
	case PhaseGameOver:
		v.Overlay("GAME OVER", core.ColorBrightRed, scoreLine(s), "R / Enter to retry")
	case PhaseWin:
		v.Overlay("YOU WIN", core.ColorBrightGreen, scoreLine(s), "R / Enter to play again")
	case PhaseLevelComplete:
		v.Overlay("LEVEL COMPLETE", core.ColorBrightGreen, scoreLine(s), "SPACE / click for the next level")
	}
}

func scoreLine(s *Session) string {
	line := "Score: " + strconv.Itoa(s.Score)
	if s.HighScore > 0 && s.HighScore == s.Score {
		line += "  NEW BEST!"
	}
	return line
}

// State implements registry.Game.
func (l *Loop) State() core.GameState {
	s := &l.session
	return core.GameState{
		Phase:     string(s.Phase),
		Score:     s.Score,
		HighScore: s.HighScore,
		Lives:     s.Lives,
		Health:    s.Health,
		TimeLeft:  s.TimeLeft,
		Elapsed:   float64(s.Elapsed) / NominalRate,
		GameOver:  s.Phase.Final(),
		Paused:    s.Phase == PhasePaused,
	}
}

// Session returns a copy of the current session.
func (l *Loop) Session() Session {
	return l.session
}

// Env exposes the environment, for tests and tools that drive stages.
func (l *Loop) Env() *Env {
	return &l.env
}

// View returns the loop's view, for mapping world points to cells.
func (l *Loop) View() *View {
	return l.view
}

// Close discards the session and ignores any outstanding fetch. Nothing
// unfinished is persisted.
func (l *Loop) Close() {
	l.closed = true
	l.fetch = nil
	l.session = newSession(l.entry(), 0)
	if l.env.Particles != nil {
		l.env.Particles.Clear()
	}
}
