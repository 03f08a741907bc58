package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/games/speedroll"
	"github.com/vovakirdan/arcadeloop/internal/registry"
	"github.com/vovakirdan/arcadeloop/internal/score"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

type stubGame struct {
	steps  []core.InputFrame
	state  core.GameState
	resets int
	closed bool
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Close()                   { g.closed = true }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	return core.StepResult{State: g.state}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func send(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	if next == nil {
		t.Fatal("Update() returned a nil model")
	}
	return next, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := send(t, m, TickMsg{ID: m.tick})
	return next.(Model)
}

func TestModelStepsOnTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testConfig(), nil)
	m.Init()
	if g.resets != 1 {
		t.Fatalf("Init() reset %d times, want 1", g.resets)
	}

	next, _ := send(t, m, runeKey(" "))
	m = tick(t, next.(Model))
	if len(g.steps) != 1 || !g.steps[0].Has(core.ActionJump) {
		t.Fatalf("first step should carry Jump, got %+v", g.steps)
	}

	m = tick(t, m)
	if g.steps[1].Has(core.ActionJump) {
		t.Error("input should be cleared after each step")
	}
}

func TestModelPointerReachesGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testConfig(), nil)
	next, _ := send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	tick(t, next.(Model))

	ps, ok := g.steps[0].LastPointer()
	if !ok || ps.X != 10 || ps.Y != 5 || ps.Event != core.PointerPress {
		t.Errorf("pointer sample = %+v, %v", ps, ok)
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testConfig(), nil)
	send(t, m, TickMsg{ID: m.tick + 1})
	if len(g.steps) != 0 {
		t.Errorf("a tick for another model stepped the game %d times", len(g.steps))
	}
}

func TestBackOnlyAfterRun(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testConfig(), nil)

	next, _ := send(t, m, runeKey("b"))
	m = next.(Model)
	if m.BackToMenu() {
		t.Fatal("Back during play belongs to the game")
	}
	m = tick(t, m)
	if !g.steps[0].Has(core.ActionBack) {
		t.Error("the game should see Back")
	}

	g.state.GameOver = true
	m = tick(t, m)
	next, _ = send(t, m, runeKey("b"))
	m = next.(Model)
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("Back after game over: back %v, quitting %v", m.BackToMenu(), m.IsQuitting())
	}
	if !g.closed {
		t.Error("leaving the game should close it")
	}
}

func TestQuitClosesGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testConfig(), nil)
	next, cmd := send(t, m, runeKey("q"))
	m = next.(Model)
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if !g.closed {
		t.Error("quitting should close the game")
	}
	if m.View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testConfig(), nil)
	m.Init()
	next, _ := send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if g.resets != 1 {
		t.Errorf("resize reset the game, resets = %d", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestHostCreateAttachesServices(t *testing.T) {
	mem := score.NewMemory()
	rec := score.NewRecorder(mem, nil)
	cues := &sound.Log{}
	h := Host{Scores: rec, Sounds: cues, User: "ada"}

	game, err := h.Create(speedroll.Key)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	l, ok := game.(*arcade.Loop)
	if !ok {
		t.Fatalf("Create() returned %T, want *arcade.Loop", game)
	}

	l.Reset(testConfig())
	l.Step(core.InputFrame{Actions: map[core.Action]bool{core.ActionConfirm: true}})
	if cues.Count(sound.Score) != 1 {
		t.Errorf("host sounds not attached: %v", cues.Cues())
	}
	rec.Wait()
}

func TestHostCreateReportsBadTuning(t *testing.T) {
	var failed string
	h := Host{
		ConfigPath:   filepath.Join(t.TempDir(), "missing.yaml"),
		TuningFailed: func(id string, _ error) { failed = id },
	}
	game, err := h.Create(speedroll.Key)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if game == nil || failed != speedroll.Key {
		t.Errorf("missing tuning file not reported, got %q", failed)
	}
}

func TestHostCreateUnknown(t *testing.T) {
	if _, err := (Host{}).Create("no_such_game"); err == nil {
		t.Error("Create() of an unknown game should fail")
	}
}

func TestMenuListsGamesAndScores(t *testing.T) {
	m := NewMenuModel(testConfig())
	games := registry.List()
	if len(m.items) != len(games)+1 {
		t.Fatalf("menu has %d items, want %d games and the scoreboard", len(m.items), len(games))
	}
	if m.items[len(m.items)-1].GameID != scoreboardItem {
		t.Error("scoreboard should be the last entry")
	}
	if !strings.Contains(m.View(), "High Scores") {
		t.Error("menu view is missing the scoreboard entry")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(testConfig())
	next, _ := send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	next, _ = send(t, next, tea.KeyMsg{Type: tea.KeyUp})
	next, cmd := send(t, next, tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select a game")
	}
	if want := m.items[0].GameID; m.Selected().GameID != want {
		t.Errorf("selected %q, want %q", m.Selected().GameID, want)
	}
}

func TestMenuScoreboard(t *testing.T) {
	tests := []struct {
		name string
		last bool
		key  tea.KeyMsg
	}{
		{"tab", false, tea.KeyMsg{Type: tea.KeyTab}},
		{"last entry", true, tea.KeyMsg{Type: tea.KeyEnter}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(testConfig())
			if tt.last {
				m.cursor = len(m.items) - 1
			}
			next, _ := send(t, m, tt.key)
			if !next.(MenuModel).WantsScoreboard() {
				t.Error("scoreboard not requested")
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		game string
		v    int
		want string
	}{
		{speedroll.Key, 12345, "12.35s"},
		{"flappy_turd", 1234567, "1,234,567"},
		{"flappy_turd", 7, "7"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.game, tt.v); got != tt.want {
			t.Errorf("FormatScore(%s, %d) = %q, want %q", tt.game, tt.v, got, tt.want)
		}
	}
}

func TestSessionFlow(t *testing.T) {
	var m tea.Model = NewSessionModel(Host{User: "ada"}, testConfig())
	sm := m.(SessionModel)
	for i, item := range sm.menu.items {
		if item.GameID == speedroll.Key {
			sm.menu.cursor = i
		}
	}

	m, _ = send(t, sm, tea.KeyMsg{Type: tea.KeyEnter})
	sm = m.(SessionModel)
	if sm.screen != screenGame || sm.game == nil {
		t.Fatalf("enter should start %s, screen %v", speedroll.Key, sm.screen)
	}

	step := func(k tea.KeyMsg) {
		m, _ = send(t, m, k)
		m, _ = send(t, m, TickMsg{ID: m.(SessionModel).game.tick})
	}
	step(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if phase := m.(SessionModel).game.State().Phase; phase != string(arcade.PhasePaused) {
		t.Fatalf("phase = %s, want PAUSED", phase)
	}

	m, _ = send(t, m, runeKey("b"))
	sm = m.(SessionModel)
	if sm.screen != screenMenu || sm.game != nil {
		t.Errorf("Back from a paused game should return to the menu, screen %v", sm.screen)
	}

	m, _ = send(t, sm, tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Error("esc should leave the scoreboard")
	}

	m, cmd := send(t, m, runeKey("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
}
