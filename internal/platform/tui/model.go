package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/skyfall-arcade/skyfall/internal/config"
	"github.com/skyfall-arcade/skyfall/internal/core"
	"github.com/skyfall-arcade/skyfall/internal/economy"
	"github.com/skyfall-arcade/skyfall/internal/leaderboard"
	"github.com/skyfall-arcade/skyfall/internal/perf"
	"github.com/skyfall-arcade/skyfall/internal/registry"
	"github.com/skyfall-arcade/skyfall/internal/sim"
	"github.com/skyfall-arcade/skyfall/internal/storage"
)

// GameModel is the Bubble Tea model driving one play session. It collects
// key events into an input frame between ticks, steps the simulation at the
// configured rate, feeds measured FPS into the quality monitor, and persists
// the run once when it ends.
type GameModel struct {
	game   registry.Game
	screen *core.Screen

	keys    *KeyMapper
	holds   *holdTracker
	pending core.InputFrame

	store  *storage.Store
	board  *leaderboard.Client
	player string

	gameCfg config.GameConfig
	rt      core.RuntimeConfig

	monitor   *perf.Monitor
	fpsStart  time.Time
	fpsFrames int

	winW, winH int

	runSaved   bool
	quitting   bool
	backToMenu bool
	flash      string // transient status line (screenshot path etc.)
	flashUntil time.Time
}

// NewGameModel wires a mode to the terminal loop. The player's persistent
// profile shapes the run before Reset: stat bonuses from their level, weapon
// mode and equipment from their unlocks.
func NewGameModel(game registry.Game, store *storage.Store, board *leaderboard.Client, gameCfg config.GameConfig, rt core.RuntimeConfig, player string) *GameModel {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	m := &GameModel{
		game:    game,
		screen:  core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:    NewKeyMapper(),
		holds:   newHoldTracker(),
		pending: core.NewInputFrame(),
		store:   store,
		board:   board,
		player:  player,
		gameCfg: gameCfg,
		rt:      rt,
		monitor: perf.NewMonitor(),
	}

	if sg, ok := game.(*sim.Game); ok {
		m.configureRun(sg)
	}

	game.Reset(rt)
	return m
}

// configureRun applies persistent progression to the simulation. Only
// *sim.Game modes carry progression hooks; anything else runs plain.
func (m *GameModel) configureRun(sg *sim.Game) {
	profile := storage.Profile{Name: m.player}
	if m.store != nil {
		profile = m.store.LoadProfile()
	}

	if profile.WeaponMode != "" {
		m.gameCfg.Weapon.Mode = profile.WeaponMode
	}
	sg.SetConfig(m.gameCfg)

	level := economy.LevelForXP(profile.XP)
	sg.SetBonuses(economy.BonusesForLevel(level))

	sg.SetLoadout(sim.Loadout{
		Piercing:      profile.Piercing,
		Explosive:     profile.Explosive,
		Chain:         profile.Chain,
		PassiveMagnet: profile.PassiveMagnet,
		ScoreBonus:    equipmentScoreBonus(profile),
	})

	sg.SetQuality(m.monitor.Quality())
	m.monitor.Subscribe(func(q perf.QualityConfig) {
		sg.SetQuality(q)
	})
}

// equipmentScoreBonus grants 5% per unlocked equipment slot.
func equipmentScoreBonus(p storage.Profile) float64 {
	bonus := 1.0
	for _, unlocked := range []bool{p.Piercing, p.Explosive, p.Chain, p.PassiveMagnet} {
		if unlocked {
			bonus += 0.05
		}
	}
	return bonus
}

// BackToMenu reports whether the player left the game via Back rather than
// quitting the program. Read by the session model after the game finishes.
func (m *GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player quit outright.
func (m *GameModel) IsQuitting() bool {
	return m.quitting
}

func (m *GameModel) Init() tea.Cmd {
	return tickCmd(m.rt.TickRate)
}

func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW, m.winH = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, tea.Quit
		}
		m.step(time.Time(msg))
		return m, tickCmd(m.rt.TickRate)
	}

	return m, nil
}

func (m *GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.takeScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}
	if action == core.ActionBack {
		m.backToMenu = true
		return m, tea.Quit
	}

	// Movement and fire synthesize holds from autorepeat; only a fresh
	// press (a quiet gap before the event) produces a press edge, so
	// autorepeat cannot fake the double-tap that starts a dash.
	now := time.Now()
	if isHeldAction(action) {
		if m.holds.observe(action, now) {
			m.pending.Press(action)
		}
		return m, nil
	}

	m.pending.Press(action)
	return m, nil
}

func isHeldAction(a core.Action) bool {
	for _, h := range heldActions {
		if a == h {
			return true
		}
	}
	return false
}

// step runs one simulation tick: merge synthesized holds into the pending
// edges, advance the game, then account the frame for quality control.
func (m *GameModel) step(now time.Time) {
	frame := m.pending.Clone()
	m.holds.apply(&frame, now)

	res := m.game.Step(frame)
	m.pending.Clear()

	if res.State.GameOver {
		if !m.runSaved {
			m.persistRun(res.State)
			m.runSaved = true
		}
	} else {
		m.runSaved = false
	}

	m.sampleFPS(now)
}

// sampleFPS counts ticks and pushes one frames-per-second sample to the
// monitor each elapsed second.
func (m *GameModel) sampleFPS(now time.Time) {
	if m.fpsStart.IsZero() {
		m.fpsStart = now
		return
	}
	m.fpsFrames++

	elapsed := now.Sub(m.fpsStart)
	if elapsed >= time.Second {
		m.monitor.AddSample(float64(m.fpsFrames) / elapsed.Seconds())
		m.fpsStart = now
		m.fpsFrames = 0
	}
}

// persistRun saves the finished run: local score row, profile progression,
// and a best-effort remote submission.
func (m *GameModel) persistRun(state core.GameState) {
	totals := economy.RunTotals{Score: state.Score}
	if sg, ok := m.game.(*sim.Game); ok {
		totals = sg.Totals()
	}

	if m.store != nil {
		if _, err := m.store.SaveScore(storage.ScoreEntry{
			ModeID:   m.game.ID(),
			Player:   m.player,
			Score:    state.Score,
			Level:    state.Level,
			MaxCombo: totals.MaxCombo,
		}); err != nil {
			log.Warn("cannot save score", "err", err)
		}

		profile := m.store.LoadProfile()
		bonuses := economy.BonusesForLevel(economy.LevelForXP(profile.XP))
		profile.XP += economy.XPForRun(totals, bonuses.XP)
		profile.Currency += state.Currency
		m.store.SaveProfile(profile)
	}

	if m.board.Enabled() {
		entry := leaderboard.Entry{
			Player: m.player,
			Mode:   m.game.ID(),
			Score:  state.Score,
			Level:  state.Level,
			Combo:  totals.MaxCombo,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			m.board.Submit(ctx, entry)
		}()
	}
}

// takeScreenshot dumps the current frame as plain text under
// ~/.skyfall/screenshots.
func (m *GameModel) takeScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("cannot resolve home directory", "err", err)
		return
	}

	dir := filepath.Join(home, ".skyfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("cannot create screenshot directory", "err", err)
		return
	}

	m.game.Render(m.screen)
	path := filepath.Join(dir, fmt.Sprintf("skyfall-%s.txt", time.Now().Format("20060102-150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o644); err != nil {
		log.Warn("cannot write screenshot", "err", err)
		return
	}

	m.flash = "saved " + path
	m.flashUntil = time.Now().Add(2 * time.Second)
}

func (m *GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	content := RenderScreen(m.screen)

	if m.flash != "" && time.Now().Before(m.flashUntil) {
		content += "\n" + colorStyles[core.ColorGray].Render(m.flash)
	}

	if m.winW > 0 && m.winH > 0 {
		return lipgloss.Place(m.winW, m.winH, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// Run plays a single mode in the local terminal until the player quits or
// backs out.
func Run(game registry.Game, store *storage.Store, board *leaderboard.Client, gameCfg config.GameConfig, rt core.RuntimeConfig, player string) error {
	m := NewGameModel(game, store, board, gameCfg, rt, player)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
