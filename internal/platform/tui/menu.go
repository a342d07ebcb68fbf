package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyfall-arcade/skyfall/internal/registry"
	"github.com/skyfall-arcade/skyfall/internal/storage"
)

// MenuChoice is what the player picked in the mode menu.
type MenuChoice int

const (
	MenuChoiceQuit MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScoreboard
)

// MenuResult carries the menu outcome back to the caller.
type MenuResult struct {
	Choice MenuChoice
	ModeID string
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the mode picker. It lists registered modes with their
// descriptions and local high scores.
type MenuModel struct {
	modes      []registry.ModeInfo
	highScores map[string]int
	cursor     int
	keys       *KeyMapper
	result     MenuResult
	done       bool
	winW, winH int
}

// NewMenuModel builds the picker from the mode registry. High scores are
// loaded once at construction; a nil store just hides them.
func NewMenuModel(store *storage.Store) *MenuModel {
	modes := registry.List()
	highs := make(map[string]int, len(modes))
	if store != nil {
		for _, m := range modes {
			if hs, err := store.HighScore(m.ID); err == nil && hs > 0 {
				highs[m.ID] = hs
			}
		}
	}

	return &MenuModel{
		modes:      modes,
		highScores: highs,
		keys:       NewKeyMapper(),
		result:     MenuResult{Choice: MenuChoiceQuit},
	}
}

// Result returns the player's choice after the menu program exits.
func (m *MenuModel) Result() MenuResult {
	return m.result
}

// Done reports whether the player has made a choice. Used by wrapping models
// that embed the menu instead of running it as its own program.
func (m *MenuModel) Done() bool {
	return m.done
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.winW, m.winH = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.result = MenuResult{Choice: MenuChoiceQuit}
			m.done = true
			return m, tea.Quit
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(m.modes)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			if len(m.modes) > 0 {
				m.result = MenuResult{Choice: MenuChoicePlay, ModeID: m.modes[m.cursor].ID}
				m.done = true
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.result = MenuResult{Choice: MenuChoiceScoreboard}
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var sb strings.Builder

	sb.WriteString(menuTitleStyle.Render("S K Y F A L L"))
	sb.WriteString("\n")
	sb.WriteString(menuDimStyle.Render("catch what falls, dodge what explodes"))
	sb.WriteString("\n\n")

	if len(m.modes) == 0 {
		sb.WriteString(menuDimStyle.Render("no modes registered"))
	}

	for i, mode := range m.modes {
		line := fmt.Sprintf("%s — %s", mode.Title, mode.Description)
		if hs, ok := m.highScores[mode.ID]; ok {
			line += menuDimStyle.Render(fmt.Sprintf("  (best %d)", hs))
		}

		if i == m.cursor {
			sb.WriteString(menuSelectedStyle.Render("▶ " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(menuDimStyle.Render("↑/↓ select • enter play • tab scores • q quit"))

	content := sb.String()
	if m.winW > 0 && m.winH > 0 {
		return lipgloss.Place(m.winW, m.winH, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// RunMenu shows the mode picker in the local terminal and returns the
// player's choice.
func RunMenu(store *storage.Store) (MenuResult, error) {
	m := NewMenuModel(store)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return MenuResult{Choice: MenuChoiceQuit}, fmt.Errorf("tui: %w", err)
	}
	return m.Result(), nil
}
