package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	maxScores  = 100
	maxReplays = 20
	dateLayout = "Jan 02 15:04"
)

// boardView is what the scoreboard table lists.
type boardView int

const (
	viewScores boardView = iota
	viewReplays
)

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Toggle   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevGame, k.NextGame, k.Toggle, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the default bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextGame: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev game")),
		Toggle:   key.NewBinding(key.WithKeys("v", "r"), key.WithHelp("v", "scores/replays")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows stored scores and replays, one game at a time.
type ScoreboardModel struct {
	games     []registry.GameInfo
	game      int
	view      boardView
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	replays   []storage.ReplayEntry
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	palette   *Palette
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the first registered game.
// Endless and campaign runs are listed separately.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:   registry.List(),
		store:   store,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		palette: NewPalette(nil),
		width:   width,
		height:  height,
	}
	m.load()
	return m
}

// WithPalette returns a copy of the scoreboard that styles through p.
func (m ScoreboardModel) WithPalette(p *Palette) ScoreboardModel {
	m.palette = p
	m.rebuildTable()
	return m
}

func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.game].ID
}

// load reads the current game's data. Read errors leave the lists empty.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.replays = nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.gameID()
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
		if replays, err := m.store.RecentReplays(id, maxReplays); err == nil {
			m.replays = replays
		}
	}
	m.rebuildTable()
}

func (m *ScoreboardModel) rebuildTable() {
	var (
		columns []table.Column
		rows    []table.Row
	)
	switch m.view {
	case viewReplays:
		columns = []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Score", Width: 8},
			{Title: "Board", Width: 6},
			{Title: "Moves", Width: 6},
			{Title: "Replay ID", Width: 36},
		}
		for _, r := range m.replays {
			rows = append(rows, table.Row{
				r.CreatedAt.Format(dateLayout),
				strconv.Itoa(r.Score),
				fmt.Sprintf("%dx%d", r.Record.Width, r.Record.Height),
				strconv.Itoa(len(r.Record.Moves)),
				r.ID,
			})
		}
	default:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 13},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				strconv.Itoa(s.Score),
				s.CreatedAt.Format(dateLayout),
			})
		}
	}

	styles := table.DefaultStyles()
	styles.Header = m.palette.NewStyle().
		Bold(true).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true)
	styles.Selected = m.palette.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.shiftGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.shiftGame(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.rebuildTable()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) shiftGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.game = (m.game + delta + len(m.games)) % len(m.games)
	m.load()
}

// SelectedReplay returns the ID under the cursor in the replays view.
func (m ScoreboardModel) SelectedReplay() string {
	if m.view != viewReplays {
		return ""
	}
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[len(row)-1]
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	dim := m.palette.NewStyle().Foreground(lipgloss.Color("241"))
	bold := m.palette.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	heading := "HIGH SCORES"
	if m.view == viewReplays {
		heading = "REPLAYS"
	}
	title := "-"
	if len(m.games) > 0 {
		title = m.games[m.game].Title
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(bold.Render(heading+"  < "+title+" >"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dim.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	box := m.palette.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = dim.Italic(true).Padding(1, 4).Render(m.emptyText())
	}
	for _, line := range strings.Split(box.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if id := m.SelectedReplay(); id != "" {
		b.WriteString(centerText(dim.Render("verify with: arcade replay "+id), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

func (m ScoreboardModel) summary() string {
	if m.stats == nil {
		return "no games played"
	}
	return fmt.Sprintf("%d games  |  best %d  |  avg %.0f  |  last played %s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.LastPlayed.Format(dateLayout))
}

func (m ScoreboardModel) emptyText() string {
	if m.view == viewReplays {
		return "No replays stored yet.\nFinish a board to record one."
	}
	return "No scores recorded yet.\nPlay a game to set a high score!"
}

// IsGoingBack reports whether the user asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program. It reports
// whether the user went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
