package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruit-rush/internal/fruit"
	"github.com/vovakirdan/fruit-rush/internal/registry"
	"github.com/vovakirdan/fruit-rush/internal/storage"
)

const (
	maxRuns         = 100 // Runs loaded into the table
	itemColumnWidth = 7
)

// scoreboardPane selects what the table lists.
type scoreboardPane int

const (
	paneRuns scoreboardPane = iota
	paneTotals
)

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbEmptyStyle  = sbMutedStyle.Italic(true).Padding(2, 4)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Reload, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Switch: key.NewBinding(key.WithKeys("tab", "left", "right"), key.WithHelp("tab", "runs/totals")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of one game and its all-time fruit totals.
type ScoreboardModel struct {
	gameID   string
	title    string
	store    *storage.Store // May be nil
	pane     scoreboardPane
	runs     []storage.RunRecord
	totals   []storage.ItemTotal
	stats    *storage.GameStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard for gameID.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	m := ScoreboardModel{
		gameID: gameID,
		title:  title,
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// reload reads runs, totals and stats from the store and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.runs, m.totals, m.stats, m.loadErr = nil, nil, nil, nil
	if m.store != nil {
		if m.runs, m.loadErr = m.store.TopRuns(m.gameID, maxRuns); m.loadErr == nil {
			m.totals, m.loadErr = m.store.ItemTotals(m.gameID)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(m.gameID)
		}
	}
	m.table = m.buildTable()
}

// buildTable lays out the table for the current pane.
func (m ScoreboardModel) buildTable() table.Model {
	var (
		columns []table.Column
		rows    []table.Row
	)
	switch m.pane {
	case paneTotals:
		columns = []table.Column{
			{Title: "Fruit", Width: 10},
			{Title: "Collected", Width: 10},
			{Title: "Points", Width: 10},
		}
		for _, t := range m.totals {
			rows = append(rows, totalRow(t))
		}
	default:
		columns = runColumns(m.width)
		for i, r := range m.runs {
			rows = append(rows, runRow(i+1, r))
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Title, stats, tabs, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// runColumns has one column per fruit. Spare width goes to the player column.
func runColumns(width int) []table.Column {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 8},
	}
	for _, k := range fruit.Kinds {
		columns = append(columns, table.Column{Title: fruitTitle(k), Width: itemColumnWidth})
	}
	columns = append(columns, table.Column{Title: "Date", Width: 12})

	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := width - 4 - used; spare > 0 {
		columns[1].Width += min(spare, 12)
	}
	return columns
}

func fruitTitle(k fruit.Kind) string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// runRow formats one run. Missing fruit columns show as zero, unknown items are skipped.
func runRow(rank int, r storage.RunRecord) table.Row {
	var counts [fruit.KindCount]int
	for _, it := range r.Items {
		if k, ok := fruit.ParseKind(it.Item); ok {
			counts[k] = it.Count
		}
	}

	player := r.Player
	if player == "" {
		player = "-"
	}
	row := table.Row{
		fmt.Sprintf("#%d", rank),
		player,
		fmt.Sprintf("%d", r.Score),
	}
	for _, k := range fruit.Kinds {
		row = append(row, fmt.Sprintf("%d", counts[k]))
	}
	return append(row, r.CreatedAt.Format("Jan 02 15:04"))
}

func totalRow(t storage.ItemTotal) table.Row {
	name := t.Item
	if k, ok := fruit.ParseKind(t.Item); ok {
		name = fruitTitle(k)
	}
	return table.Row{name, fmt.Sprintf("%d", t.Count), fmt.Sprintf("%d", t.Points)}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			m.pane = (m.pane + 1) % 2
			m.table = m.buildTable()
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(sbTitleStyle.Render("HIGH SCORES - "+m.title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(sbMutedStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, sbFrameStyle.Render(m.body())))
	b.WriteString("\n")
	b.WriteString(sbMutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statsLine() string {
	switch {
	case m.loadErr != nil:
		return "Scores unavailable: " + m.loadErr.Error()
	case m.stats == nil || m.stats.RunsCount == 0:
		return "No runs yet"
	}
	return fmt.Sprintf("Best %d   Runs %d   Average %.0f", m.stats.HighScore, m.stats.RunsCount, m.stats.AvgScore)
}

func (m ScoreboardModel) tabs() string {
	labels := [...]string{paneRuns: "Top runs", paneTotals: "All-time fruit"}
	out := make([]string, len(labels))
	for i, l := range labels {
		if scoreboardPane(i) == m.pane {
			out[i] = sbActiveStyle.Render(l)
		} else {
			out[i] = sbMutedStyle.Render(" " + l + " ")
		}
	}
	return strings.Join(out, " ")
}

func (m ScoreboardModel) body() string {
	if len(m.runs) == 0 && len(m.totals) == 0 {
		return sbEmptyStyle.Render("No runs recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// IsQuitting reports whether the user closed the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard for gameID until the user quits.
func RunScoreboard(store *storage.Store, gameID string, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(store, gameID, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// centerText pads text on the left so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
