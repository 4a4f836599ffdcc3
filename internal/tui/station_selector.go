package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/JackWithOneEye/metroview/internal/metromap"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type stationSelectedMessage struct {
	station metromap.Station
}

type stationEntry struct {
	station metromap.Station
	lines   []*metromap.Line
}

type StationSelectorModel struct {
	stations     []stationEntry
	selected     int
	scrollOffset int
	viewHeight   int
}

func NewStationSelectorModel() *StationSelectorModel {
	return &StationSelectorModel{viewHeight: 15}
}

// SetMap lists the stations of m by name. Interchanges are listed once with
// every line that serves them.
func (m *StationSelectorModel) SetMap(content *metromap.Map) {
	byName := make(map[string]*stationEntry)
	var entries []*stationEntry
	for l, s := range content.Stations() {
		e, ok := byName[s.Name]
		if !ok {
			e = &stationEntry{station: s}
			byName[s.Name] = e
			entries = append(entries, e)
		}
		if !slices.Contains(e.lines, l) {
			e.lines = append(e.lines, l)
		}
	}
	slices.SortFunc(entries, func(a, b *stationEntry) int {
		return cmp.Compare(a.station.Name, b.station.Name)
	})

	m.stations = make([]stationEntry, len(entries))
	for i, e := range entries {
		m.stations[i] = *e
	}
	m.selected = 0
	m.scrollOffset = 0
}

func (m *StationSelectorModel) Init() tea.Cmd {
	return nil
}

func (m *StationSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.moveUp()
		case "down", "j":
			m.moveDown()
		case "enter":
			if len(m.stations) > 0 {
				s := m.stations[m.selected].station
				return m, func() tea.Msg {
					return stationSelectedMessage{station: s}
				}
			}
		}
	}
	return m, nil
}

func (m *StationSelectorModel) moveUp() {
	if m.selected > 0 {
		m.selected--
		if m.selected < m.scrollOffset {
			m.scrollOffset = m.selected
		}
	}
}

func (m *StationSelectorModel) moveDown() {
	if m.selected < len(m.stations)-1 {
		m.selected++
		if m.selected >= m.scrollOffset+m.viewHeight {
			m.scrollOffset = m.selected - m.viewHeight + 1
		}
	}
}

func (m *StationSelectorModel) View() string {
	if len(m.stations) == 0 {
		return modalStyle.Width(50).Render("No stations available")
	}

	var listContent strings.Builder
	listContent.WriteString(lipgloss.NewStyle().Bold(true).Render("Stations"))
	listContent.WriteString("\n\n")

	if m.scrollOffset > 0 {
		listContent.WriteString(lipgloss.NewStyle().Foreground(borderColor).Render("↑"))
	}
	listContent.WriteString("\n")

	end := min(m.scrollOffset+m.viewHeight, len(m.stations))
	for i := m.scrollOffset; i < end; i++ {
		name := m.stations[i].station.Name
		if i == m.selected {
			listContent.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(modalBorderFg).
				Bold(true).
				Render("▶ " + name))
		} else {
			listContent.WriteString("  " + name)
		}
		listContent.WriteString("\n")
	}

	if end < len(m.stations) {
		listContent.WriteString(lipgloss.NewStyle().Foreground(borderColor).Render("↓"))
	}

	listContent.WriteString(lipgloss.NewStyle().Foreground(borderColor).Render("\n\nPress [Enter] to go there, [Esc] to close"))

	leftPanel := lipgloss.NewStyle().
		Width(36).
		Height(m.viewHeight + 6).
		Background(modalBg).
		Render(listContent.String())

	divider := lipgloss.NewStyle().
		Width(1).
		Height(m.viewHeight + 6).
		Background(modalBg).
		Foreground(modalBorderFg).
		Render(strings.Repeat("│\n", m.viewHeight+5) + "│")

	rightPanel := lipgloss.NewStyle().
		Width(34).
		Height(m.viewHeight + 6).
		Background(modalBg).
		PaddingLeft(2).
		Render(m.details(m.stations[m.selected]))

	return modalStyle.
		Width(76).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, divider, rightPanel))
}

func (m *StationSelectorModel) details(e stationEntry) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(e.station.Name))
	b.WriteString(fmt.Sprintf("\n\nPosition: (%d, %d)\n\nLines:\n", e.station.X, e.station.Y))
	for _, l := range e.lines {
		b.WriteString(fmt.Sprintf("  %s %s\n", swatch(uint32(l.Colour)), l.Name))
	}
	return b.String()
}
