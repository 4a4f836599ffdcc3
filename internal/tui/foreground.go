package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type foregroundType int

const (
	Help foregroundType = iota
	StationSelector
)

type foregroundModel struct {
	fgType          foregroundType
	stationSelector *StationSelectorModel
}

func (h *foregroundModel) Init() tea.Cmd {
	h.stationSelector = NewStationSelectorModel()
	return nil
}

func (h *foregroundModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case mapLoadedResult:
		if msg.Err == nil {
			h.stationSelector.SetMap(msg.Map)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "?":
			h.fgType = Help
		case "/":
			h.fgType = StationSelector
			return h, nil
		}
		if h.fgType == StationSelector {
			_, cmd := h.stationSelector.Update(message)
			return h, cmd
		}
	}
	return h, nil
}

func (h *foregroundModel) View() string {
	switch h.fgType {
	case Help:
		return renderHelpModal()
	case StationSelector:
		return h.stationSelector.View()
	}
	return ""
}

func renderHelpModal() string {
	helpContent := `metroview - Controls

Panning:
  [mouse drag]  Pan the map, release quickly to fling
  [wheel]       Scroll
  [h/←]         Scroll left (hold to speed up)
  [j/↓]         Scroll down
  [k/↑]         Scroll up
  [l/→]         Scroll right
  [esc]         Cancel the current drag

Stations:
  [click]       Show the station under the pointer
  [/]           Open station list
  [c]           Centre the map

View:
  [ctrl+s]      Save the view for next time

General:
  [?]           Show this help
  [q]           Quit application

Press [Esc] to close this help`

	helpModalStyle := modalStyle.
		Width(60).
		MaxWidth(64).
		Align(lipgloss.Left)

	return helpModalStyle.Render(helpContent)
}
