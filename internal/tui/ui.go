// Package tui is a terminal viewer for metro maps served by the API.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

type UIModel struct {
	APIHost string
	Debug   bool

	mapView           tea.Model
	foreground        tea.Model
	overlay           tea.Model
	foregroundVisible bool
}

func (m *UIModel) Init() tea.Cmd {
	cmds := []tea.Cmd{}

	host := m.APIHost
	if host == "" {
		host = "localhost:8080"
	}
	m.mapView = newMapModel(host, m.Debug)
	cmds = append(cmds, m.mapView.Init())

	m.foreground = &foregroundModel{}
	cmds = append(cmds, m.foreground.Init())

	m.foregroundVisible = false
	m.overlay = overlay.New(m.foreground, m.mapView, overlay.Center, overlay.Center, 0, 0)
	cmds = append(cmds, m.overlay.Init())

	return tea.Batch(cmds...)
}

func (m *UIModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{}

	passToMap := func() {
		mm, mmCmd := m.mapView.Update(message)
		m.mapView = mm
		cmds = append(cmds, mmCmd)
	}

	passToForeground := func() {
		fm, fmCmd := m.foreground.Update(message)
		m.foreground = fm
		cmds = append(cmds, fmCmd)
	}

	switch msg := message.(type) {
	case stationSelectedMessage:
		m.foregroundVisible = false
		passToMap()
		return m, tea.Batch(cmds...)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.foregroundVisible {
				m.foregroundVisible = false
				return m, nil
			}
		case "?", "/":
			m.foregroundVisible = true
		}
		if !m.foregroundVisible {
			passToMap()
		} else {
			passToForeground()
		}
	case tea.MouseMsg:
		if !m.foregroundVisible {
			passToMap()
		}
	default:
		passToMap()
		passToForeground()
	}

	return m, tea.Batch(cmds...)
}

func (m *UIModel) View() string {
	if m.foregroundVisible {
		return m.overlay.View()
	}
	return m.mapView.View()
}
