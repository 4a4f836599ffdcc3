package tui

import (
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"github.com/JackWithOneEye/metroview/internal/metromap"
	"github.com/JackWithOneEye/metroview/internal/pan"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fps = 30

	// terminals repeat held keys but never report releases
	keyReleaseDelay = 150 * time.Millisecond

	// wheel notches scroll a few cells at the default trackball scale
	wheelPrecision = 0.3

	tapRadius = 2

	// header, info line and the two frame borders
	chromeHeight = 4
	infoLines    = 2
)

// tickMsg is sent every 1/30th second to trigger UI updates
type tickMsg struct{}

type keyReleaseMsg struct {
	seq int
}

type mapModel struct {
	apiHost   string
	debug     bool
	now       func() time.Time
	content   *metromap.Map
	surface   *pan.Surface
	canvas    *canvas
	camera    camera
	width     int // viewport in cells
	height    int
	termWidth int
	saving    bool
	err       error
	tapped    string
	spinner   spinner.Model

	heldKey pan.Key
	keySeq  int

	renderedRows []string
	drawn        image.Rectangle
}

func newMapModel(apiHost string, debug bool) *mapModel {
	return &mapModel{
		apiHost:   apiHost,
		debug:     debug,
		now:       time.Now,
		width:     40,
		height:    20,
		termWidth: 80,
		camera:    newCamera(fps),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205")))),
	}
}

// tick returns a command that sends a tickMsg every 1/30th second (30 FPS)
func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *mapModel) Init() tea.Cmd {
	return tea.Batch(loadMap(m.apiHost), tick())
}

func (m *mapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mapLoadedResult:
		m.err = msg.Err
		if msg.Err == nil {
			m.setContent(msg.Map, msg.Globals.Tuning)
			m.surface.SetScrollCenter(image.Pt(msg.View.X, msg.View.Y))
			m.redraw()
		}
	case stationSelectedMessage:
		m.flyTo(msg.station.Point())
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case keyReleaseMsg:
		if m.surface != nil && msg.seq == m.keySeq {
			m.surface.KeyUp(m.heldKey)
			m.heldKey = 0
		}
	case tickMsg:
		m.step()
		return m, tick()
	case saveViewResult:
		m.err = msg.Err
		m.saving = false
	case spinner.TickMsg:
		if m.saving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		if msg.Height > chromeHeight && msg.Width > 4 {
			m.width = (msg.Width - 2) / 2
			m.height = msg.Height - chromeHeight
			if m.surface != nil {
				m.surface.SetViewport(m.width, m.height)
				m.redraw()
			}
		}
	}
	return m, nil
}

func (m *mapModel) setContent(content *metromap.Map, tuning pan.Tuning) {
	opts := []pan.Option{
		pan.WithTuning(tuning),
		pan.WithTapHandler(m.handleTap),
	}
	if m.debug {
		opts = append(opts, pan.WithLogger(log.Default()))
	}
	m.content = content
	m.canvas = newCanvas(content)
	m.surface = pan.NewSurface(m.canvas, opts...)
	m.surface.SetViewport(m.width, m.height)
	m.drawn = image.Rectangle{}
}

func (m *mapModel) handleMouse(msg tea.MouseMsg) {
	if m.surface == nil {
		return
	}
	now := m.now()
	// each cell is two characters wide; the grid starts below the header and
	// info lines, inside the frame
	x := float64(msg.X-1) / 2
	y := float64(msg.Y - infoLines - 1)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.surface.Trackball(0, -1, wheelPrecision, wheelPrecision)
	case msg.Button == tea.MouseButtonWheelDown:
		m.surface.Trackball(0, 1, wheelPrecision, wheelPrecision)
	case msg.Button == tea.MouseButtonWheelLeft:
		m.surface.Trackball(-1, 0, wheelPrecision, wheelPrecision)
	case msg.Button == tea.MouseButtonWheelRight:
		m.surface.Trackball(1, 0, wheelPrecision, wheelPrecision)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.camera.stop()
		m.surface.Press(x, y, now)
	case msg.Action == tea.MouseActionMotion:
		m.surface.Move(x, y, now)
	case msg.Action == tea.MouseActionRelease:
		m.surface.Release(x, y, now)
	}
	m.redraw()
}

func (m *mapModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.surface == nil {
		return nil
	}
	var k pan.Key
	switch msg.String() {
	case "h", "left":
		k = pan.ArrowLeft
	case "j", "down":
		k = pan.ArrowDown
	case "k", "up":
		k = pan.ArrowUp
	case "l", "right":
		k = pan.ArrowRight
	case "c":
		w, h := m.content.Size()
		m.flyTo(image.Pt(w/2, h/2))
		return nil
	case "esc":
		m.surface.Cancel()
		return nil
	case "ctrl+s":
		m.saving = true
		return tea.Batch(m.spinner.Tick, saveView(m.apiHost, m.surface.ScrollCenter()))
	default:
		return nil
	}

	if m.heldKey != 0 && m.heldKey != k {
		m.surface.KeyUp(m.heldKey)
	}
	m.camera.stop()
	m.surface.KeyDown(k, m.now())
	m.redraw()
	m.heldKey = k
	m.keySeq++
	seq := m.keySeq
	return tea.Tick(keyReleaseDelay, func(time.Time) tea.Msg {
		return keyReleaseMsg{seq: seq}
	})
}

func (m *mapModel) handleTap(p image.Point) {
	near := image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}.Inset(-tapRadius)
	stations := m.content.StationsIn(near)
	if len(stations) == 0 {
		m.tapped = ""
		return
	}
	best := stations[0]
	for _, s := range stations[1:] {
		if dist2(s.Point(), p) < dist2(best.Point(), p) {
			best = s
		}
	}
	m.tapped = best.Name
}

func dist2(a, b image.Point) int {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

func (m *mapModel) flyTo(p image.Point) {
	if m.surface == nil {
		return
	}
	m.surface.Stop()
	m.camera.start(m.surface.ScrollCenter(), p)
}

// step advances the camera or a running fling by one frame.
func (m *mapModel) step() {
	if m.surface == nil {
		return
	}
	if m.camera.active {
		p, _ := m.camera.step()
		m.surface.SetScrollCenter(p)
	} else {
		m.surface.Tick(m.now())
	}
	m.redraw()
}

// redraw re-rasterizes the grid when the visible region changed.
func (m *mapModel) redraw() {
	if m.surface == nil {
		return
	}
	visible := image.Rectangle{Min: m.surface.Offset(), Max: m.surface.Offset().Add(m.surface.Viewport())}
	if visible == m.drawn && len(m.renderedRows) == m.height {
		return
	}
	m.drawn = visible
	m.surface.Draw()

	inset := m.surface.Inset()
	if cap(m.renderedRows) < m.height {
		m.renderedRows = make([]string, m.height)
	}
	m.renderedRows = m.renderedRows[:m.height]
	for y := range m.renderedRows {
		m.renderedRows[y] = renderRowRLE(m.canvas, y, m.width, inset)
	}
}

func (m *mapModel) View() string {
	var s strings.Builder

	name := "loading…"
	if m.content != nil {
		name = m.content.Name
	}
	title := titleStyle.Render("metroview • " + name)
	if m.saving {
		title += fmt.Sprintf(" %s", m.spinner.View())
	}

	statusText := ""
	if m.surface != nil {
		c := m.surface.ScrollCenter()
		statusText = fmt.Sprintf("View: (%d,%d) • %s • Snap: %s • %s",
			c.X, c.Y,
			m.surface.Phase(),
			m.surface.Snap(),
			flingStatus(m.surface.Flinging()))
	}
	status := statusStyle.Render(statusText)

	availableWidth := m.termWidth - 2
	titleWidth := lipgloss.Width(title)

	headerWithPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(m.termWidth)

	headerContent := lipgloss.JoinHorizontal(lipgloss.Top,
		title,
		lipgloss.NewStyle().Width(max(availableWidth-titleWidth-lipgloss.Width(status), 0)).Render(""),
		status)

	s.WriteString(headerWithPadding.Render(headerContent))
	s.WriteString("\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.tapped != "":
		s.WriteString(stationStyle.Render("◆ " + m.tapped))
	default:
		s.WriteString(hintStyle.Render("[?] Help • [/] Stations • [c] Centre • [ctrl+s] Save view"))
	}
	s.WriteString("\n")

	rows := m.renderedRows
	if len(rows) == 0 {
		rows = []string{""}
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	grid = lipgloss.NewStyle().Width(m.width * 2).Height(m.height).Render(grid)
	s.WriteString(frameStyle.Render(grid))

	return s.String()
}
