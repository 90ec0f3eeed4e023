package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/landsim/internal/storage"
)

const (
	sceneWidth  = 24
	sceneHeight = 20
	frameRate   = time.Second / 30
	maxSpeed    = 16
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Replay plays a recorded flight back frame by frame.
type Replay struct {
	title  string
	frames []storage.Snapshot
	apex   float64
	fuel0  float64

	pos      int
	playing  bool
	speed    int
	showHelp bool
	canvas   *Canvas
}

func NewReplay(title string, frames []storage.Snapshot) Replay {
	m := Replay{
		title:   title,
		frames:  frames,
		playing: len(frames) > 1,
		speed:   1,
		canvas:  NewCanvas(sceneWidth, sceneHeight),
	}
	for _, f := range frames {
		m.apex = max(m.apex, f.PosZ)
	}
	if len(frames) > 0 {
		m.fuel0 = frames[0].FuelMass
	}
	return m
}

func (m Replay) Init() tea.Cmd {
	return tick()
}

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if m.atEnd() {
				m.pos = 0
			}
			m.playing = !m.playing
		case "r":
			m.pos = 0
			m.playing = true
		case "[":
			m.seek(-1)
		case "]":
			m.seek(1)
		case "+", "=":
			m.speed = min(maxSpeed, m.speed*2)
		case "-", "_":
			m.speed = max(1, m.speed/2)
		case "t":
			CurrentTheme = nextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing {
			m.seek(m.speed)
		}
		return m, tick()
	}
	return m, nil
}

// seek moves the play head by n frames. Playback stops on the last frame.
func (m *Replay) seek(n int) {
	if len(m.frames) == 0 {
		return
	}
	m.pos = max(0, min(len(m.frames)-1, m.pos+n))
	if m.atEnd() {
		m.playing = false
	}
}

func (m Replay) atEnd() bool {
	return m.pos >= len(m.frames)-1
}

// Frame returns the snapshot under the play head.
func (m Replay) Frame() (storage.Snapshot, bool) {
	if len(m.frames) == 0 {
		return storage.Snapshot{}, false
	}
	return m.frames[m.pos], true
}

func (m Replay) View() string {
	f, ok := m.Frame()
	if !ok {
		return panelStyle().Render("no snapshots recorded") + "\n"
	}

	m.drawScene(f)
	scene := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(titleStyle().Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")
	s.WriteString(field("time", fmt.Sprintf("%.2f s", f.Time)) + "\n")
	s.WriteString(field("altitude", fmt.Sprintf("%.2f m", f.PosZ)) + "\n")
	s.WriteString(field("velocity", num(f.VelZ, "m/s")) + "\n")
	s.WriteString(field("acceleration", fmt.Sprintf("%.2f m/s²", f.AccZ)) + "\n")
	s.WriteString(field("throttle", fmt.Sprintf("%.1f %%", f.ThrottlePct)) + "\n")
	s.WriteString(labelStyle().Render("fuel") + ProgressBar(m.fuelFraction(f), 16) +
		valueStyle().Render(fmt.Sprintf(" %.1f kg", f.FuelMass)) + "\n\n")

	throttle := make([]float64, m.pos+1)
	for i := range throttle {
		throttle[i] = m.frames[i].ThrottlePct
	}
	s.WriteString(labelStyle().Render("throttle trace") + "\n" + Sparkline(throttle, 32) + "\n")
	s.WriteString(helpStyle().Render("SP:Play R:Restart [ ]:Step +/-:Speed T:Theme ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, panelStyle().Render(scene), panelStyle().Render(s.String()))
	if m.showHelp {
		return main + "\n" + panelStyle().Render(replayHelp)
	}
	return main
}

const replayHelp = `Space  play / pause
R      restart from apex
[ ]    step one frame
+ -    double / halve playback speed
T      cycle themes
Q      quit`

func (m Replay) status() string {
	state := "PLAYING"
	switch {
	case m.atEnd():
		state = "TOUCHDOWN"
	case !m.playing:
		state = "PAUSED"
	}
	return statusStyle("").Render(fmt.Sprintf("%s  frame %d/%d  x%d", state, m.pos+1, len(m.frames), m.speed))
}

func (m Replay) fuelFraction(f storage.Snapshot) float64 {
	if m.fuel0 <= 0 {
		return 0
	}
	return f.FuelMass / m.fuel0
}

// drawScene paints the ground, the vehicle at its altitude and an exhaust
// plume proportional to the throttle.
func (m Replay) drawScene(f storage.Snapshot) {
	c := m.canvas
	c.Clear()
	w, h := c.Dots()
	ground := h - 1
	c.Line(0, ground, w-1, ground)

	const bodyLen = 6
	frac := 0.0
	if m.apex > 0 {
		frac = max(0, min(1, f.PosZ/m.apex))
	}
	base := ground - 1 - int(frac*float64(ground-1-bodyLen))
	x := w / 2
	c.Line(x, base-bodyLen, x, base)
	c.Line(x-1, base, x+1, base)
	c.Set(x-1, base-bodyLen+1)
	c.Set(x+1, base-bodyLen+1)

	if plume := int(f.ThrottlePct / 100 * 6); plume > 0 {
		c.Line(x, base+1, x, min(ground-1, base+plume))
	}
}
