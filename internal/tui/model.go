// Package tui is a terminal front end for the scroll controller. A list of
// items sits in a viewport and every movement key animates the viewport
// instead of jumping.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Rorqualx/pisces/internal/easing"
	"github.com/Rorqualx/pisces/internal/frame"
	"github.com/Rorqualx/pisces/internal/scroll"
)

// Lines taken by the header, status line and help below the viewport,
// plus the viewport border.
const chromeHeight = 6

// frameSource is a scheduler the model flushes itself on every tick.
type frameSource interface {
	frame.Scheduler
	Flush(now time.Duration) int
	Len() int
}

// PresetResolver turns a preset name into controller options.
type PresetResolver interface {
	Resolve(name string) ([]scroll.Option, error)
}

// frameMsg asks the model to deliver one frame.
type frameMsg struct{}

// Options configures a Model.
type Options struct {
	// Items are the list lines. Empty means a numbered placeholder list.
	Items []string
	// FrameInterval is the tick between frames.
	FrameInterval time.Duration
	// Duration and Easing are the initial controller settings.
	Duration time.Duration
	Easing   string
	// Presets resolves the names in PresetNames. Optional.
	Presets     PresetResolver
	PresetNames []string
	// Logger receives controller output. Defaults to the global logger.
	Logger *zerolog.Logger
	// frames overrides the scheduler in tests.
	frames frameSource
}

// Model is the bubbletea model. It must not be copied after NewModel.
type Model struct {
	vp       viewport.Model
	box      *listBox
	ctrl     *scroll.Controller
	frames   frameSource
	interval time.Duration

	presets     PresetResolver
	presetNames []string
	presetIdx   int
	easings     []string
	easingIdx   int
	easingName  string

	keys    keyMap
	help    help.Model
	ticking bool

	status string
	err    error
	width  int
	height int
}

// NewModel builds a model around opts.Items.
func NewModel(opts Options) *Model {
	items := opts.Items
	if len(items) == 0 {
		items = placeholderItems(100)
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = frame.DefaultInterval
	}
	frames := opts.frames
	if frames == nil {
		frames = frame.NewLoop(interval)
	}

	m := &Model{
		vp:          viewport.New(80, 20),
		frames:      frames,
		interval:    interval,
		presets:     opts.Presets,
		presetNames: opts.PresetNames,
		presetIdx:   -1,
		easings:     easing.Names(),
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	m.vp.SetContent(renderItems(items))
	m.box = newListBox(&m.vp, items)

	ctrlOpts := []scroll.Option{scroll.WithDuration(opts.Duration)}
	m.easingName = "default"
	if fn, ok := easing.Lookup(opts.Easing); ok {
		ctrlOpts = append(ctrlOpts, scroll.WithEasing(fn))
		m.easingName = opts.Easing
	}
	m.easingIdx = m.indexOfEasing(m.easingName)
	m.ctrl = scroll.New(m.box, frames, ctrlOpts...)
	if opts.Logger != nil {
		m.ctrl.SetLogger(*opts.Logger)
	}
	return m
}

// Controller returns the controller driving the viewport.
func (m *Model) Controller() *scroll.Controller {
	return m.ctrl
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case frameMsg:
		m.frames.Flush(m.frames.Now())
		if m.frames.Len() > 0 {
			return m, m.tick()
		}
		m.ticking = false
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.Cancel()
		m.status = "cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Up):
		err = m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		err = m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		err = m.scrollBy(-float64(m.vp.Height))
	case key.Matches(msg, m.keys.PageDown):
		err = m.scrollBy(float64(m.vp.Height))
	case key.Matches(msg, m.keys.Top):
		err = m.ctrl.ScrollToTop()
	case key.Matches(msg, m.keys.Bottom):
		err = m.ctrl.ScrollToBottom()
	case key.Matches(msg, m.keys.Next):
		err = m.scrollToItem(m.box.current() + 1)
	case key.Matches(msg, m.keys.Prev):
		err = m.scrollToItem(m.box.current() - 1)
	case key.Matches(msg, m.keys.Jump):
		err = m.jump(msg.String())
	case key.Matches(msg, m.keys.Easing):
		m.cycleEasing()
		return m, nil
	case key.Matches(msg, m.keys.NextPreset):
		err = m.cyclePreset(1)
	case key.Matches(msg, m.keys.PrevPreset):
		err = m.cyclePreset(-1)
	default:
		return m, nil
	}

	m.err = err
	return m, m.startTicking()
}

// scrollBy animates by delta lines.
func (m *Model) scrollBy(delta float64) error {
	return m.ctrl.ScrollToPosition(scroll.Position{Y: scroll.By(delta)})
}

// scrollToItem animates to the 0-based item i. Out-of-range items are
// reported like any other missing target.
func (m *Model) scrollToItem(i int) error {
	if it := m.box.item(i); it != nil {
		return m.ctrl.ScrollToElement(it)
	}
	return m.ctrl.ScrollToElement(nil)
}

// jump maps digit d to item d*10, and 0 to the first item.
func (m *Model) jump(digit string) error {
	n := int(digit[0] - '0')
	if n == 0 {
		return m.ctrl.ScrollTo("#1")
	}
	return m.ctrl.ScrollTo(fmt.Sprintf("#%d", n*10))
}

func (m *Model) cycleEasing() {
	m.easingIdx = (m.easingIdx + 1) % len(m.easings)
	name := m.easings[m.easingIdx]
	fn, _ := easing.Lookup(name)
	m.ctrl.Set(scroll.WithEasing(fn))
	m.easingName = name
	m.status = "easing " + name
	m.err = nil
}

func (m *Model) cyclePreset(step int) error {
	if m.presets == nil || len(m.presetNames) == 0 {
		m.status = "no presets loaded"
		return nil
	}
	n := len(m.presetNames)
	m.presetIdx = ((m.presetIdx+step)%n + n) % n
	name := m.presetNames[m.presetIdx]

	opts, err := m.presets.Resolve(name)
	if err != nil {
		return err
	}
	m.ctrl.Set(opts...)
	m.easingName = "preset " + name
	m.status = "preset " + name
	return nil
}

func (m *Model) indexOfEasing(name string) int {
	for i, cand := range m.easings {
		if strings.EqualFold(cand, name) {
			return i
		}
	}
	return -1
}

// startTicking starts the frame tick unless it is already running.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking || m.frames.Len() == 0 {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.vp.Width = max(width-2, 10)
	m.vp.Height = max(height-chromeHeight, 3)

	// Re-clamp against the new bounds.
	if err := m.box.SetScrollOffset(scroll.Point{Y: m.box.y}); err != nil {
		log.Debug().Err(err).Msg("Resync viewport")
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("Pisces")

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Render(m.vp.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		body,
		m.statusLine(),
		m.help.View(m.keys),
	)
}

func (m *Model) statusLine() string {
	opts := m.ctrl.Options()
	parts := []string{
		fmt.Sprintf("line %d/%d", m.box.current()+1, len(m.box.items)),
		"easing " + m.easingName,
		"duration " + opts.Duration.String(),
	}
	if m.presetIdx >= 0 {
		parts = append(parts, "preset "+m.presetNames[m.presetIdx])
	}
	if m.ctrl.Running() {
		parts = append(parts, "scrolling")
	}

	line := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(parts, " · "))
	switch {
	case m.err != nil:
		line += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Render(m.err.Error())
	case m.status != "":
		line += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(m.status)
	}
	return line
}

func renderItems(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d  %s", i+1, item)
	}
	return b.String()
}

func placeholderItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("Item %d", i+1)
	}
	return items
}
