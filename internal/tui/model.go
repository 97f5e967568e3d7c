// Package tui provides the Bubble Tea cipher workbench.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vigaff/internal/bench"
	"github.com/verte-zerg/vigaff/internal/engine"
	"github.com/verte-zerg/vigaff/internal/generator"
	"github.com/verte-zerg/vigaff/internal/model"
)

const (
	tabCipher = iota
	tabAttack
	tabBench
)

const (
	areaHeight   = 5
	randomKeyLen = 12
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	letterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	markStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	focusedLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Options seeds the workbench fields.
type Options struct {
	Cipher model.CipherConfig
	Attack model.AttackConfig
	// Guesses are dictionary keys added to every brute-force run.
	Guesses []string
	Bench   bench.Options
	Gen     *generator.Generator
}

// Model implements the Bubble Tea workbench.
type Model struct {
	opts Options
	gen  *generator.Generator

	tabs      []string
	activeTab int
	focus     []int
	viewports []viewport.Model

	width  int
	height int

	plainArea textarea.Model
	keyInput  textinput.Model
	aInput    textinput.Model
	bInput    textinput.Model
	cipherOut *engine.Response

	cipherArea    textarea.Model
	fragmentInput textinput.Model
	maxKeyInput   textinput.Model
	topInput      textinput.Model
	attackOut     *engine.Response
	candTable     table.Model

	sizesInput   textinput.Model
	repeatsInput textinput.Model
	benchRows    []model.BenchRow

	spinner spinner.Model
	running string
	runID   string
	cancel  context.CancelFunc
	errMsg  string
}

// NewModel constructs the workbench model.
func NewModel(opts Options) *Model {
	gen := opts.Gen
	if gen == nil {
		gen = generator.New()
	}
	m := &Model{
		opts:      opts,
		gen:       gen,
		tabs:      []string{"Cipher", "Attack", "Efficiency"},
		focus:     make([]int, 3),
		viewports: []viewport.Model{viewport.New(0, 0), viewport.New(0, 0), viewport.New(0, 0)},
	}
	m.initInputs()
	m.candTable = buildCandidateTable(nil, 0, 1)
	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = markStyle
	m.renderOutputs()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.setFocus(tabCipher, 0))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOutputs()
		return m, nil
	case spinner.TickMsg:
		if m.running == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case responseMsg:
		m.applyResponse(msg)
		return m, nil
	case benchMsg:
		m.applyBench(msg)
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		m.stop()
		return m, tea.Quit
	case "esc":
		if m.running != "" {
			m.stop()
			m.setError(context.Canceled)
			return m, nil
		}
		m.setError(nil)
		return m, nil
	case "f1":
		return m, m.switchTab(tabCipher)
	case "f2":
		return m, m.switchTab(tabAttack)
	case "f3":
		return m, m.switchTab(tabBench)
	case "ctrl+t":
		return m, m.switchTab((m.activeTab + 1) % len(m.tabs))
	case "tab":
		return m, m.setFocus(m.activeTab, m.focus[m.activeTab]+1)
	case "shift+tab":
		return m, m.setFocus(m.activeTab, m.focus[m.activeTab]-1)
	case "pgup", "pgdown":
		vp := m.viewports[m.activeTab]
		var cmd tea.Cmd
		vp, cmd = vp.Update(msg)
		m.viewports[m.activeTab] = vp
		return m, cmd
	}
	if cmd, ok := m.action(msg.String()); ok {
		return m, cmd
	}
	return m, m.updateFocused(msg)
}

// action runs the shortcut bound to key on the active tab.
func (m *Model) action(key string) (tea.Cmd, bool) {
	switch m.activeTab {
	case tabCipher:
		switch key {
		case "ctrl+e":
			return m.runCipher(engine.KindEncrypt), true
		case "ctrl+d":
			return m.runCipher(engine.KindDecrypt), true
		case "ctrl+n":
			m.keyInput.SetValue(m.gen.Key(max(randomKeyLen, m.opts.Cipher.MinKeyLen)))
			return nil, true
		case "ctrl+s":
			return m.sendToAttack(), true
		}
	case tabAttack:
		switch key {
		case "ctrl+f":
			return m.runAttack(engine.KindFrequency), true
		case "ctrl+k":
			return m.runAttack(engine.KindKnown), true
		case "ctrl+b":
			return m.runAttack(engine.KindBrute), true
		case "ctrl+g":
			return m.runAttack(engine.KindAffine), true
		}
	case tabBench:
		switch key {
		case "ctrl+r", "enter":
			return m.runBench(), true
		}
	}
	return nil, false
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X"))
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	for _, area := range []*textarea.Model{&m.plainArea, &m.cipherArea} {
		area.SetWidth(m.width)
		area.SetHeight(areaHeight)
	}
	for _, input := range m.inputs() {
		input.Width = max(10, m.width-lipgloss.Width(input.Prompt)-2)
	}
	_, bodyHeight, _ := m.layoutHeights()
	for tab := range m.viewports {
		outHeight := max(1, bodyHeight-lipgloss.Height(m.renderForm(tab))-1)
		if tab == tabAttack && m.showTable() {
			tableHeight := max(3, outHeight/2)
			m.candTable.SetWidth(m.width)
			m.candTable.SetHeight(tableHeight)
			outHeight = max(1, outHeight-tableHeight-1)
		}
		m.viewports[tab].Width = m.width
		m.viewports[tab].Height = outHeight
	}
}

func (m *Model) switchTab(tab int) tea.Cmd {
	if tab == m.activeTab {
		return nil
	}
	m.blurTab(m.activeTab)
	m.activeTab = tab
	return m.setFocus(tab, m.focus[tab])
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := fmt.Sprintf("F%d %s", i+1, tab)
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	parts := []string{m.renderForm(m.activeTab), ""}
	if m.activeTab == tabAttack && m.showTable() {
		parts = append(parts, m.candTable.View(), "")
	}
	parts = append(parts, m.viewports[m.activeTab].View())
	return strings.Join(parts, "\n")
}

func (m *Model) renderFooter() string {
	var help string
	switch m.activeTab {
	case tabCipher:
		help = "Encrypt: ctrl+e  Decrypt: ctrl+d  Random key: ctrl+n  Send to attack: ctrl+s"
	case tabAttack:
		help = "Frequency: ctrl+f  Known: ctrl+k  Brute: ctrl+b  Affine only: ctrl+g"
	case tabBench:
		help = "Run: enter"
	}
	segments := []string{help, "Fields: tab  Tabs: F1-F3  Quit: ctrl+c"}
	if m.running != "" {
		segments = []string{fmt.Sprintf("%s Running %s  Cancel: esc", m.spinner.View(), m.running)}
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.errMsg != "" {
		footer += "\n" + errorStyle.Render(m.errMsg)
	}
	return footer
}

func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.running = ""
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
