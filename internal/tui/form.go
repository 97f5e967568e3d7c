package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vigaff/internal/attack"
	"github.com/verte-zerg/vigaff/internal/bench"
	"github.com/verte-zerg/vigaff/internal/cipher"
)

func (m *Model) initInputs() {
	m.plainArea = newTextArea("Text to encrypt or decrypt")
	m.cipherArea = newTextArea("Ciphertext to analyse")

	m.keyInput = newInput("Key: ", "at least 10 letters")
	m.aInput = newInput("a: ", "coprime with 26")
	m.bInput = newInput("b: ", "0-25")
	m.keyInput.SetValue(m.opts.Cipher.Key)
	params := m.opts.Cipher.Params
	if params == (cipher.AffineParams{}) {
		params = bench.DefaultParams
	}
	m.aInput.SetValue(strconv.Itoa(params.A))
	m.bInput.SetValue(strconv.Itoa(params.B))

	m.fragmentInput = newInput("Known plaintext: ", "a fragment of at least 4 letters")
	m.maxKeyInput = newInput("Max key length: ", "")
	m.topInput = newInput("Top: ", "")
	maxKeyLen := m.opts.Attack.MaxKeyLen
	if maxKeyLen <= 0 {
		maxKeyLen = attack.DefaultMaxKeyLen
	}
	top := m.opts.Attack.Top
	if top <= 0 {
		top = attack.DefaultTop
	}
	m.maxKeyInput.SetValue(strconv.Itoa(maxKeyLen))
	m.topInput.SetValue(strconv.Itoa(top))

	m.sizesInput = newInput("Sizes: ", "comma separated")
	m.repeatsInput = newInput("Repeats: ", "")
	sizes := m.opts.Bench.Config.Sizes
	if len(sizes) == 0 {
		sizes = bench.DefaultSizes
	}
	m.sizesInput.SetValue(joinInts(sizes))
	repeats := m.opts.Bench.Config.Repeats
	if repeats <= 0 {
		repeats = bench.DefaultRepeats
	}
	m.repeatsInput.SetValue(strconv.Itoa(repeats))
}

func newTextArea(placeholder string) textarea.Model {
	area := textarea.New()
	area.Placeholder = placeholder
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.SetHeight(areaHeight)
	return area
}

func newInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) inputs() []*textinput.Model {
	return []*textinput.Model{
		&m.keyInput, &m.aInput, &m.bInput,
		&m.fragmentInput, &m.maxKeyInput, &m.topInput,
		&m.sizesInput, &m.repeatsInput,
	}
}

func (m *Model) focusCount(tab int) int {
	switch tab {
	case tabCipher:
		return 4
	case tabAttack:
		if m.showTable() {
			return 5
		}
		return 4
	default:
		return 2
	}
}

// setFocus moves the focus ring of tab to idx, wrapping at both ends.
func (m *Model) setFocus(tab, idx int) tea.Cmd {
	count := m.focusCount(tab)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.focus[tab] = idx
	m.blurTab(tab)
	switch tab {
	case tabCipher:
		switch idx {
		case 0:
			return m.plainArea.Focus()
		case 1:
			return focusInput(&m.keyInput)
		case 2:
			return focusInput(&m.aInput)
		default:
			return focusInput(&m.bInput)
		}
	case tabAttack:
		switch idx {
		case 0:
			return m.cipherArea.Focus()
		case 1:
			return focusInput(&m.fragmentInput)
		case 2:
			return focusInput(&m.maxKeyInput)
		case 3:
			return focusInput(&m.topInput)
		default:
			m.candTable.Focus()
			return nil
		}
	default:
		if idx == 0 {
			return focusInput(&m.sizesInput)
		}
		return focusInput(&m.repeatsInput)
	}
}

func focusInput(input *textinput.Model) tea.Cmd {
	input.PromptStyle = focusedLabel
	return input.Focus()
}

func blurInputs(inputs ...*textinput.Model) {
	for _, input := range inputs {
		input.PromptStyle = lipgloss.NewStyle()
		input.Blur()
	}
}

func (m *Model) blurTab(tab int) {
	switch tab {
	case tabCipher:
		m.plainArea.Blur()
		blurInputs(&m.keyInput, &m.aInput, &m.bInput)
	case tabAttack:
		m.cipherArea.Blur()
		m.candTable.Blur()
		blurInputs(&m.fragmentInput, &m.maxKeyInput, &m.topInput)
	default:
		blurInputs(&m.sizesInput, &m.repeatsInput)
	}
}

// updateFocused forwards msg to whichever field owns the focus.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	idx := m.focus[m.activeTab]
	switch m.activeTab {
	case tabCipher:
		switch idx {
		case 0:
			m.plainArea, cmd = m.plainArea.Update(msg)
		case 1:
			m.keyInput, cmd = m.keyInput.Update(msg)
		case 2:
			m.aInput, cmd = m.aInput.Update(msg)
		default:
			m.bInput, cmd = m.bInput.Update(msg)
		}
	case tabAttack:
		switch idx {
		case 0:
			m.cipherArea, cmd = m.cipherArea.Update(msg)
		case 1:
			m.fragmentInput, cmd = m.fragmentInput.Update(msg)
		case 2:
			m.maxKeyInput, cmd = m.maxKeyInput.Update(msg)
		case 3:
			m.topInput, cmd = m.topInput.Update(msg)
		default:
			m.candTable, cmd = m.candTable.Update(msg)
			m.renderOutputs()
		}
	default:
		if idx == 0 {
			m.sizesInput, cmd = m.sizesInput.Update(msg)
		} else {
			m.repeatsInput, cmd = m.repeatsInput.Update(msg)
		}
	}
	return cmd
}

func (m *Model) renderForm(tab int) string {
	var lines []string
	switch tab {
	case tabCipher:
		lines = []string{
			headerStyle.Render("Vigenère then Affine. Non-letters pass through and do not advance the key."),
			m.plainArea.View(),
			m.keyInput.View(),
			m.aInput.View() + "   " + m.bInput.View(),
		}
	case tabAttack:
		lines = []string{
			headerStyle.Render("Frequency analysis, known plaintext and brute force."),
			m.cipherArea.View(),
			m.fragmentInput.View(),
			m.maxKeyInput.View() + "   " + m.topInput.View(),
		}
	default:
		lines = []string{
			headerStyle.Render("Combined cipher against Vigenère alone, averaged per input size."),
			m.sizesInput.View(),
			m.repeatsInput.View(),
		}
	}
	return strings.Join(lines, "\n")
}

// intField parses an integer input; empty falls back to def.
func intField(name, value string, def int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (use an integer)", name)
	}
	return n, nil
}

func parseSizes(value string) ([]int, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, nil
	}
	sizes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid size %q (use positive integers)", f)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
