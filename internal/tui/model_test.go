package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/engine"
	"github.com/verte-zerg/vigaff/internal/generator"
	"github.com/verte-zerg/vigaff/internal/model"
)

const sample = "It was the best of times, it was the worst of times, it was the age of wisdom, " +
	"it was the age of foolishness, it was the epoch of belief, it was the epoch of incredulity, " +
	"it was the season of Light, it was the season of Darkness, it was the spring of hope, " +
	"it was the winter of despair, we had everything before us, we had nothing before us."

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(Options{
		Cipher: model.CipherConfig{Key: "LEMONLEMONLE", Params: cipher.AffineParams{A: 5, B: 8}},
		Gen:    generator.NewSeeded(1),
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 48})
	return m
}

// execute runs cmd synchronously and feeds result messages back into m.
func execute(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		batch = tea.BatchMsg{func() tea.Msg { return msg }}
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		switch out := c().(type) {
		case responseMsg, benchMsg:
			m.Update(out)
		}
	}
}

func TestCipherEncryptAndSend(t *testing.T) {
	m := newTestModel(t)
	m.plainArea.SetValue("Attack at Dawn")
	execute(t, m, m.runCipher(engine.KindEncrypt))
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if m.cipherOut == nil || m.cipherOut.Text != "Lthafj ch Pvrp" {
		t.Fatalf("unexpected cipher output: %+v", m.cipherOut)
	}
	if m.running != "" {
		t.Fatalf("expected the action to finish, still running %q", m.running)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.activeTab != tabAttack {
		t.Fatalf("expected attack tab after sending, got %d", m.activeTab)
	}
	if m.cipherArea.Value() != "Lthafj ch Pvrp" {
		t.Fatalf("unexpected attack text %q", m.cipherArea.Value())
	}
}

func TestCipherInputErrors(t *testing.T) {
	m := newTestModel(t)
	m.plainArea.SetValue("Attack at Dawn")
	m.aInput.SetValue("x")
	if cmd := m.runCipher(engine.KindEncrypt); cmd != nil {
		t.Fatalf("expected no command for an invalid field")
	}
	if !strings.Contains(m.errMsg, "invalid a") {
		t.Fatalf("unexpected error message %q", m.errMsg)
	}

	m.aInput.SetValue("5")
	m.keyInput.SetValue("SHORT")
	execute(t, m, m.runCipher(engine.KindEncrypt))
	if m.errMsg == "" || m.cipherOut != nil {
		t.Fatalf("expected a key error, got %q and %+v", m.errMsg, m.cipherOut)
	}
}

func TestTabNavigation(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyF2})
	if m.activeTab != tabAttack {
		t.Fatalf("expected attack tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.activeTab != tabBench {
		t.Fatalf("expected efficiency tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.activeTab != tabCipher {
		t.Fatalf("expected tabs to wrap, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus[tabCipher] != 3 {
		t.Fatalf("expected focus to wrap to the last field, got %d", m.focus[tabCipher])
	}
	view := m.View()
	for _, label := range []string{"F1 Cipher", "F2 Attack", "F3 Efficiency"} {
		if !strings.Contains(view, label) {
			t.Fatalf("view missing tab %q", label)
		}
	}
}

func TestAttackBruteFillsTable(t *testing.T) {
	m := newTestModel(t)
	ct, err := cipher.Encrypt(sample, "LEMONLEMON", cipher.AffineParams{A: 5, B: 8})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	m.switchTab(tabAttack)
	m.cipherArea.SetValue(ct)
	m.maxKeyInput.SetValue("6")
	m.topInput.SetValue("3")
	execute(t, m, m.runAttack(engine.KindBrute))
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if !m.showTable() || len(m.candTable.Rows()) != 3 {
		t.Fatalf("expected 3 candidate rows")
	}
	if m.focusCount(tabAttack) != 5 {
		t.Fatalf("expected the table to join the focus ring")
	}
	out := m.renderAttackOutput(120)
	if !strings.Contains(out, "key LEMON") {
		t.Fatalf("expected best key in output: %s", out)
	}

	execute(t, m, m.runAttack(engine.KindFrequency))
	if m.showTable() || m.attackOut.Frequency == nil {
		t.Fatalf("expected a frequency report without candidates")
	}
}

func TestAttackKnownMarksFragment(t *testing.T) {
	m := newTestModel(t)
	ct, err := cipher.Encrypt(sample, "LEMONLEMONLE", cipher.AffineParams{A: 3, B: 7})
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	m.cipherArea.SetValue(ct)
	m.fragmentInput.SetValue("It was the best of times, it was the worst")
	execute(t, m, m.runAttack(engine.KindKnown))
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if m.attackOut == nil || m.attackOut.Known == nil {
		t.Fatalf("expected a known-plaintext result")
	}
	if got := m.attackOut.Known.Best.Params; got != (cipher.AffineParams{A: 3, B: 7}) {
		t.Fatalf("unexpected params %v", got)
	}

	m.fragmentInput.SetValue("abc")
	execute(t, m, m.runAttack(engine.KindKnown))
	if m.errMsg == "" {
		t.Fatalf("expected a short fragment error")
	}
}

func TestStaleResultsAreDropped(t *testing.T) {
	m := newTestModel(t)
	m.running = "brute"
	m.runID = "current"
	m.Update(responseMsg{id: "old", tab: tabCipher, resp: engine.Response{Text: "stale"}})
	if m.cipherOut != nil || m.running != "brute" {
		t.Fatalf("expected the stale result to be ignored")
	}
}

func TestFooterShowsRunningAndErrors(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(m.renderFooter(), "Encrypt: ctrl+e") {
		t.Fatalf("expected cipher help in footer: %s", m.renderFooter())
	}
	m.running = "brute"
	m.errMsg = "boom"
	out := m.renderFooter()
	if !strings.Contains(out, "Running brute") || !strings.Contains(out, "boom") {
		t.Fatalf("footer missing expected segments: %s", out)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.running != "" || m.errMsg != "cancelled" {
		t.Fatalf("expected esc to cancel, got running %q error %q", m.running, m.errMsg)
	}
}

func TestBenchRun(t *testing.T) {
	m := newTestModel(t)
	m.switchTab(tabBench)
	m.sizesInput.SetValue("10, 20")
	m.repeatsInput.SetValue("1")
	execute(t, m, m.runBench())
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if len(m.benchRows) != 2 || m.benchRows[1].Size != 20 {
		t.Fatalf("unexpected bench rows: %+v", m.benchRows)
	}

	m.sizesInput.SetValue("10,x")
	if cmd := m.runBench(); cmd != nil {
		t.Fatalf("expected no command for invalid sizes")
	}
	if !strings.Contains(m.errMsg, "invalid size") {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
}
