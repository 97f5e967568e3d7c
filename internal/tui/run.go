package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/vigaff/internal/bench"
	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/engine"
	"github.com/verte-zerg/vigaff/internal/model"
	"github.com/verte-zerg/vigaff/internal/report"
)

const previewRunes = 48

type responseMsg struct {
	id   string
	tab  int
	resp engine.Response
	err  error
}

type benchMsg struct {
	id   string
	rows []model.BenchRow
	err  error
}

func runRequest(ctx context.Context, tab int, req engine.Request) tea.Cmd {
	return func() tea.Msg {
		resp, err := engine.Dispatch(ctx, req)
		return responseMsg{id: req.ID, tab: tab, resp: resp, err: err}
	}
}

func runHarness(ctx context.Context, id string, opts bench.Options) tea.Cmd {
	return func() tea.Msg {
		rows, err := bench.Run(ctx, opts)
		return benchMsg{id: id, rows: rows, err: err}
	}
}

// start marks label as running and returns the work batched with the spinner.
// Only one action runs at a time; results carrying another id are dropped.
func (m *Model) start(label, id string, work func(ctx context.Context) tea.Cmd) tea.Cmd {
	if m.running != "" {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = label
	m.runID = id
	m.setError(nil)
	return tea.Batch(m.spinner.Tick, work(ctx))
}

func (m *Model) cipherRequest(kind engine.Kind) (engine.Request, error) {
	a, err := intField("a", m.aInput.Value(), bench.DefaultParams.A)
	if err != nil {
		return engine.Request{}, err
	}
	b, err := intField("b", m.bInput.Value(), bench.DefaultParams.B)
	if err != nil {
		return engine.Request{}, err
	}
	req := engine.NewRequest(kind)
	req.Text = m.plainArea.Value()
	req.Key = strings.TrimSpace(m.keyInput.Value())
	req.Params = cipher.AffineParams{A: a, B: b}
	req.MinKeyLen = m.opts.Cipher.MinKeyLen
	req.LettersOnly = m.opts.Cipher.LettersOnly
	return req, nil
}

func (m *Model) attackRequest(kind engine.Kind) (engine.Request, error) {
	maxKeyLen, err := intField("max key length", m.maxKeyInput.Value(), 0)
	if err != nil {
		return engine.Request{}, err
	}
	top, err := intField("top", m.topInput.Value(), 0)
	if err != nil {
		return engine.Request{}, err
	}
	req := engine.NewRequest(kind)
	req.Text = m.cipherArea.Value()
	req.Fragment = strings.TrimSpace(m.fragmentInput.Value())
	req.MaxKeyLen = maxKeyLen
	req.Top = top
	req.Threshold = m.opts.Attack.Threshold
	req.Guesses = m.opts.Guesses
	return req, nil
}

func (m *Model) benchOptions() (bench.Options, error) {
	sizes, err := parseSizes(m.sizesInput.Value())
	if err != nil {
		return bench.Options{}, err
	}
	repeats, err := intField("repeats", m.repeatsInput.Value(), 0)
	if err != nil {
		return bench.Options{}, err
	}
	opts := m.opts.Bench
	opts.Config.Sizes = sizes
	opts.Config.Repeats = repeats
	if opts.Gen == nil {
		opts.Gen = m.gen
	}
	return opts, nil
}

func (m *Model) runCipher(kind engine.Kind) tea.Cmd {
	req, err := m.cipherRequest(kind)
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.start(kind.String(), req.ID, func(ctx context.Context) tea.Cmd {
		return runRequest(ctx, tabCipher, req)
	})
}

func (m *Model) runAttack(kind engine.Kind) tea.Cmd {
	req, err := m.attackRequest(kind)
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.start(kind.String(), req.ID, func(ctx context.Context) tea.Cmd {
		return runRequest(ctx, tabAttack, req)
	})
}

func (m *Model) runBench() tea.Cmd {
	opts, err := m.benchOptions()
	if err != nil {
		m.setError(err)
		return nil
	}
	id := uuid.NewString()
	return m.start("benchmark", id, func(ctx context.Context) tea.Cmd {
		return runHarness(ctx, id, opts)
	})
}

// sendToAttack copies the last cipher result into the attack text area.
func (m *Model) sendToAttack() tea.Cmd {
	if m.cipherOut == nil || m.cipherOut.Text == "" {
		m.setError(errors.New("nothing to send; encrypt something first"))
		return nil
	}
	m.cipherArea.SetValue(m.cipherOut.Text)
	return m.switchTab(tabAttack)
}

func (m *Model) applyResponse(msg responseMsg) {
	if msg.id != m.runID {
		return
	}
	m.stop()
	if msg.err != nil {
		m.setError(msg.err)
		return
	}
	m.setError(nil)
	resp := msg.resp
	if msg.tab == tabCipher {
		m.cipherOut = &resp
	} else {
		m.attackOut = &resp
		m.candTable.SetRows(candidateRows(resp.Candidates))
		m.candTable.GotoTop()
		if !m.showTable() && m.focus[tabAttack] >= m.focusCount(tabAttack) {
			_ = m.setFocus(tabAttack, 0)
		}
	}
	m.updateLayout()
	m.renderOutputs()
}

func (m *Model) applyBench(msg benchMsg) {
	if msg.id != m.runID {
		return
	}
	m.stop()
	if msg.err != nil {
		m.setError(msg.err)
		return
	}
	m.setError(nil)
	m.benchRows = msg.rows
	m.renderOutputs()
}

// setError records err for the footer; the footer height changes with it.
func (m *Model) setError(err error) {
	switch {
	case err == nil:
		m.errMsg = ""
	case errors.Is(err, context.Canceled):
		m.errMsg = "cancelled"
	default:
		m.errMsg = err.Error()
	}
	m.updateLayout()
}

func (m *Model) showTable() bool {
	return m.attackOut != nil && len(m.attackOut.Candidates) > 0
}

func (m *Model) renderOutputs() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabCipher].SetContent(renderCipherOutput(m.cipherOut, width))
	m.viewports[tabAttack].SetContent(m.renderAttackOutput(width))
	m.viewports[tabBench].SetContent(renderBenchOutput(m.benchRows, width))
}

func renderCipherOutput(resp *engine.Response, width int) string {
	if resp == nil {
		return headerStyle.Render("No result yet.")
	}
	title := headerStyle.Render(fmt.Sprintf("%s in %s", capitalize(resp.Kind.String()), report.FormatDuration(resp.Elapsed)))
	body := wrapStyledRunes(buildStyledRunes([]rune(resp.Text), span{}), width)
	return title + "\n" + body
}

func (m *Model) renderAttackOutput(width int) string {
	resp := m.attackOut
	if resp == nil {
		return headerStyle.Render("No result yet.")
	}
	var buf bytes.Buffer
	switch {
	case resp.Frequency != nil:
		if err := report.RenderFrequency(&buf, resp.Frequency); err != nil {
			return errorStyle.Render(err.Error())
		}
		return strings.TrimRight(buf.String(), "\n")
	case resp.Known != nil:
		if err := report.RenderKnown(&buf, resp.Known); err != nil {
			return errorStyle.Render(err.Error())
		}
		text := []rune(resp.Known.Best.Plaintext)
		mark := markFor(text, m.fragmentInput.Value())
		return strings.TrimRight(buf.String(), "\n") + "\n\n" + wrapStyledRunes(buildStyledRunes(text, mark), width)
	case len(resp.Candidates) > 0:
		idx := m.candTable.Cursor()
		if idx < 0 || idx >= len(resp.Candidates) {
			idx = 0
		}
		c := resp.Candidates[idx]
		title := fmt.Sprintf("#%d  %s", idx+1, c.Params)
		if c.Key != "" {
			title += "  key " + c.Key
		}
		title += fmt.Sprintf("  score %.2f", c.Score)
		return headerStyle.Render(title) + "\n" + wrapStyledRunes(buildStyledRunes([]rune(c.Plaintext), span{}), width)
	default:
		return headerStyle.Render("No candidates passed the threshold.")
	}
}

func renderBenchOutput(rows []model.BenchRow, width int) string {
	if len(rows) == 0 {
		return headerStyle.Render("Press enter to run the benchmark.")
	}
	var buf bytes.Buffer
	opts := report.PlotOptions{Width: report.PlotWidthFor(width), ForceColor: true}
	if err := report.RenderBench(&buf, rows, opts); err != nil {
		return errorStyle.Render(err.Error())
	}
	return strings.TrimRight(buf.String(), "\n")
}

func candidateColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "a", Width: 3},
		{Title: "b", Width: 3},
		{Title: "Key", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Source", Width: 9},
		{Title: "Plaintext", Width: previewRunes},
	}
}

func candidateRows(cands []model.Candidate) []table.Row {
	rows := make([]table.Row, 0, len(cands))
	for i, c := range cands {
		key := c.Key
		if key == "" {
			key = "-"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", c.Params.A),
			fmt.Sprintf("%d", c.Params.B),
			key,
			fmt.Sprintf("%.2f", c.Score),
			c.Source,
			report.Preview(c.Plaintext, previewRunes),
		})
	}
	return rows
}

func buildCandidateTable(cands []model.Candidate, width, height int) table.Model {
	t := table.New(
		table.WithColumns(candidateColumns()),
		table.WithRows(candidateRows(cands)),
		table.WithHeight(max(1, height)),
	)
	t.SetWidth(width)
	t.SetStyles(candidateTableStyles())
	return t
}

func candidateTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
