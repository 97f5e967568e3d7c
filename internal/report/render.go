package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/vigaff/internal/alphabet"
	"github.com/verte-zerg/vigaff/internal/freq"
	"github.com/verte-zerg/vigaff/internal/model"
)

const (
	sparkChars      = " .:-=+*#%@"
	previewRunes    = 60
	microsPerSecond = float64(time.Second / time.Microsecond)
)

// Sparkline renders one character per value, scaled between min and max.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := minMax(values)
	if math.Abs(hi-lo) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return b.String()
}

// RenderFrequency prints the letter table sorted by count and the chi-squared
// distance from English.
func RenderFrequency(w io.Writer, rep *model.FrequencyReport) error {
	if rep == nil || rep.Total == 0 {
		_, err := fmt.Fprintln(w, "No letters found.")
		return err
	}
	english := freq.English()
	rows := make([][]string, 0, len(rep.Letters))
	observed := make([]float64, alphabet.Size)
	for _, lf := range rep.Letters {
		idx, err := alphabet.Encode(rune(lf.Letter[0]))
		if err != nil {
			continue
		}
		observed[idx] = lf.Frequency
		rows = append(rows, []string{
			lf.Letter,
			fmt.Sprintf("%d", lf.Count),
			fmt.Sprintf("%.2f%%", lf.Frequency*100),
			fmt.Sprintf("%.2f%%", english[idx]*100),
		})
	}
	lines := []string{"Letter Frequency"}
	lines = append(lines, formatTable(
		[]string{"Letter", "Count", "Percent", "English"},
		rows,
		map[int]bool{1: true, 2: true, 3: true},
	)...)
	lines = append(lines,
		"",
		fmt.Sprintf("Letters:  %d", rep.Total),
		fmt.Sprintf("Chi-squared vs English: %.2f", rep.ChiSquared),
		"          "+alphabet.Letters,
		"Observed: "+Sparkline(observed),
		"English:  "+Sparkline(english[:]),
	)
	return writeLines(w, lines)
}

// RenderCandidates prints ranked brute-force candidates.
func RenderCandidates(w io.Writer, title string, cands []model.Candidate) error {
	if len(cands) == 0 {
		_, err := fmt.Fprintln(w, "No candidates found.")
		return err
	}
	rows := make([][]string, 0, len(cands))
	for i, c := range cands {
		key := c.Key
		if key == "" {
			key = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", c.Params.A),
			fmt.Sprintf("%d", c.Params.B),
			key,
			fmt.Sprintf("%.2f", c.Score),
			Preview(c.Plaintext, previewRunes),
		})
	}
	lines := []string{title}
	lines = append(lines, formatTable(
		[]string{"#", "a", "b", "Key", "Chi2", "Plaintext"},
		rows,
		map[int]bool{0: true, 1: true, 2: true, 4: true},
	)...)
	lines = append(lines, "", "Best plaintext:", cands[0].Plaintext)
	return writeLines(w, lines)
}

// RenderKnown prints the best known-plaintext alignment and its alternatives.
func RenderKnown(w io.Writer, res *model.KnownResult) error {
	if res == nil {
		_, err := fmt.Fprintln(w, "No alignment found.")
		return err
	}
	best := res.Best
	status := "consistent"
	if !best.Consistent {
		status = "unconfirmed"
	}
	lines := []string{
		"Known-Plaintext Attack",
		fmt.Sprintf("Offsets tried: %d", res.Offsets),
		fmt.Sprintf("Best: %s at offset %d (%s)", best.Params, best.Offset, status),
		fmt.Sprintf("Key fragment: %s", best.KeyFragment),
	}
	if best.Period > 0 {
		lines = append(lines, fmt.Sprintf("Key period: %d, repeating key %s", best.Period, repeatingKey(best)))
	}
	lines = append(lines, "Plaintext:", best.Plaintext)
	if len(res.Alternatives) > 0 {
		rows := make([][]string, 0, len(res.Alternatives))
		for _, al := range res.Alternatives {
			score := "-"
			if al.Consistent {
				score = fmt.Sprintf("%.2f", al.Score)
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", al.Offset),
				fmt.Sprintf("%d", al.Params.A),
				fmt.Sprintf("%d", al.Params.B),
				al.KeyFragment,
				score,
				fmt.Sprintf("%.2f", al.KeyScore),
			})
		}
		lines = append(lines, "", "Alternatives")
		lines = append(lines, formatTable(
			[]string{"Offset", "a", "b", "Key fragment", "Chi2", "Key chi2"},
			rows,
			map[int]bool{0: true, 1: true, 2: true, 4: true, 5: true},
		)...)
	}
	return writeLines(w, lines)
}

// repeatingKey rotates the first period letters of the fragment so that they
// start at key position zero.
func repeatingKey(al model.Alignment) string {
	frag := []rune(al.KeyFragment)
	if al.Period <= 0 || al.Period > len(frag) {
		return al.KeyFragment
	}
	unit := frag[:al.Period]
	shift := al.LetterOffset % al.Period
	out := make([]rune, al.Period)
	for i := range out {
		out[(i+shift)%al.Period] = unit[i]
	}
	return string(out)
}

// RenderBench prints the timing table and, when there are several sizes, a
// plot of per-operation averages.
func RenderBench(w io.Writer, rows []model.BenchRow, plot PlotOptions) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No benchmark results.")
		return err
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		ok := "yes"
		if !r.RoundTripSame {
			ok = "NO"
		}
		cells = append(cells, []string{
			fmt.Sprintf("%d", r.Size),
			FormatDuration(r.CombinedEnc),
			FormatDuration(r.CombinedDec),
			FormatDuration(r.VigenereEnc),
			FormatDuration(r.VigenereDec),
			ok,
		})
	}
	lines := []string{"Efficiency"}
	lines = append(lines, formatTable(
		[]string{"Size", "Combined enc", "Combined dec", "Vigenère enc", "Vigenère dec", "Round trip"},
		cells,
		map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true},
	)...)
	lines = append(lines, "")
	if err := writeLines(w, lines); err != nil {
		return err
	}
	if len(rows) < 2 {
		return nil
	}
	series := []Series{
		{Name: "Combined enc", Values: micros(rows, func(r model.BenchRow) time.Duration { return r.CombinedEnc })},
		{Name: "Combined dec", Values: micros(rows, func(r model.BenchRow) time.Duration { return r.CombinedDec })},
		{Name: "Vigenère enc", Values: micros(rows, func(r model.BenchRow) time.Duration { return r.VigenereEnc })},
		{Name: "Vigenère dec", Values: micros(rows, func(r model.BenchRow) time.Duration { return r.VigenereDec })},
	}
	if plot.Unit == "" {
		plot.Unit = "µs"
	}
	return PlotSeries(w, "Time by input size", series, plot)
}

// RenderDictionaries lists stored key dictionaries.
func RenderDictionaries(w io.Writer, dicts []model.Dictionary) error {
	if len(dicts) == 0 {
		_, err := fmt.Fprintln(w, "No dictionaries found.")
		return err
	}
	rows := make([][]string, 0, len(dicts))
	for _, d := range dicts {
		rows = append(rows, []string{
			d.Name,
			fmt.Sprintf("%d", d.Keys),
			d.Source,
			d.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return writeLines(w, formatTable([]string{"Name", "Keys", "Source", "Imported"}, rows, map[int]bool{1: true}))
}

// FormatDuration prints d with microsecond precision.
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
}

// Preview shortens s to n runes on a single line.
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runeTruncate(s, n)
}

func runeTruncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}

func micros(rows []model.BenchRow, pick func(model.BenchRow) time.Duration) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = pick(r).Seconds() * microsPerSecond
	}
	return out
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
