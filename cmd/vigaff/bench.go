package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigaff/internal/bench"
	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/config"
	"github.com/verte-zerg/vigaff/internal/generator"
	"github.com/verte-zerg/vigaff/internal/model"
	"github.com/verte-zerg/vigaff/internal/report"
	"github.com/verte-zerg/vigaff/internal/wordlist"
)

var (
	benchKey     string
	benchA       int
	benchB       int
	benchSizes   []int
	benchRepeats int
	benchWords   string
	benchSeed    int64
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the combined cipher against Vigenère alone",
		Args:  cobra.NoArgs,
		RunE:  runBenchCmd,
	}
	cmd.Flags().StringVar(&benchKey, "key", bench.DefaultKey, "Vigenère key")
	cmd.Flags().IntVar(&benchA, "a", bench.DefaultParams.A, "affine multiplier (coprime with 26)")
	cmd.Flags().IntVar(&benchB, "b", bench.DefaultParams.B, "affine offset (0-25)")
	cmd.Flags().IntSliceVar(&benchSizes, "sizes", bench.DefaultSizes, "input sizes in characters")
	cmd.Flags().IntVar(&benchRepeats, "repeats", bench.DefaultRepeats, "timed runs averaged per measurement")
	cmd.Flags().StringVar(&benchWords, "words", "", "word list used for sample text (default: pangram)")
	cmd.Flags().Int64Var(&benchSeed, "seed", 0, "sample text seed (0 uses the clock)")
	return cmd
}

func runBenchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "key", &benchKey, fileCfg.Cipher.Key)
	applyIntConfig(cmd, "a", &benchA, fileCfg.Cipher.A)
	applyIntConfig(cmd, "b", &benchB, fileCfg.Cipher.B)
	applyIntSliceConfig(cmd, "sizes", &benchSizes, fileCfg.Bench.Sizes)
	applyIntConfig(cmd, "repeats", &benchRepeats, fileCfg.Bench.Repeats)

	if benchRepeats <= 0 {
		return fmt.Errorf("--repeats must be > 0")
	}
	var words []string
	if benchWords != "" {
		loaded, err := wordlist.LoadWords(config.ResolveListPath(benchWords))
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
		words = wordlist.Filter(loaded, wordlist.ASCIIWords)
		if len(words) == 0 {
			return fmt.Errorf("word list %s has no ASCII words", benchWords)
		}
	}
	gen := generator.New()
	if benchSeed != 0 {
		gen = generator.NewSeeded(benchSeed)
	}

	logErrln("Running benchmark...")
	rows, err := bench.Run(cmd.Context(), bench.Options{
		Config: model.BenchConfig{Key: benchKey, Sizes: benchSizes, Repeats: benchRepeats},
		Params: &cipher.AffineParams{A: benchA, B: benchB},
		Words:  words,
		Gen:    gen,
	})
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), rows, func(w io.Writer) error {
		return report.RenderBench(w, rows, report.PlotOptions{})
	})
}
