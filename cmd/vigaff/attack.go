package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigaff/internal/attack"
	"github.com/verte-zerg/vigaff/internal/config"
	"github.com/verte-zerg/vigaff/internal/engine"
	"github.com/verte-zerg/vigaff/internal/report"
	"github.com/verte-zerg/vigaff/internal/wordlist"
)

var (
	knownFragment         string
	knownAllowUnconfirmed bool
	knownTop              int
	knownIn               string

	bruteMaxKeyLen int
	bruteTop       int
	bruteThreshold float64
	bruteDict      string
	bruteGuessFile string
	bruteGuesses   []string
	bruteIn        string

	affineTop int
	affineIn  string
)

func newKnownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "known [CIPHERTEXT...]",
		Short: "Known-plaintext attack",
		RunE:  runKnownCmd,
	}
	cmd.Flags().StringVar(&knownFragment, "fragment", "", "known plaintext fragment (at least 4 letters)")
	cmd.Flags().BoolVar(&knownAllowUnconfirmed, "allow-unconfirmed", false, "accept alignments whose key fragment shows no period")
	cmd.Flags().IntVar(&knownTop, "top", 5, "alternative alignments shown")
	cmd.Flags().StringVar(&knownIn, "in", "", "read ciphertext from file instead of args/stdin")
	if err := cmd.MarkFlagRequired("fragment"); err != nil {
		logErrf("failed to mark --fragment required: %v\n", err)
	}
	return cmd
}

func runKnownCmd(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, knownIn, args)
	if err != nil {
		return err
	}
	req := engine.NewRequest(engine.KindKnown)
	req.Text = text
	req.Fragment = knownFragment
	req.AllowUnconfirmed = knownAllowUnconfirmed
	req.Top = knownTop
	resp, err := engine.Dispatch(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), resp, func(w io.Writer) error {
		return report.RenderKnown(w, resp.Known)
	})
}

func newBruteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brute [CIPHERTEXT...]",
		Short: "Brute-force every affine pair with short and guessed Vigenère keys",
		RunE:  runBruteCmd,
	}
	cmd.Flags().IntVar(&bruteMaxKeyLen, "max-key-len", attack.DefaultMaxKeyLen, "longest heuristic key length")
	cmd.Flags().IntVar(&bruteTop, "top", attack.DefaultTop, "candidates shown (0 keeps all)")
	cmd.Flags().Float64Var(&bruteThreshold, "threshold", 0, "drop candidates with a higher chi-squared (0 disables)")
	cmd.Flags().StringVar(&bruteDict, "dict", "", "stored dictionary used as guesses")
	cmd.Flags().StringVar(&bruteGuessFile, "guesses", "", "key list file used as guesses")
	cmd.Flags().StringSliceVar(&bruteGuesses, "guess", nil, "extra guessed keys")
	cmd.Flags().StringVar(&bruteIn, "in", "", "read ciphertext from file instead of args/stdin")
	return cmd
}

func runBruteCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "max-key-len", &bruteMaxKeyLen, fileCfg.Attack.MaxKeyLen)
	applyIntConfig(cmd, "top", &bruteTop, fileCfg.Attack.Top)
	applyFloatConfig(cmd, "threshold", &bruteThreshold, fileCfg.Attack.Threshold)
	applyStringConfig(cmd, "dict", &bruteDict, fileCfg.Attack.Dictionary)

	text, err := readInput(cmd, bruteIn, args)
	if err != nil {
		return err
	}
	guesses := append([]string(nil), bruteGuesses...)
	if bruteGuessFile != "" {
		keys, err := wordlist.LoadKeys(config.ResolveListPath(bruteGuessFile))
		if err != nil {
			return fmt.Errorf("failed to load guesses: %w", err)
		}
		guesses = append(guesses, keys...)
	}
	if bruteDict != "" {
		keys, err := dictionaryKeys(cmd.Context(), bruteDict)
		if err != nil {
			return fmt.Errorf("failed to load dictionary: %w", err)
		}
		guesses = append(guesses, keys...)
	}

	req := engine.NewRequest(engine.KindBrute)
	req.Text = text
	req.MaxKeyLen = bruteMaxKeyLen
	req.Top = bruteTop
	req.Threshold = bruteThreshold
	req.Guesses = guesses
	resp, err := engine.Dispatch(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), resp, func(w io.Writer) error {
		return report.RenderCandidates(w, "Brute force", resp.Candidates)
	})
}

func newAffineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "affine [CIPHERTEXT...]",
		Short: "Brute-force the affine layer only",
		RunE:  runAffineCmd,
	}
	cmd.Flags().IntVar(&affineTop, "top", attack.DefaultTop, "candidates shown (0 keeps all)")
	cmd.Flags().StringVar(&affineIn, "in", "", "read ciphertext from file instead of args/stdin")
	return cmd
}

func runAffineCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "top", &affineTop, fileCfg.Attack.Top)

	text, err := readInput(cmd, affineIn, args)
	if err != nil {
		return err
	}
	req := engine.NewRequest(engine.KindAffine)
	req.Text = text
	req.Top = affineTop
	resp, err := engine.Dispatch(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), resp, func(w io.Writer) error {
		return report.RenderCandidates(w, "Affine only", resp.Candidates)
	})
}
