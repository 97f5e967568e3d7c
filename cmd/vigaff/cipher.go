package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigaff/internal/bench"
	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/engine"
	"github.com/verte-zerg/vigaff/internal/report"
)

var (
	cipherKey         string
	cipherA           int
	cipherB           int
	cipherMinKeyLen   int
	cipherLettersOnly bool
	cipherIn          string
	cipherOut         string

	freqIn string
)

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [TEXT...]",
		Short: "Encrypt with Vigenère then Affine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCipherCmd(cmd, engine.KindEncrypt, args)
		},
	}
	addCipherFlags(cmd)
	cmd.Flags().BoolVar(&cipherLettersOnly, "letters-only", false, "strip non-letters and uppercase before encrypting")
	return cmd
}

func newDecryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt [TEXT...]",
		Short: "Decrypt Affine then Vigenère",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCipherCmd(cmd, engine.KindDecrypt, args)
		},
	}
	addCipherFlags(cmd)
	return cmd
}

func addCipherFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cipherKey, "key", "", "Vigenère key")
	cmd.Flags().IntVar(&cipherA, "a", bench.DefaultParams.A, "affine multiplier (coprime with 26)")
	cmd.Flags().IntVar(&cipherB, "b", bench.DefaultParams.B, "affine offset (0-25)")
	cmd.Flags().IntVar(&cipherMinKeyLen, "min-key-len", cipher.MinKeyLength, "shortest accepted key")
	cmd.Flags().StringVar(&cipherIn, "in", "", "read text from file instead of args/stdin")
	cmd.Flags().StringVar(&cipherOut, "out", "", "write the result text to file")
}

func runCipherCmd(cmd *cobra.Command, kind engine.Kind, args []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "key", &cipherKey, fileCfg.Cipher.Key)
	applyIntConfig(cmd, "a", &cipherA, fileCfg.Cipher.A)
	applyIntConfig(cmd, "b", &cipherB, fileCfg.Cipher.B)
	applyIntConfig(cmd, "min-key-len", &cipherMinKeyLen, fileCfg.Cipher.MinKeyLen)

	text, err := readInput(cmd, cipherIn, args)
	if err != nil {
		return err
	}
	req := engine.NewRequest(kind)
	req.Text = text
	req.Key = cipherKey
	req.Params = cipher.AffineParams{A: cipherA, B: cipherB}
	req.MinKeyLen = cipherMinKeyLen
	req.LettersOnly = kind == engine.KindEncrypt && cipherLettersOnly

	resp, err := engine.Dispatch(cmd.Context(), req)
	if err != nil {
		return err
	}
	if cipherOut != "" {
		if err := os.WriteFile(cipherOut, []byte(resp.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logErrf("Wrote %s\n", cipherOut)
		return nil
	}
	return writeResult(cmd.OutOrStdout(), resp, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, resp.Text)
		return err
	})
}

func newFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "freq [TEXT...]",
		Aliases: []string{"frequency"},
		Short:   "Letter frequency table and chi-squared against English",
		RunE:    runFreqCmd,
	}
	cmd.Flags().StringVar(&freqIn, "in", "", "read text from file instead of args/stdin")
	return cmd
}

func runFreqCmd(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, freqIn, args)
	if err != nil {
		return err
	}
	req := engine.NewRequest(engine.KindFrequency)
	req.Text = text
	resp, err := engine.Dispatch(cmd.Context(), req)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), resp, func(w io.Writer) error {
		return report.RenderFrequency(w, resp.Frequency)
	})
}
