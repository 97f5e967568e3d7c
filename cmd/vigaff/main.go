// Package main provides the CLI entrypoint for vigaff.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigaff/internal/attack"
	"github.com/verte-zerg/vigaff/internal/bench"
	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/config"
	"github.com/verte-zerg/vigaff/internal/generator"
	"github.com/verte-zerg/vigaff/internal/model"
	"github.com/verte-zerg/vigaff/internal/report"
	"github.com/verte-zerg/vigaff/internal/store"
	"github.com/verte-zerg/vigaff/internal/tui"
)

var (
	outputFormat string
	dbPath       string
	configPath   string

	workbenchDict string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vigaff",
		Short:         "Vigenère + Affine cipher workbench and cryptanalysis tools",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runWorkbenchCmd,
	}

	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "dictionary database path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: XDG config dir)")
	rootCmd.Flags().StringVar(&workbenchDict, "dict", "", "stored dictionary used as brute-force guesses")

	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newDecryptCmd())
	rootCmd.AddCommand(newFreqCmd())
	rootCmd.AddCommand(newKnownCmd())
	rootCmd.AddCommand(newBruteCmd())
	rootCmd.AddCommand(newAffineCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newDictCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func runWorkbenchCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "dict", &workbenchDict, fileCfg.Attack.Dictionary)

	opts := tui.Options{
		Cipher: model.CipherConfig{
			Key:       valueOr(fileCfg.Cipher.Key, ""),
			Params:    cipher.AffineParams{A: valueOr(fileCfg.Cipher.A, bench.DefaultParams.A), B: valueOr(fileCfg.Cipher.B, bench.DefaultParams.B)},
			MinKeyLen: valueOr(fileCfg.Cipher.MinKeyLen, cipher.MinKeyLength),
		},
		Attack: model.AttackConfig{
			MaxKeyLen:  valueOr(fileCfg.Attack.MaxKeyLen, attack.DefaultMaxKeyLen),
			Top:        valueOr(fileCfg.Attack.Top, attack.DefaultTop),
			Threshold:  valueOr(fileCfg.Attack.Threshold, 0),
			Dictionary: workbenchDict,
		},
		Bench: bench.Options{
			Config: model.BenchConfig{
				Key:     valueOr(fileCfg.Cipher.Key, bench.DefaultKey),
				Sizes:   fileCfg.Bench.Sizes,
				Repeats: valueOr(fileCfg.Bench.Repeats, bench.DefaultRepeats),
			},
		},
		Gen: generator.New(),
	}
	if workbenchDict != "" {
		keys, err := dictionaryKeys(cmd.Context(), workbenchDict)
		if err != nil {
			logErrf("failed to load dictionary %q: %v\n", workbenchDict, err)
		} else {
			opts.Guesses = keys
		}
	}

	program := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := resolvedConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func loadConfig() (config.FileConfig, error) {
	cfg, err := config.LoadConfig(resolvedConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

// dictionaryKeys loads every key stored under name.
func dictionaryKeys(ctx context.Context, name string) ([]string, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer closeStore(st)
	return st.Keys(ctx, name, 0)
}

// readInput returns the text of --in, the positional args or stdin, in that
// order of preference.
func readInput(cmd *cobra.Command, inPath string, args []string) (string, error) {
	if inPath != "" {
		data, err := os.ReadFile(inPath)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// writeResult encodes v for json/yaml, or calls text for the text format.
func writeResult(w io.Writer, v any, text func(io.Writer) error) error {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if format == report.FormatText {
		return text(w)
	}
	return report.Encode(w, format, v)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntSliceConfig(cmd *cobra.Command, name string, target *[]int, value []int) {
	if len(value) == 0 {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if len(value) == 0 {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func valueOr[T any](value *T, def T) T {
	if value == nil {
		return def
	}
	return *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vigaff configuration
# Uncomment a value to enable it. CLI flags override config values.

[cipher]
# key = %q      # Vigenère key (letters only count)
# a = %d                    # Affine multiplier, coprime with 26
# b = %d                    # Affine offset (0-25)
# min-key-len = %d         # Shortest accepted key

[attack]
# max-key-len = %d         # Longest heuristic key tried by brute
# top = %d                 # Candidates shown
# threshold = 0.0          # Drop candidates with a higher chi-squared (0 disables)
# dictionary = "common"    # Stored dictionary used as brute-force guesses

[bench]
# sizes = %s
# repeats = %d

[server]
# addr = %q
# allow-origins = ["http://localhost:5173"]
`,
		bench.DefaultKey,
		bench.DefaultParams.A,
		bench.DefaultParams.B,
		cipher.MinKeyLength,
		attack.DefaultMaxKeyLen,
		attack.DefaultTop,
		tomlInts(bench.DefaultSizes),
		bench.DefaultRepeats,
		defaultServeAddr,
	)
}

func tomlInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
