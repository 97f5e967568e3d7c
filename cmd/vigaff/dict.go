package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/vigaff/internal/config"
	"github.com/verte-zerg/vigaff/internal/report"
	"github.com/verte-zerg/vigaff/internal/wordlist"
)

var dictMaxLen int

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage stored key dictionaries",
	}

	importCmd := &cobra.Command{
		Use:   "import NAME FILE",
		Short: "Import a key list, replacing any dictionary with the same name",
		Args:  cobra.ExactArgs(2),
		RunE:  runDictImportCmd,
	}
	importCmd.Flags().IntVar(&dictMaxLen, "max-len", 0, "skip keys longer than this (0 keeps all)")

	cmd.AddCommand(importCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored dictionaries",
		Args:  cobra.NoArgs,
		RunE:  runDictListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Delete a stored dictionary",
		Args:    cobra.ExactArgs(1),
		RunE:    runDictRmCmd,
	})
	return cmd
}

func runDictImportCmd(cmd *cobra.Command, args []string) error {
	name := args[0]
	path := config.ResolveListPath(args[1])
	keys, err := wordlist.LoadKeys(path)
	if err != nil {
		return fmt.Errorf("failed to load key list: %w", err)
	}
	keys = wordlist.FilterMaxLen(keys, dictMaxLen)
	if len(keys) == 0 {
		return fmt.Errorf("no keys of at most %d letters in %s", dictMaxLen, path)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	source, err := filepath.Abs(path)
	if err != nil {
		source = path
	}
	if _, err := st.ImportDictionary(cmd.Context(), name, source, keys); err != nil {
		return err
	}
	logErrf("Imported %d keys into %q\n", len(keys), name)
	return nil
}

func runDictListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	dicts, err := st.ListDictionaries(cmd.Context())
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), dicts, func(w io.Writer) error {
		return report.RenderDictionaries(w, dicts)
	})
}

func runDictRmCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.DeleteDictionary(cmd.Context(), args[0]); err != nil {
		return err
	}
	logErrf("Deleted %q\n", args[0])
	return nil
}
