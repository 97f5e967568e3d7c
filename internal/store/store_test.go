package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "keys.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestImportAndListDictionaries(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.ImportDictionary(ctx, "common", "common.txt", []string{"LEMON", "SECRET", "LEMON", "KEYWORD"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := st.ImportDictionary(ctx, "alpha", "alpha.txt", []string{"ABC"}); err != nil {
		t.Fatalf("import: %v", err)
	}

	dicts, err := st.ListDictionaries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dicts) != 2 || dicts[0].Name != "alpha" || dicts[1].Name != "common" {
		t.Fatalf("unexpected dictionaries: %+v", dicts)
	}
	if dicts[1].Keys != 3 || dicts[1].Source != "common.txt" || dicts[1].CreatedAt.IsZero() {
		t.Fatalf("unexpected dictionary summary: %+v", dicts[1])
	}

	keys, err := st.Keys(ctx, "common", 0)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 3 || keys[0] != "LEMON" || keys[1] != "SECRET" || keys[2] != "KEYWORD" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	short, err := st.Keys(ctx, "common", 6)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(short) != 2 {
		t.Fatalf("expected 2 keys of at most 6 letters, got %v", short)
	}
}

func TestImportReplacesExistingDictionary(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.ImportDictionary(ctx, "d", "v1", []string{"ONE", "TWO"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := st.ImportDictionary(ctx, "d", "v2", []string{"THREE"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	keys, err := st.Keys(ctx, "d", 0)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "THREE" {
		t.Fatalf("unexpected keys after replace: %v", keys)
	}
	dicts, err := st.ListDictionaries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dicts) != 1 || dicts[0].Source != "v2" {
		t.Fatalf("unexpected dictionaries: %+v", dicts)
	}
}

func TestDeleteDictionary(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.ImportDictionary(ctx, "gone", "x", []string{"KEY"}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := st.DeleteDictionary(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Keys(ctx, "gone", 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.DeleteDictionary(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestImportRejectsEmptyName(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.ImportDictionary(context.Background(), "", "x", nil); err == nil {
		t.Fatalf("expected an error for an empty name")
	}
}
