// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-unilabel/pkg/storage/sqlite"
)

func Context() context.Context {
	return context.Background()
}

// OpenStore opens a migrated SQLite database under t.TempDir. The store is
// closed when the test finishes.
func OpenStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "unilabel.db"))
	if err != nil {
		t.Fatalf("testsupport: open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if cerr := store.Close(); cerr != nil {
			t.Errorf("testsupport: close sqlite: %v", cerr)
		}
	})
	return store
}

// MapTranslator answers render.Translator lookups from a fixed map, keyed by
// "component:identifier". Missing keys fail so callers hit their fallback.
type MapTranslator map[string]string

func (m MapTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	msg, ok := m[key]
	if !ok {
		return "", errors.New("testsupport: no message for " + key)
	}
	return msg, nil
}
