package i18n

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
)

type memStore struct {
	values map[string]string
	getErr error
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	t.Run("current language wins", func(t *testing.T) {
		tr := New("en")
		if got := tr.T("purchases_title"); got != "My purchases" {
			t.Fatalf("expected English string, got %q", got)
		}
	})

	t.Run("missing key falls back to base language", func(t *testing.T) {
		// The English catalog intentionally has no entry for this key.
		tr := New("en")
		if got := tr.T("checkout_buyer_title"); got != "Datos del comprador" {
			t.Fatalf("expected base-language fallback, got %q", got)
		}
	})

	t.Run("unknown key comes back verbatim", func(t *testing.T) {
		tr := New("es")
		if got := tr.T("no_such_key"); got != "no_such_key" {
			t.Fatalf("expected raw key, got %q", got)
		}
	})

	t.Run("unknown language uses the base dictionary", func(t *testing.T) {
		tr := New("de")
		if got := tr.T("purchases_title"); got != "Mis compras" {
			t.Fatalf("expected base-language string, got %q", got)
		}
	})

	t.Run("zero value translates with the base language", func(t *testing.T) {
		var tr Translator
		if tr.Language() != BaseLanguage {
			t.Fatalf("expected base language, got %s", tr.Language())
		}
	})
}

func TestLanguagePersistence(t *testing.T) {
	t.Parallel()

	t.Run("save then load roundtrip", func(t *testing.T) {
		store := newMemStore()
		if err := Save(context.Background(), store, "en"); err != nil {
			t.Fatalf("save: %v", err)
		}
		tr := Load(context.Background(), store, quietLogger())
		if tr.Language() != "en" {
			t.Fatalf("expected en, got %s", tr.Language())
		}
	})

	t.Run("rejects unsupported codes", func(t *testing.T) {
		if err := Save(context.Background(), newMemStore(), "fr"); err == nil {
			t.Fatalf("expected error for unsupported language")
		}
	})

	t.Run("garbage in the slot falls back to base", func(t *testing.T) {
		store := newMemStore()
		store.values["app_language"] = "xx"
		tr := Load(context.Background(), store, quietLogger())
		if tr.Language() != BaseLanguage {
			t.Fatalf("expected base language, got %s", tr.Language())
		}
	})

	t.Run("store failure falls back to base", func(t *testing.T) {
		store := newMemStore()
		store.getErr = errors.New("io error")
		tr := Load(context.Background(), store, quietLogger())
		if tr.Language() != BaseLanguage {
			t.Fatalf("expected base language, got %s", tr.Language())
		}
	})
}
