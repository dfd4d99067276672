package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tommv/lbman/pkg/api"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "lbman.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testProfile(name string) Profile {
	return Profile{
		Name:     name,
		Endpoint: "https://api.example.com/v4",
		Token:    "secret",
		FeedURL:  "https://blog.example.com/rss",
	}
}

func TestProfileCRUD(t *testing.T) {
	store := newTestStore(t)

	t.Run("add and get round trip", func(t *testing.T) {
		p := testProfile("prod")
		require.NoError(t, store.AddProfile(p))

		got, ok := store.GetProfile("prod")
		require.True(t, ok)
		assert.Equal(t, p, got)
	})

	t.Run("add upserts on name", func(t *testing.T) {
		p := testProfile("prod")
		p.Endpoint = "https://api2.example.com"
		require.NoError(t, store.AddProfile(p))

		got, ok := store.GetProfile("prod")
		require.True(t, ok)
		assert.Equal(t, "https://api2.example.com", got.Endpoint)
	})

	t.Run("invalid profiles are rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.AddProfile(Profile{Name: "x"}), ErrProfileInvalid)
		assert.ErrorIs(t, store.AddProfile(Profile{Endpoint: "https://a.example.com", Token: "t"}), ErrProfileInvalid)
	})

	t.Run("list is sorted by name", func(t *testing.T) {
		require.NoError(t, store.AddProfile(testProfile("alpha")))
		require.NoError(t, store.AddProfile(testProfile("zulu")))

		profiles := store.ListProfiles()
		require.Len(t, profiles, 3)
		assert.Equal(t, "alpha", profiles[0].Name)
		assert.Equal(t, "zulu", profiles[2].Name)
	})

	t.Run("delete removes, missing name errors", func(t *testing.T) {
		require.NoError(t, store.DeleteProfile("zulu"))
		_, ok := store.GetProfile("zulu")
		assert.False(t, ok)

		assert.ErrorIs(t, store.DeleteProfile("zulu"), ErrProfileNotFound)
	})
}

func TestDefaultProfile(t *testing.T) {
	t.Run("a lone profile is the implicit default", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.AddProfile(testProfile("only")))

		p, ok := store.GetDefaultProfile()
		require.True(t, ok)
		assert.Equal(t, "only", p.Name)
	})

	t.Run("no implicit default among several profiles", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.AddProfile(testProfile("one")))
		require.NoError(t, store.AddProfile(testProfile("two")))

		_, ok := store.GetDefaultProfile()
		assert.False(t, ok)
	})

	t.Run("set-default moves the marker", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.AddProfile(testProfile("one")))
		require.NoError(t, store.AddProfile(testProfile("two")))

		require.NoError(t, store.SetDefaultProfile("one"))
		p, ok := store.GetDefaultProfile()
		require.True(t, ok)
		assert.Equal(t, "one", p.Name)

		require.NoError(t, store.SetDefaultProfile("two"))
		p, ok = store.GetDefaultProfile()
		require.True(t, ok)
		assert.Equal(t, "two", p.Name)
	})

	t.Run("set-default on a missing profile errors", func(t *testing.T) {
		store := newTestStore(t)
		assert.ErrorIs(t, store.SetDefaultProfile("ghost"), ErrProfileNotFound)
	})
}

func TestInvoiceCache(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddProfile(testProfile("prod")))

	first := []api.Invoice{
		{ID: 30, Label: "Invoice #30", Date: "2026-06-01", Total: 40},
		{ID: 31, Label: "Invoice #31", Date: "2026-07-01", Total: 42.5},
	}

	t.Run("cache and read back, newest first", func(t *testing.T) {
		require.NoError(t, store.CacheInvoices("prod", first))

		cached, err := store.CachedInvoices("prod")
		require.NoError(t, err)
		require.Len(t, cached, 2)
		assert.Equal(t, 31, cached[0].ID)
		assert.Equal(t, 42.5, cached[0].Total)
	})

	t.Run("a refresh replaces the cache wholesale", func(t *testing.T) {
		second := []api.Invoice{{ID: 32, Label: "Invoice #32", Date: "2026-08-01", Total: 45}}
		require.NoError(t, store.CacheInvoices("prod", second))

		cached, err := store.CachedInvoices("prod")
		require.NoError(t, err)
		require.Len(t, cached, 1)
		assert.Equal(t, 32, cached[0].ID)
	})

	t.Run("unknown profile reads back empty", func(t *testing.T) {
		cached, err := store.CachedInvoices("ghost")
		require.NoError(t, err)
		assert.Empty(t, cached)
	})
}

func TestImportYAML(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
		return path
	}

	t.Run("imports profiles and the default marker", func(t *testing.T) {
		store := newTestStore(t)
		path := writeFile(t, `
profiles:
  - name: prod
    endpoint: https://api.example.com/v4
    token: secret
    feed_url: https://blog.example.com/rss
  - name: staging
    endpoint: https://staging.example.com/v4
    token: other
default: staging
`)

		count, err := ImportYAML(store, path)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		p, ok := store.GetDefaultProfile()
		require.True(t, ok)
		assert.Equal(t, "staging", p.Name)
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		store := newTestStore(t)
		path := writeFile(t, `
profiles:
  - name: prod
    endpoint: https://api.example.com/v4
    token: secret
  - name: prod
    endpoint: https://other.example.com
    token: secret
`)

		_, err := ImportYAML(store, path)
		assert.Error(t, err)
	})

	t.Run("an unknown default is rejected", func(t *testing.T) {
		store := newTestStore(t)
		path := writeFile(t, `
profiles:
  - name: prod
    endpoint: https://api.example.com/v4
    token: secret
default: ghost
`)

		_, err := ImportYAML(store, path)
		assert.Error(t, err)
	})

	t.Run("a missing file is an error", func(t *testing.T) {
		store := newTestStore(t)
		_, err := ImportYAML(store, filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
