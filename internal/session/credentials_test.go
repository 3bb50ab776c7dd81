package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_Transitions(t *testing.T) {
	var creds Credentials
	assert.Equal(t, StateAbsent, creds.State())
	assert.True(t, creds.IsZero())

	creds = Issued("access-1", "refresh-1", "user@example.com")
	assert.Equal(t, StateIssued, creds.State())

	creds = creds.Refreshed("access-2", "refresh-2")
	assert.Equal(t, "access-2", creds.AccessToken)
	assert.Equal(t, "refresh-2", creds.RefreshToken)
	assert.Equal(t, "user@example.com", creds.Email)
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "credentials.json")),
		"redis":  NewRedisStore(newRedisClient(t, miniredis.RunT(t)), time.Hour),
	}
}

func TestStore_RoundTripIsExact(t *testing.T) {
	ctx := context.Background()
	tokens := []string{
		"eyJhbGciOiJIUS4.payload.sig",
		"  padded token  ",
		"токен с юникодом",
		`quote"and\backslash`,
	}

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, token := range tokens {
				creds := Issued(token, token+"-refresh", "user@example.com")
				require.NoError(t, store.Save(ctx, "default", creds))

				loaded, err := store.Load(ctx, "default")
				require.NoError(t, err)
				assert.Equal(t, creds, loaded)
			}
		})
	}
}

func TestStore_ClearRemovesAllKeys(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(ctx, "a", Issued("x", "y", "a@example.com")))
			require.NoError(t, store.Save(ctx, "b", Issued("p", "q", "b@example.com")))

			require.NoError(t, store.Clear(ctx, "a"))

			loaded, err := store.Load(ctx, "a")
			require.NoError(t, err)
			assert.True(t, loaded.IsZero())

			other, err := store.Load(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, "p", other.AccessToken)

			// clearing twice is fine
			assert.NoError(t, store.Clear(ctx, "a"))
		})
	}
}

func TestStore_LoadUnknownID(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			creds, err := store.Load(context.Background(), "missing")
			require.NoError(t, err)
			assert.Equal(t, StateAbsent, creds.State())
		})
	}
}

func TestStore_SaveRejectsEmptyID(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Save(context.Background(), "", Issued("a", "b", "c"))
			assert.ErrorIs(t, err, ErrEmptyID)
		})
	}
}

func TestFileStore_UsesStorageKeysAndPrivateMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), "default", Issued("acc", "ref", "me@example.com")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"default": {"accessToken": "acc", "refreshToken": "ref", "userEmail": "me@example.com"}}`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background(), "default")
	assert.Error(t, err)
}
